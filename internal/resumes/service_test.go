package resumes

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"cvlens-backend/internal/extract"
	"cvlens-backend/internal/llm"
	"cvlens-backend/internal/shared/storage/object"
	localstore "cvlens-backend/internal/shared/storage/object/local"
)

type stubLLM struct {
	output string
	err    error
	prompt string
}

func (s *stubLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

type failingStore struct {
	object.ObjectStore
	deleteErr error
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.ObjectStore.Delete(ctx, key)
}

func newTestService(t *testing.T, client llm.Client) (*Service, *localstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := localstore.New(dir, "http://localhost:8080/files")
	svc := &Service{
		Store: store,
		Repo:  NewMemoryRepo(),
		LLM:   client,
	}
	return svc, store, dir
}

func TestAnalyzePersistsValidatedRecord(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, store, _ := newTestService(t, client)

	resume := []byte("Name: Jane Doe\nSkills: Python, SQL")
	rec, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", resume, "backend engineer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if rec.ID == "" {
		t.Error("record ID not assigned")
	}
	if rec.Analysis.Score != 72 {
		t.Errorf("score = %d", rec.Analysis.Score)
	}
	if rec.JobDescription != "backend engineer" {
		t.Errorf("job description = %q", rec.JobDescription)
	}
	if !store.Exists(rec.StorageKey) {
		t.Error("uploaded object missing")
	}
	if !strings.Contains(client.prompt, "Jane Doe") {
		t.Error("extracted text not in prompt")
	}
	if !strings.Contains(client.prompt, "Target Job Description: backend engineer") {
		t.Error("job description not in prompt")
	}

	got, err := svc.Get(context.Background(), "user-1", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Analysis.Sections["experience"].Status != StatusNeedsWork {
		t.Errorf("persisted status = %q", got.Analysis.Sections["experience"].Status)
	}
}

func TestAnalyzeHandlesFencedOutput(t *testing.T) {
	client := &stubLLM{output: "```json\n" + validAnalysisJSON + "\n```"}
	svc, _, _ := newTestService(t, client)

	rec, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rec.Analysis.Score != 72 {
		t.Errorf("score = %d", rec.Analysis.Score)
	}
}

func TestAnalyzeCleansUpOnExtractionFailure(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, _, dir := newTestService(t, client)

	_, err := svc.Analyze(context.Background(), "user-1", "resume.pdf", "application/pdf", []byte("not a pdf"), "")
	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	assertNoObjects(t, dir)
}

func TestAnalyzeCleansUpOnCompletionFailure(t *testing.T) {
	client := &stubLLM{err: llm.ErrCompletion}
	svc, _, dir := newTestService(t, client)

	_, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if !errors.Is(err, llm.ErrCompletion) {
		t.Fatalf("expected ErrCompletion, got %v", err)
	}
	assertNoObjects(t, dir)
}

func TestAnalyzeCleansUpOnSchemaViolation(t *testing.T) {
	client := &stubLLM{output: `{"score": 150}`}
	svc, _, dir := newTestService(t, client)

	var schemaErr *SchemaError
	_, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	assertNoObjects(t, dir)

	if _, err := svc.List(context.Background(), "user-1", 0, 0); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestAnalyzeRejectsUnsupportedFormat(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, _, dir := newTestService(t, client)

	_, err := svc.Analyze(context.Background(), "user-1", "photo.png", "image/png", []byte("png bytes"), "")
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	assertNoObjects(t, dir)
}

func TestDeleteOtherUsersRecord(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, store, _ := newTestService(t, client)

	rec, err := svc.Analyze(context.Background(), "user-a", "resume.txt", "text/plain", []byte("resume text"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-b", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Record and object both intact.
	if _, err := svc.Get(context.Background(), "user-a", rec.ID); err != nil {
		t.Fatalf("record lost: %v", err)
	}
	if !store.Exists(rec.StorageKey) {
		t.Fatal("stored object lost")
	}
}

func TestDeleteRemovesObjectThenRecord(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, store, _ := newTestService(t, client)

	rec, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Exists(rec.StorageKey) {
		t.Error("stored object survived delete")
	}
	if _, err := svc.Get(context.Background(), "user-1", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteKeepsRecordWhenStoreFails(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, store, _ := newTestService(t, client)

	rec, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	svc.Store = &failingStore{ObjectStore: store, deleteErr: errors.New("s3 down")}
	if err := svc.Delete(context.Background(), "user-1", rec.ID); !errors.Is(err, ErrStorageDeletion) {
		t.Fatalf("expected ErrStorageDeletion, got %v", err)
	}

	// Retryable: record still present.
	if _, err := svc.Get(context.Background(), "user-1", rec.ID); err != nil {
		t.Fatalf("record lost after failed delete: %v", err)
	}

	svc.Store = store
	if err := svc.Delete(context.Background(), "user-1", rec.ID); err != nil {
		t.Fatalf("retry delete: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, _, _ := newTestService(t, client)

	if _, err := svc.Analyze(context.Background(), "user-1", "first.txt", "text/plain", []byte("first resume"), ""); err != nil {
		t.Fatalf("Analyze first: %v", err)
	}
	if _, err := svc.Analyze(context.Background(), "user-1", "second.txt", "text/plain", []byte("second resume"), ""); err != nil {
		t.Fatalf("Analyze second: %v", err)
	}

	recs, err := svc.List(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d", len(recs))
	}
	if recs[0].CreatedAt.Before(recs[1].CreatedAt) {
		t.Error("records not ordered newest first")
	}

	// Other users see nothing.
	other, err := svc.List(context.Background(), "user-2", 10, 0)
	if err != nil {
		t.Fatalf("List other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for other user, got %d", len(other))
	}
}

func TestReportContainsAnalysis(t *testing.T) {
	client := &stubLLM{output: validAnalysisJSON}
	svc, _, _ := newTestService(t, client)

	rec, err := svc.Analyze(context.Background(), "user-1", "resume.txt", "text/plain", []byte("resume text"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	got, html, err := svc.Report(context.Background(), "user-1", rec.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("record id = %q", got.ID)
	}
	body := string(html)
	if !strings.Contains(body, "72/100") {
		t.Error("score missing from report")
	}
	if !strings.Contains(body, "Quantify achievements") {
		t.Error("suggestion missing from report")
	}
}

// assertNoObjects verifies the store directory holds no files, proving the
// compensating cleanup ran after a failed pipeline stage.
func assertNoObjects(t *testing.T, dir string) {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk store dir: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no stored objects, found %v", files)
	}
}
