package resumes

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvlens-backend/internal/extract"
	"cvlens-backend/internal/llm"
	"cvlens-backend/internal/shared/storage/object"
	"cvlens-backend/internal/shared/telemetry"
)

// Service runs the analysis pipeline and owns record lifecycle.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	LLM   llm.Client
}

// Analyze runs the full pipeline for one upload: store the original file,
// extract its text, request a completion, validate the output, and persist
// the record. If any stage after the upload fails, the stored object is
// removed on a best-effort basis so no unreferenced file lingers.
func (s *Service) Analyze(ctx context.Context, userID, fileName, mimeType string, data []byte, jobDescription string) (Record, error) {
	if userID == "" {
		return Record{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if fileName == "" {
		return Record{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	if len(data) == 0 {
		return Record{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	obj, err := s.Store.Upload(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrStorageUpload, err)
	}

	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		s.cleanupObject(ctx, obj.Key, "extraction")
		return Record{}, err
	}
	if strings.TrimSpace(text) == "" {
		s.cleanupObject(ctx, obj.Key, "extraction")
		return Record{}, fmt.Errorf("%w: document contains no text", extract.ErrExtractionFailed)
	}

	prompt := llm.BuildAnalysisPrompt(text, jobDescription)
	output, err := s.LLM.Complete(ctx, llm.AnalysisSystemPrompt, prompt)
	if err != nil {
		s.cleanupObject(ctx, obj.Key, "completion")
		return Record{}, err
	}

	analysis, err := ValidateAnalysis(llm.StripFences(output))
	if err != nil {
		s.cleanupObject(ctx, obj.Key, "validation")
		return Record{}, err
	}

	rec := Record{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		FileURL:        obj.URL,
		StorageKey:     obj.Key,
		SizeBytes:      obj.SizeBytes,
		MimeType:       obj.MimeType,
		Analysis:       analysis,
		JobDescription: strings.TrimSpace(jobDescription),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		s.cleanupObject(ctx, obj.Key, "persistence")
		return Record{}, err
	}

	return rec, nil
}

// Get returns one record owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (Record, error) {
	if userID == "" || id == "" {
		return Record{}, fmt.Errorf("%w: user id and resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByIDForUser(ctx, userID, id)
}

// List returns the user's records, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes the stored file first and the record second. If the object
// store refuses, the record is kept so the operation can be retried; a
// dangling database row is recoverable, a dangling stored file is not.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	rec, err := s.Repo.GetByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}

	if rec.StorageKey != "" {
		if err := s.Store.Delete(ctx, rec.StorageKey); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageDeletion, err)
		}
	}

	return s.Repo.DeleteByIDForUser(ctx, userID, id)
}

// Report renders the HTML report for one record owned by the user.
func (s *Service) Report(ctx context.Context, userID, id string) (Record, []byte, error) {
	rec, err := s.Repo.GetByIDForUser(ctx, userID, id)
	if err != nil {
		return Record{}, nil, err
	}
	html, err := RenderReport(rec)
	if err != nil {
		return Record{}, nil, err
	}
	return rec, html, nil
}

// cleanupObject deletes an uploaded object after a downstream stage failed.
// Failures here are logged and swallowed; the caller's error is the one that
// matters to the user.
func (s *Service) cleanupObject(ctx context.Context, key, stage string) {
	if key == "" {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Error("resume.cleanup_failed", map[string]any{
			"storage_key": key,
			"stage":       stage,
			"error":       err.Error(),
		})
	}
}
