package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func testRecord(t *testing.T) Record {
	t.Helper()
	analysis, err := ValidateAnalysis(validAnalysisJSON)
	if err != nil {
		t.Fatalf("fixture analysis: %v", err)
	}
	return Record{
		ID:             "rec-1",
		UserID:         "user-1",
		FileName:       "resume.pdf",
		FileURL:        "https://bucket.s3.us-east-1.amazonaws.com/resumes/abc/resume_1_resume.pdf",
		StorageKey:     "resumes/abc/resume_1_resume.pdf",
		SizeBytes:      2048,
		MimeType:       "application/pdf",
		Analysis:       analysis,
		JobDescription: "backend engineer",
		CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := testRecord(t)

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.FileName,
			rec.FileURL,
			rec.StorageKey,
			rec.SizeBytes,
			rec.MimeType,
			sqlmock.AnyArg(), // analysis json
			rec.JobDescription,
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := testRecord(t)
	analysisJSON, _ := json.Marshal(rec.Analysis)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "file_url", "storage_key", "size_bytes", "mime_type", "analysis", "job_description", "created_at",
	}).AddRow(rec.ID, rec.UserID, rec.FileName, rec.FileURL, rec.StorageKey, rec.SizeBytes, rec.MimeType, analysisJSON, rec.JobDescription, rec.CreatedAt)

	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs(rec.UserID, rec.ID).
		WillReturnRows(rows)

	got, err := repo.GetByIDForUser(context.Background(), rec.UserID, rec.ID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if got.Analysis.Score != rec.Analysis.Score {
		t.Errorf("score = %d", got.Analysis.Score)
	}
	if got.Analysis.Sections["summary"].Status != StatusMissing {
		t.Errorf("summary status = %q", got.Analysis.Sections["summary"].Status)
	}
	if got.JobDescription != rec.JobDescription {
		t.Errorf("job description = %q", got.JobDescription)
	}
}

func TestPGRepoGetByIDForUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs("user-b", "rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByIDForUser(context.Background(), "user-b", "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := testRecord(t)
	analysisJSON, _ := json.Marshal(rec.Analysis)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "file_url", "storage_key", "size_bytes", "mime_type", "analysis", "job_description", "created_at",
	}).
		AddRow("rec-2", rec.UserID, "newer.pdf", rec.FileURL, rec.StorageKey, rec.SizeBytes, rec.MimeType, analysisJSON, nil, rec.CreatedAt.Add(time.Hour)).
		AddRow("rec-1", rec.UserID, "older.pdf", rec.FileURL, rec.StorageKey, rec.SizeBytes, rec.MimeType, analysisJSON, rec.JobDescription, rec.CreatedAt)

	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs(rec.UserID, 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), rec.UserID, 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "rec-2" || got[1].ID != "rec-1" {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].JobDescription != "" {
		t.Errorf("null job description should decode empty, got %q", got[0].JobDescription)
	}
}

func TestPGRepoDeleteByIDForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("user-1", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByIDForUser(context.Background(), "user-1", "rec-1"); err != nil {
		t.Fatalf("DeleteByIDForUser: %v", err)
	}
}

func TestPGRepoDeleteByIDForUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("user-b", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteByIDForUser(context.Background(), "user-b", "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
