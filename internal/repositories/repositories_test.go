package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func successSubmission(name, hashtag string) *models.Submission {
	return models.NewSubmission("", models.NewFormInput(name, hashtag), &models.CreatePlaylistResponse{
		Success:      true,
		PlaylistID:   "PL" + name,
		PlaylistURL:  "https://www.youtube.com/playlist?list=PL" + name,
		AddedCount:   12,
		SkippedCount: 3,
	}, "")
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "submissions")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "users; DROP TABLE submissions"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestSubmissionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))
		s := successSubmission("mix", "TuesdayTracks")

		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		if s.ID == "" {
			t.Error("submission ID should be set after creation")
		}
		if s.Sequence != 1 {
			t.Errorf("expected sequence 1, got %d", s.Sequence)
		}
	})

	t.Run("Create rejects unsettled submissions", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))
		s := &models.Submission{PlaylistName: "mix", Hashtag: "tag", State: models.Loading}

		if err := repo.Create(s); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))
		s := successSubmission("mix", "TuesdayTracks")

		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		got, err := repo.Get(s.ID)
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}

		if got.PlaylistName != "mix" || got.Hashtag != "TuesdayTracks" {
			t.Errorf("unexpected submission: %+v", got)
		}
		if got.State != models.Success {
			t.Errorf("expected success state, got %s", got.State)
		}
		if got.AddedCount != 12 || got.SkippedCount != 3 {
			t.Errorf("unexpected counts: added=%s skipped=%s", got.AddedCount, got.SkippedCount)
		}
		if got.PlaylistURL != s.PlaylistURL {
			t.Errorf("expected URL %s, got %s", s.PlaylistURL, got.PlaylistURL)
		}
		if got.CreatedAt.IsZero() {
			t.Error("expected created_at to round-trip")
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))

		_, err := repo.Get("does-not-exist")
		if !errors.Is(err, shared.ErrSubmissionNotFound) {
			t.Errorf("expected ErrSubmissionNotFound, got %v", err)
		}
	})

	t.Run("Record failure", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))
		s := models.NewSubmission(shared.GenerateID(), models.NewFormInput("mix", "nope"), nil, "hashtag not found")

		if err := repo.Record(s); err != nil {
			t.Fatalf("failed to record submission: %v", err)
		}

		got, err := repo.Get(s.ID)
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}
		if got.State != models.Error || got.ErrorMessage != "hashtag not found" {
			t.Errorf("unexpected failed submission: %+v", got)
		}
	})

	t.Run("List newest first with limit", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))

		for i := range 5 {
			if err := repo.Create(successSubmission(fmt.Sprintf("mix-%d", i), "TuesdayTracks")); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		got, err := repo.List(3)
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}

		if len(got) != 3 {
			t.Fatalf("expected 3 submissions, got %d", len(got))
		}
		if got[0].PlaylistName != "mix-4" || got[2].PlaylistName != "mix-2" {
			t.Errorf("expected newest first, got %s..%s", got[0].PlaylistName, got[2].PlaylistName)
		}

		all, err := repo.List(0)
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}
		if len(all) != 5 {
			t.Errorf("expected default limit to return all 5, got %d", len(all))
		}
	})

	t.Run("ListByHashtag", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))

		for _, tag := range []string{"TuesdayTracks", "chill", "TuesdayTracks"} {
			if err := repo.Create(successSubmission("mix", tag)); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		got, err := repo.ListByHashtag("TuesdayTracks", 10)
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 submissions, got %d", len(got))
		}
	})

	t.Run("ListByHashtag ignores leading #", func(t *testing.T) {
		repo := NewSubmissionRepository(setupTestDB(t))

		typed := successSubmission("cli", "#chill")
		if err := repo.Create(typed); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}
		direct := &models.Submission{ID: "direct", PlaylistName: "tui", Hashtag: " #chill", State: models.Error, ErrorMessage: "boom"}
		if err := repo.Create(direct); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}
		if err := repo.Create(successSubmission("tui", "chill")); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		for _, tag := range []string{"chill", "#chill"} {
			got, err := repo.ListByHashtag(tag, 10)
			if err != nil {
				t.Fatalf("failed to list submissions: %v", err)
			}
			if len(got) != 3 {
				t.Errorf("ListByHashtag(%q): expected 3 submissions, got %d", tag, len(got))
			}
			for _, s := range got {
				if s.Hashtag != "chill" {
					t.Errorf("expected stored hashtag chill, got %q", s.Hashtag)
				}
			}
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSubmissionRepository(db)
		db.Close()

		if err := repo.Create(successSubmission("mix", "tag")); err == nil {
			t.Error("expected error creating on closed database")
		}
		if _, err := repo.List(5); err == nil {
			t.Error("expected error listing on closed database")
		}
	})
}
