package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/shared"
)

// DefaultListLimit caps [SubmissionRepository.List] when no positive limit is given.
const DefaultListLimit = 20

const submissionColumns = `id, sequence, playlist_name, hashtag, state, playlist_id, playlist_url, added_count, skipped_count, error_message, created_at`

var _ models.Repository[*models.Submission] = (*SubmissionRepository)(nil)

// SubmissionRepository implements models.Repository[*models.Submission] for submission history.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SubmissionRepository with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a settled submission, assigning its sequence (and ID when empty).
// The hashtag is stored without its leading '#'.
func (r *SubmissionRepository) Create(s *models.Submission) error {
	s.Hashtag = models.NormalizeHashtag(s.Hashtag)
	if s.ID == "" {
		s.ID = shared.GenerateID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "submissions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	s.Sequence = sequence

	query := `INSERT INTO submissions (` + submissionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		s.ID,
		s.Sequence,
		s.PlaylistName,
		s.Hashtag,
		s.State.String(),
		s.PlaylistID,
		s.PlaylistURL,
		s.AddedCount,
		s.SkippedCount,
		s.ErrorMessage,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Record satisfies tasks.Recorder.
func (r *SubmissionRepository) Record(s *models.Submission) error {
	return r.Create(s)
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`

	s, err := scanSubmission(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSubmissionNotFound, id)
	}
	return s, err
}

// List returns up to limit submissions, newest first.
func (r *SubmissionRepository) List(limit int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY sequence DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return submissions, nil
}

// ListByHashtag returns up to limit submissions for hashtag, newest first. "#chill" and "chill" match the same rows.
func (r *SubmissionRepository) ListByHashtag(hashtag string, limit int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE hashtag = ? ORDER BY sequence DESC LIMIT ?`

	rows, err := r.db.Query(query, models.NormalizeHashtag(hashtag), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return submissions, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*models.Submission, error) {
	var (
		s     models.Submission
		state string
	)

	err := row.Scan(&s.ID, &s.Sequence, &s.PlaylistName, &s.Hashtag, &state, &s.PlaylistID, &s.PlaylistURL,
		&s.AddedCount, &s.SkippedCount, &s.ErrorMessage, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	if s.State, err = models.ParseViewState(state); err != nil {
		return nil, fmt.Errorf("failed to scan submission %s: %w", s.ID, err)
	}

	return &s, nil
}
