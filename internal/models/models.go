// package models defines the data model for the playlist creation client
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tagmix/internal/shared"
)

// DefaultErrorMessage is shown when the backend reports a failure without a message.
const DefaultErrorMessage = "An error occurred"

// Model defines the base interface for persistent models.
type Model interface {
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error        // Create inserts a new model into the database
	Get(id string) (T, error)    // Get retrieves a model by its ID
	List(limit int) ([]T, error) // List retrieves the most recent models, newest first
}

// FormInput holds the two required form fields.
type FormInput struct {
	PlaylistName string
	Hashtag      string
}

// NewFormInput trims both values.
func NewFormInput(playlistName, hashtag string) FormInput {
	return FormInput{
		PlaylistName: strings.TrimSpace(playlistName),
		Hashtag:      strings.TrimSpace(hashtag),
	}
}

// Validate fails with [shared.ErrValidation] when either field is empty after trimming.
func (f FormInput) Validate() error {
	if strings.TrimSpace(f.PlaylistName) == "" || strings.TrimSpace(f.Hashtag) == "" {
		return shared.ErrValidation
	}
	return nil
}

// Request converts the form into the JSON body sent to the backend.
func (f FormInput) Request() CreatePlaylistRequest {
	return CreatePlaylistRequest{PlaylistName: f.PlaylistName, Hashtag: f.Hashtag}
}

// CreatePlaylistRequest is the body of POST /create_playlist.
type CreatePlaylistRequest struct {
	PlaylistName string `json:"playlistName"`
	Hashtag      string `json:"hashtag"`
}

// CreatePlaylistResponse is the body returned by POST /create_playlist.
//
// Everything except Success is conditionally present.
type CreatePlaylistResponse struct {
	Success      bool   `json:"success"`
	PlaylistID   string `json:"playlistId,omitempty"`
	PlaylistName string `json:"playlistName,omitempty"`
	AddedCount   Count  `json:"addedCount,omitempty"`
	SkippedCount Count  `json:"skippedCount,omitempty"`
	PlaylistURL  string `json:"playlistUrl,omitempty"`
	Error        string `json:"error,omitempty"`
}

// UnmarshalJSON accepts any valid JSON. A body that is not an object, or a field of an
// unexpected type, decodes as if the value were absent.
func (r *CreatePlaylistResponse) UnmarshalJSON(data []byte) error {
	*r = CreatePlaylistResponse{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		if json.Valid(data) {
			return nil
		}
		return err
	}

	decodeField(fields, "success", &r.Success)
	decodeField(fields, "playlistId", &r.PlaylistID)
	decodeField(fields, "playlistName", &r.PlaylistName)
	decodeField(fields, "addedCount", &r.AddedCount)
	decodeField(fields, "skippedCount", &r.SkippedCount)
	decodeField(fields, "playlistUrl", &r.PlaylistURL)
	decodeField(fields, "error", &r.Error)
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// Count is a tally reported by the backend. Any JSON number is accepted and printed as sent, so 2.0 reads "2".
type Count float64

func (c Count) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// NormalizeHashtag trims whitespace and one leading '#', the form history is stored and filtered in.
func NormalizeHashtag(hashtag string) string {
	return strings.TrimPrefix(strings.TrimSpace(hashtag), "#")
}

// ErrorMessage returns the server-provided error or [DefaultErrorMessage].
func (r CreatePlaylistResponse) ErrorMessage() string {
	if r.Error != "" {
		return r.Error
	}
	return DefaultErrorMessage
}

// ViewState is the exclusive UI mode; exactly one is visible at a time.
type ViewState int

const (
	Idle ViewState = iota
	Loading
	Success
	Error
)

func (s ViewState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("ViewState(%d)", int(s))
	}
}

// ParseViewState is the inverse of [ViewState.String].
func ParseViewState(s string) (ViewState, error) {
	for _, st := range []ViewState{Idle, Loading, Success, Error} {
		if st.String() == s {
			return st, nil
		}
	}
	return Idle, fmt.Errorf("unknown view state %q", s)
}

// Submission is the recorded outcome of one settled request.
type Submission struct {
	ID           string
	Sequence     int
	PlaylistName string
	Hashtag      string
	State        ViewState // Success or Error
	PlaylistID   string
	PlaylistURL  string
	AddedCount   Count
	SkippedCount Count
	ErrorMessage string
	CreatedAt    time.Time
}

var _ Model = (*Submission)(nil)

// NewSubmission builds a record from a settled request. A nil resp records a failure with errMsg.
func NewSubmission(id string, input FormInput, resp *CreatePlaylistResponse, errMsg string) *Submission {
	s := &Submission{
		ID:           id,
		PlaylistName: input.PlaylistName,
		Hashtag:      NormalizeHashtag(input.Hashtag),
		State:        Error,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now().UTC(),
	}

	if resp != nil && resp.Success {
		s.State = Success
		s.PlaylistID = resp.PlaylistID
		s.PlaylistURL = resp.PlaylistURL
		s.AddedCount = resp.AddedCount
		s.SkippedCount = resp.SkippedCount
		s.ErrorMessage = ""
	}

	return s
}

// Validate checks the fields the history table requires.
func (s *Submission) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("submission id is required")
	}
	if s.PlaylistName == "" || s.Hashtag == "" {
		return fmt.Errorf("submission requires playlist name and hashtag")
	}
	if s.State != Success && s.State != Error {
		return fmt.Errorf("submission must be settled, got state %s", s.State)
	}
	return nil
}
