// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/tagmix/internal/models"
)

// MockCreator is a test double for services.Creator.
//
// Each call is recorded; Block, when set, holds the call until it is closed or the context ends.
type MockCreator struct {
	mu       sync.Mutex
	Response *models.CreatePlaylistResponse
	Err      error
	Block    chan struct{}
	Started  chan struct{}
	calls    []models.FormInput
}

func (m *MockCreator) CreatePlaylist(ctx context.Context, input models.FormInput) (*models.CreatePlaylistResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.Started != nil {
		m.Started <- struct{}{}
	}

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return m.Response, m.Err
}

// Calls returns a copy of the inputs passed to CreatePlaylist.
func (m *MockCreator) Calls() []models.FormInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.FormInput(nil), m.calls...)
}

// MockRecorder collects recorded submissions, optionally failing.
type MockRecorder struct {
	mu          sync.Mutex
	Err         error
	Submissions []*models.Submission
}

func (m *MockRecorder) Record(s *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submissions = append(m.Submissions, s)
	return m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// JSONResponse builds an [http.Response] with the given status and body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
