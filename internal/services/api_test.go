package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/shared"
	tu "github.com/desertthunder/tagmix/internal/testing"
)

func TestPlaylistClient(t *testing.T) {
	input := models.NewFormInput("My Mix", "#chill")

	t.Run("New", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			client := NewPlaylistClient(ClientOpts{})

			if client.Endpoint() != DefaultEndpoint {
				t.Errorf("expected default endpoint %s, got %s", DefaultEndpoint, client.Endpoint())
			}
			if client.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if !math.IsInf(client.Limit(), 1) {
				t.Errorf("expected unlimited rate, got %v", client.Limit())
			}
		})

		t.Run("With Custom Client And Rate", func(t *testing.T) {
			custom := &http.Client{}
			client := NewPlaylistClient(ClientOpts{Endpoint: "http://example.com/create_playlist", HTTPClient: custom, RateLimit: 2})

			if client.httpClient != custom {
				t.Error("expected custom client to be used")
			}
			if client.Limit() != 2 {
				t.Errorf("expected limit 2, got %v", client.Limit())
			}
		})

		t.Run("From Config", func(t *testing.T) {
			cfg := shared.DefaultConfig().Backend
			cfg.RateLimit = 4
			custom := &http.Client{}
			client := NewPlaylistClientFromConfig(cfg, custom, nil)

			if client.Endpoint() != "http://127.0.0.1:5000/create_playlist" {
				t.Errorf("unexpected endpoint %s", client.Endpoint())
			}
			if client.httpClient != custom {
				t.Error("expected custom client to be used")
			}
			if client.Limit() != 4 {
				t.Errorf("expected limit 4, got %v", client.Limit())
			}
		})
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("Success Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.URL.Path != "/create_playlist" {
					t.Errorf("expected path '/create_playlist', got %s", r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected Content-Type application/json, got %s", ct)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}

				var body models.CreatePlaylistRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode request body: %v", err)
				}
				if body.PlaylistName != "My Mix" || body.Hashtag != "#chill" {
					t.Errorf("unexpected request body: %+v", body)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.CreatePlaylistResponse{
					Success:      true,
					PlaylistName: "My Mix",
					AddedCount:   12,
					SkippedCount: 3,
					PlaylistURL:  "https://example.com/p/1",
				})
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL + "/create_playlist"})
			resp, err := client.CreatePlaylist(context.Background(), input)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.Success {
				t.Error("expected success")
			}
			if resp.AddedCount != 12 || resp.SkippedCount != 3 {
				t.Errorf("unexpected counts: %+v", resp)
			}
			if resp.PlaylistURL != "https://example.com/p/1" {
				t.Errorf("unexpected playlist URL %s", resp.PlaylistURL)
			}
		})

		t.Run("Forwards Request ID From Context", func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("X-Request-ID")
				w.Write([]byte(`{"success":true}`))
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
			ctx := WithRequestID(context.Background(), "req-123")
			if _, err := client.CreatePlaylist(ctx, input); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got != "req-123" {
				t.Errorf("expected request ID req-123, got %q", got)
			}
		})

		t.Run("Failure Body With Server Error Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"error":"hashtag not found"}`))
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
			resp, err := client.CreatePlaylist(context.Background(), input)

			if err != nil {
				t.Fatalf("expected failure body to decode without error, got %v", err)
			}
			if resp.Success {
				t.Error("expected success to be false")
			}
			if resp.ErrorMessage() != "hashtag not found" {
				t.Errorf("expected server error message, got %q", resp.ErrorMessage())
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html>Internal Server Error</html>"))
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})

		t.Run("JSON Body That Is Not An Object", func(t *testing.T) {
			for _, body := range []string{`[]`, `"oops"`, `null`} {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(body))
				}))

				client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
				resp, err := client.CreatePlaylist(context.Background(), input)
				server.Close()

				if err != nil {
					t.Errorf("%s: expected no error, got %v", body, err)
					continue
				}
				if resp.Success {
					t.Errorf("%s: expected success to be false", body)
				}
				if resp.ErrorMessage() != models.DefaultErrorMessage {
					t.Errorf("%s: expected fallback message, got %q", body, resp.ErrorMessage())
				}
			}
		})

		t.Run("Fractional Counts", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success":true,"playlistName":"My Mix","addedCount":2.0,"skippedCount":0.5}`))
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
			resp, err := client.CreatePlaylist(context.Background(), input)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.Success {
				t.Error("expected success")
			}
			if resp.AddedCount.String() != "2" || resp.SkippedCount.String() != "0.5" {
				t.Errorf("unexpected counts: %s, %s", resp.AddedCount, resp.SkippedCount)
			}
		})

		t.Run("Empty Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL})
			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := NewPlaylistClient(ClientOpts{
				Endpoint:   "http://example.com/create_playlist",
				HTTPClient: &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))},
			})

			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Failed Body Read", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
			client := NewPlaylistClient(ClientOpts{
				Endpoint:   "http://example.com/create_playlist",
				HTTPClient: &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)},
			})

			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Invalid Endpoint", func(t *testing.T) {
			client := NewPlaylistClient(ClientOpts{Endpoint: "http://example.com/\x00bad"})
			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Timeout", func(t *testing.T) {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			}))
			defer server.Close()
			defer close(release)

			client := NewPlaylistClient(ClientOpts{Endpoint: server.URL, Timeout: 50 * time.Millisecond})
			_, err := client.CreatePlaylist(context.Background(), input)

			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected deadline exceeded, got %v", err)
			}
		})

		t.Run("Cancelled Context Waiting On Limiter", func(t *testing.T) {
			client := NewPlaylistClient(ClientOpts{
				Endpoint:   "http://example.com/create_playlist",
				RateLimit:  0.001,
				HTTPClient: &http.Client{Transport: tu.NewMockRoundTripper(tu.JSONResponse(http.StatusOK, `{"success":true}`), nil)},
			})

			if _, err := client.CreatePlaylist(context.Background(), input); err != nil {
				t.Fatalf("first request should pass the limiter: %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			_, err := client.CreatePlaylist(ctx, input)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork from limiter, got %v", err)
			}
		})
	})
}

func TestRequestID(t *testing.T) {
	if _, ok := RequestID(context.Background()); ok {
		t.Error("expected no request ID on empty context")
	}

	ctx := WithRequestID(context.Background(), "abc")
	if id, ok := RequestID(ctx); !ok || id != "abc" {
		t.Errorf("expected abc, got %q (%v)", id, ok)
	}
}
