// package services defines the HTTP client for the playlist creation backend
package services

import (
	"context"

	"github.com/desertthunder/tagmix/internal/models"
)

// Creator submits a form to the playlist creation endpoint.
type Creator interface {
	// CreatePlaylist issues exactly one request for input.
	//
	// A response whose Success flag is false is returned without error; errors are reserved for
	// requests that could not complete or bodies that could not be decoded.
	CreatePlaylist(ctx context.Context, input models.FormInput) (*models.CreatePlaylistResponse, error)
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; the client forwards it as the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by [WithRequestID], if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
