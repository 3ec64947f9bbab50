package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is used when no endpoint URL is configured.
const DefaultEndpoint = "http://127.0.0.1:5000/create_playlist"

var _ Creator = (*PlaylistClient)(nil)

// PlaylistClient POSTs form submissions to the playlist creation endpoint.
type PlaylistClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *log.Logger
}

// ClientOpts configures a [PlaylistClient].
type ClientOpts struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration // zero waits indefinitely
	RateLimit  float64       // requests per second, zero disables limiting
	Logger     *log.Logger
}

// NewPlaylistClient creates a client for the playlist creation endpoint.
func NewPlaylistClient(opts ClientOpts) *PlaylistClient {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &PlaylistClient{
		endpoint:   opts.Endpoint,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

// NewPlaylistClientFromConfig builds a client from the [backend] section of the config.
// A nil httpClient uses [http.DefaultClient].
func NewPlaylistClientFromConfig(cfg shared.BackendConfig, httpClient *http.Client, logger *log.Logger) *PlaylistClient {
	return NewPlaylistClient(ClientOpts{
		Endpoint:   cfg.EndpointURL(),
		HTTPClient: httpClient,
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		Logger:     logger,
	})
}

// Endpoint returns the URL requests are sent to.
func (c *PlaylistClient) Endpoint() string {
	return c.endpoint
}

// CreatePlaylist POSTs input as JSON and decodes the reply.
func (c *PlaylistClient) CreatePlaylist(ctx context.Context, input models.FormInput) (*models.CreatePlaylistResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}

	data, err := json.Marshal(input.Request())
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrNetwork, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID, ok := RequestID(ctx)
	if !ok {
		requestID = shared.GenerateID()
	}
	req.Header.Set("X-Request-ID", requestID)

	logger := shared.WithLogger(c.logger, "request_id", requestID)
	logger.Debug("creating playlist", "endpoint", c.endpoint, "playlist", input.PlaylistName, "hashtag", input.Hashtag)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "err", err)
		return nil, fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrNetwork, err)
	}

	logger.Debug("response received", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(started).Round(time.Millisecond))

	var result models.CreatePlaylistResponse
	if err := json.Unmarshal(body, &result); err != nil {
		logger.Warn("response body is not valid JSON", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %w", shared.ErrParse, err)
	}

	if !result.Success {
		logger.Info("backend reported failure", "status", resp.StatusCode, "error", result.Error)
	}

	return &result, nil
}

// Limit reports the configured requests per second, or +Inf when unlimited.
func (c *PlaylistClient) Limit() float64 {
	l := c.limiter.Limit()
	if l == rate.Inf {
		return math.Inf(1)
	}
	return float64(l)
}
