package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"

	"github.com/medctx/medctx/config"
	"github.com/medctx/medctx/internal"
	"github.com/medctx/medctx/pkg/models"
)

var log = internal.GetLogger()

const (
	contextPath = "context"
	healthPath  = "healthz"
	// maxErrorBody caps how much of a failed response is copied into the error.
	maxErrorBody = 1024
)

var _ models.ContextModel = &Client{}
var _ models.HealthChecker = &Client{}

// Client is a ContextModel backed by the NLP server that hosts the spaCy pipeline.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	minVersion *semver.Version
}

// NewClient creates a Client from the nlp section of the config.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.NLP.ServerURL == "" {
		return nil, fmt.Errorf("nlp.server_url must be set")
	}

	var minVersion *semver.Version
	if cfg.NLP.MinServerVersion != "" {
		v, err := semver.NewVersion(cfg.NLP.MinServerVersion)
		if err != nil {
			return nil, fmt.Errorf("error parsing nlp.min_server_version: %w", err)
		}
		minVersion = v
	}

	return &Client{
		httpClient: NewRetryableHTTPClient(cfg.NLP.RetryMax, cfg.NLP.Timeout),
		baseURL:    strings.TrimRight(cfg.NLP.ServerURL, "/"),
		model:      config.ModelName,
		minVersion: minVersion,
	}, nil
}

// Detect posts text to the NLP server and returns the entities it found, in document order.
func (c *Client) Detect(ctx context.Context, text string) ([]models.ContextEntity, error) {
	req, err := c.newRequest(ctx, http.MethodPost, contextPath, models.ContextRequest{
		Text:  text,
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp models.ContextResponse
	if err := c.doRequest(req, &resp); err != nil {
		return nil, err
	}

	entities := make([]models.ContextEntity, 0, len(resp.Entities))
	if err := copier.Copy(&entities, &resp.Entities); err != nil {
		return nil, fmt.Errorf("failed to copy context entities: %w", err)
	}

	log.Debugf("nlp server returned %d entities for %d characters", len(entities), len(text))

	return entities, nil
}

// Health queries the NLP server's health endpoint and checks its version against
// nlp.min_server_version.
func (c *Client) Health(ctx context.Context) (*models.ModelInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var info models.ModelInfo
	if err := c.doRequest(req, &info); err != nil {
		return nil, err
	}

	if err := c.checkVersion(info.Version); err != nil {
		return &info, err
	}

	return &info, nil
}

func (c *Client) checkVersion(version string) error {
	if c.minVersion == nil {
		return nil
	}

	serverVersion, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf(
			"%w: error parsing nlp server version %q: %v",
			models.ErrModelUnavailable,
			version,
			err,
		)
	}

	if serverVersion.LessThan(c.minVersion) {
		return fmt.Errorf(
			"%w: nlp server version %s is older than the required %s",
			models.ErrModelUnavailable,
			serverVersion,
			c.minVersion,
		)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	buf := new(bytes.Buffer)
	if body != nil {
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/%s", c.baseURL, path), buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if requestID := models.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(models.RequestIDHeader, requestID)
	}

	return req, nil
}

func (c *Client) doRequest(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
	}

	defer func(body io.ReadCloser) {
		body.Close()
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return models.NewModelError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: error reading response body: %v", models.ErrModelUnavailable, err)
	}

	if len(body) == 0 {
		return fmt.Errorf("%w: received empty response", models.ErrModelUnavailable)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: error unmarshaling response body: %v", models.ErrModelUnavailable, err)
	}

	return nil
}
