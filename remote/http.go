package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/internal/httpclient"
	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/version"
)

const (
	resourcesPath = "/api/v1/resources"
	statusPath    = "/api/v1/status"

	// maxErrorBody caps how much of a failure response is kept in the
	// error message and, through it, the execution report.
	maxErrorBody = 512
)

// Options configures the HTTP registry client.
type Options struct {
	BaseURL string
	Token   string

	// Timeout is the per-request timeout. Zero means 30s.
	Timeout time.Duration

	// RatePerSecond and Burst feed the client-side request limiter. Zero
	// values mean 2 req/s with no burst headroom.
	RatePerSecond float64
	Burst         int

	// MinServerVersion is a semver constraint the server must satisfy
	// before a run starts (e.g. ">= 1.9.0"). Empty disables the check.
	MinServerVersion string

	// AllowPrivateHosts disables the private-address guard for registries
	// on lab-internal networks.
	AllowPrivateHosts bool
}

// HTTPClient talks to the registry's JSON API. Every request first waits on
// the client-side rate limiter, so even a tight record loop cannot exceed
// the configured request rate.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	minVersion *semver.Constraints
	log        *zap.SugaredLogger
}

// NewHTTPClient validates the options and builds a client. The base URL
// must be absolute; a malformed URL or version constraint is a
// configuration error.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "invalid registry base URL %q: %v", opts.BaseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, errors.Wrapf(errors.ErrConfig, "registry base URL %q must be absolute", opts.BaseURL)
	}

	var constraint *semver.Constraints
	if opts.MinServerVersion != "" {
		constraint, err = semver.NewConstraint(opts.MinServerVersion)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrConfig, "invalid minimum server version %q: %v", opts.MinServerVersion, err)
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	perSecond := opts.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	blockPrivate := !opts.AllowPrivateHosts
	safer := httpclient.NewSaferClientWithOptions(timeout, httpclient.SaferClientOptions{
		BlockPrivateIP: &blockPrivate,
	})

	return &HTTPClient{
		baseURL:    base,
		token:      opts.Token,
		httpClient: safer.Client,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		minVersion: constraint,
		log:        logger.ComponentLogger("registry"),
	}, nil
}

// SetHTTPClient overrides the underlying HTTP client, for tests.
func (c *HTTPClient) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Fetch implements Client.
func (c *HTTPClient) Fetch(ctx context.Context, resourceID string) (meta.Snapshot, error) {
	var payload resourcePayload
	err := c.call(ctx, http.MethodGet, c.resourceURL(resourceID), nil, &payload)
	if err != nil {
		return meta.Snapshot{}, errors.Wrapf(err, "fetch %s", resourceID)
	}
	return payload.snapshot(), nil
}

// Apply implements Client.
func (c *HTTPClient) Apply(ctx context.Context, resourceID string, snapshot meta.Snapshot) error {
	body := payloadFromSnapshot(snapshot)
	if err := c.call(ctx, http.MethodPut, c.resourceURL(resourceID), body, nil); err != nil {
		return errors.Wrapf(err, "apply %s", resourceID)
	}
	return nil
}

// Create implements Client.
func (c *HTTPClient) Create(ctx context.Context, resourceID string, snapshot meta.Snapshot) error {
	body := payloadFromSnapshot(snapshot)
	body.ID = resourceID
	if err := c.call(ctx, http.MethodPost, c.baseURL.String()+resourcesPath, body, nil); err != nil {
		return errors.Wrapf(err, "create %s", resourceID)
	}
	return nil
}

// Ping implements Client.
func (c *HTTPClient) Ping(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	if err := c.call(ctx, http.MethodGet, c.baseURL.String()+statusPath, nil, &info); err != nil {
		return ServerInfo{}, errors.Wrap(err, "registry status")
	}

	if c.minVersion != nil {
		v, err := semver.NewVersion(info.Version)
		if err != nil {
			return info, errors.Wrapf(errors.ErrServerUnavailable,
				"registry reports unparseable version %q", info.Version)
		}
		if !c.minVersion.Check(v) {
			return info, errors.Wrapf(errors.ErrServerUnavailable,
				"registry version %s does not satisfy required %s", info.Version, c.minVersion)
		}
	}
	return info, nil
}

func (c *HTTPClient) resourceURL(resourceID string) string {
	return c.baseURL.String() + resourcesPath + "/" + url.PathEscape(resourceID)
}

// call performs one rate-limited request and decodes a JSON response into
// out when out is non-nil.
func (c *HTTPClient) call(ctx context.Context, method, requestURL string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrServerUnavailable, "%s %s: %v", method, requestURL, err)
	}
	defer resp.Body.Close()

	fields := append(logger.FieldsFromContext(ctx),
		logger.FieldMethod, method,
		logger.FieldPath, req.URL.Path,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	c.log.Debugw("registry call", fields...)

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decode %s response", method)
		}
	}
	return nil
}

// classifyStatus maps an HTTP failure onto the shared error sentinels. The
// response body, when present, is kept as the server's own explanation.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := readErrorBody(resp.Body)

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		sentinel = errors.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		sentinel = errors.ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		sentinel = errors.ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		sentinel = errors.ErrValidation
	case resp.StatusCode >= 500:
		sentinel = errors.ErrServerUnavailable
	default:
		if detail == "" {
			return errors.Newf("unexpected status %d", resp.StatusCode)
		}
		return errors.Newf("unexpected status %d: %s", resp.StatusCode, detail)
	}

	if detail == "" {
		return errors.Wrapf(sentinel, "status %d", resp.StatusCode)
	}
	return errors.Wrapf(sentinel, "status %d: %s", resp.StatusCode, detail)
}

// readErrorBody extracts a short, single-line explanation from a failure
// response. Registries commonly wrap it as {"error": "..."} or
// {"message": "..."}.
func readErrorBody(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Error != "" {
			return wrapped.Error
		}
		if wrapped.Message != "" {
			return wrapped.Message
		}
	}
	return strings.Join(strings.Fields(string(raw)), " ")
}
