package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"auto-monocle/internal/auth"
	errs "auto-monocle/internal/errors"
)

// Default per-query timeouts. Queries are never retried.
const (
	DefaultStatesTimeout  = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultProbeTimeout   = 5 * time.Second
)

// HAClient talks to the Home Assistant core API through the supervisor proxy
// and to go2rtc stream servers.
type HAClient struct {
	// HTTP carries the supervisor credential on every request.
	HTTP *resty.Client
	// Probe has no default credential; it is added per request only for
	// supervisor URLs.
	Probe  *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	BaseURL         string
	Token           string   // SUPERVISOR_TOKEN
	StreamEndpoints []string // go2rtc /api/streams URLs, probed in order

	StatesTimeout  time.Duration
	RequestTimeout time.Duration
	ProbeTimeout   time.Duration
}

func New(cfg ClientConfig) *HAClient {
	if cfg.StatesTimeout <= 0 {
		cfg.StatesTimeout = DefaultStatesTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Authorization", auth.BearerToken(cfg.Token))
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	p := resty.New()
	p.SetHeader("Accept", "application/json")

	return &HAClient{
		HTTP:   r,
		Probe:  p,
		Config: cfg,
	}
}

// get performs a bounded GET and returns the body of a 200 response.
func get(ctx context.Context, req *resty.Request, timeout time.Duration, url, method string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := req.SetContext(ctx).Get(url)
	if err != nil {
		return nil, errs.WrapDegraded(err, "client", method, "request")
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errs.WrapDegraded(
			fmt.Errorf("%w: %s returned %d", errs.ErrUnexpectedStatus, url, resp.StatusCode()),
			"client", method, "request")
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, errs.WrapDegraded(errs.ErrEmptyResponse, "client", method, "request")
	}
	return body, nil
}

type apiStatus struct {
	Message string `json:"message"`
}

// Ping checks that the core API accepts the credential. It returns the
// status message Home Assistant answers with.
func (c *HAClient) Ping(ctx context.Context) (string, error) {
	body, err := get(ctx, c.HTTP.R(), c.Config.RequestTimeout, "/api/", "Ping")
	if err != nil {
		return "", err
	}

	var status apiStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return "", errs.WrapInvalid(fmt.Errorf("%w: %v", errs.ErrInvalidResponse, err), "client", "Ping", "decode")
	}
	return status.Message, nil
}
