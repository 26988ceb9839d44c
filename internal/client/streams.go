package client

import (
	"context"
	"encoding/json"
	"fmt"

	"auto-monocle/internal/auth"
	errs "auto-monocle/internal/errors"
	"auto-monocle/pkg/models"
)

// GetStreams fetches the stream map of the go2rtc instance at url.
func (c *HAClient) GetStreams(ctx context.Context, url string) (models.StreamList, error) {
	req := c.Probe.R()
	if auth.NeedsSupervisorAuth(url) {
		req.SetHeader("Authorization", auth.BearerToken(c.Config.Token))
	}

	body, err := get(ctx, req, c.Config.ProbeTimeout, url, "GetStreams")
	if err != nil {
		return nil, err
	}

	var streams models.StreamList
	if err := json.Unmarshal(body, &streams); err != nil {
		return nil, errs.WrapInvalid(fmt.Errorf("%w: %v", errs.ErrInvalidResponse, err), "client", "GetStreams", "decode")
	}
	return streams, nil
}

// ProbeStreams tries each configured go2rtc endpoint in order and returns the
// streams of the first one that answers, together with its URL. Later
// endpoints are not contacted once one succeeds. When none answers the error
// wraps ErrNoStreamServer.
func (c *HAClient) ProbeStreams(ctx context.Context) (models.StreamList, string, error) {
	var lastErr error
	for _, url := range c.Config.StreamEndpoints {
		streams, err := c.GetStreams(ctx, url)
		if err == nil {
			return streams, url, nil
		}
		lastErr = err
	}

	err := fmt.Errorf("%w (tried %d endpoints)", errs.ErrNoStreamServer, len(c.Config.StreamEndpoints))
	if lastErr != nil {
		err = fmt.Errorf("%w; last error: %v", err, lastErr)
	}
	return nil, "", errs.WrapDegraded(err, "client", "ProbeStreams", "probe")
}
