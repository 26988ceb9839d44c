package client

import (
	"context"
	"fmt"

	errs "auto-monocle/internal/errors"
	"auto-monocle/pkg/models"
)

// GetStates fetches every entity state known to Home Assistant.
func (c *HAClient) GetStates(ctx context.Context) ([]models.State, error) {
	body, err := get(ctx, c.HTTP.R(), c.Config.StatesTimeout, "/api/states", "GetStates")
	if err != nil {
		return nil, err
	}

	states, _, err := models.DecodeList[models.State](body)
	if err != nil {
		return nil, errs.WrapInvalid(fmt.Errorf("%w: %v", errs.ErrInvalidResponse, err), "client", "GetStates", "decode")
	}
	return states, nil
}
