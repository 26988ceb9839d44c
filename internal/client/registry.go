package client

import (
	"context"
	"fmt"

	errs "auto-monocle/internal/errors"
	"auto-monocle/pkg/models"
)

// GetConfigEntries lists the configured integrations.
func (c *HAClient) GetConfigEntries(ctx context.Context) ([]models.ConfigEntry, error) {
	body, err := get(ctx, c.HTTP.R(), c.Config.RequestTimeout, "/api/config/config_entries/entry", "GetConfigEntries")
	if err != nil {
		return nil, err
	}

	entries, _, err := models.DecodeList[models.ConfigEntry](body)
	if err != nil {
		return nil, errs.WrapInvalid(fmt.Errorf("%w: %v", errs.ErrInvalidResponse, err), "client", "GetConfigEntries", "decode")
	}
	return entries, nil
}

// GetDevices fetches the device registry.
func (c *HAClient) GetDevices(ctx context.Context) ([]models.Device, error) {
	body, err := get(ctx, c.HTTP.R(), c.Config.RequestTimeout, "/api/config/device_registry", "GetDevices")
	if err != nil {
		return nil, err
	}

	devices, _, err := models.DecodeList[models.Device](body)
	if err != nil {
		return nil, errs.WrapInvalid(fmt.Errorf("%w: %v", errs.ErrInvalidResponse, err), "client", "GetDevices", "decode")
	}
	return devices, nil
}
