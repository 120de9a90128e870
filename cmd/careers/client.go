package main

import (
	"fmt"

	"github.com/jonathan/careers-page/internal/config"
	"github.com/jonathan/careers-page/internal/greenhouse"
)

func newClient(cfg *config.Config) (*greenhouse.Client, error) {
	client, err := greenhouse.New(greenhouse.Options{
		BaseURL:    cfg.GreenhouseBaseURL,
		APIKey:     cfg.GreenhouseAPIKey,
		OnBehalfOf: cfg.OnBehalfOf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create greenhouse client: %w", err)
	}
	return client, nil
}
