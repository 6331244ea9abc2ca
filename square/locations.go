package square

import (
	"context"
	"errors"
)

type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	resp, err := c.sdk.Locations.List(ctx)
	if err != nil {
		return nil, fromSDK(err)
	}

	locations := make([]Location, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		if l == nil {
			continue
		}
		locations = append(locations, Location{ID: deref(l.ID), Name: deref(l.Name), Status: deref(l.Status)})
	}

	return locations, nil
}

// FirstLocationID resolves the location used when a request names none.
func (c *Client) FirstLocationID(ctx context.Context) (string, error) {
	locations, err := c.ListLocations(ctx)
	if err != nil {
		return "", err
	}
	if len(locations) == 0 {
		return "", errors.New("square account has no locations")
	}

	return locations[0].ID, nil
}
