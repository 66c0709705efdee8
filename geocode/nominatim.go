package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client reverse-geocodes coordinates into a human area name using the
// Nominatim API, so the specialist search can be constrained to a locality
// when the caller only has GPS coordinates.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetBaseURL("https://nominatim.openstreetmap.org").
			SetHeader("User-Agent", "MedicAid/1.0").
			SetTimeout(10 * time.Second),
	}
}

type reverseResponse struct {
	Address struct {
		Suburb       string `json:"suburb"`
		CityDistrict string `json:"city_district"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
	Error string `json:"error"`
}

// ReverseArea returns "Suburb, City, Country" (best available parts) for
// the given coordinates.
func (c *Client) ReverseArea(ctx context.Context, lat, lng float64) (string, error) {
	var out reverseResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    fmt.Sprintf("%f", lat),
			"lon":    fmt.Sprintf("%f", lng),
		}).
		SetResult(&out).
		Get("/reverse")
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", errors.New("reverse geocode failed: " + out.Error)
	}

	locality := out.Address.Suburb
	if locality == "" {
		locality = out.Address.CityDistrict
	}
	city := out.Address.City
	if city == "" {
		city = out.Address.Town
	}
	if city == "" {
		city = out.Address.Village
	}

	var parts []string
	for _, p := range []string{locality, city, out.Address.State, out.Address.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("reverse geocode returned no usable address")
	}
	return strings.Join(parts, ", "), nil
}
