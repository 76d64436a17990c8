package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	requestTimeout     = 15 * time.Second
)

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewClient(cfg *config.WeatherConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Current issues one GET for the location, metric units. Any failure comes
// back as a core.UpstreamError carrying a user-presentable message.
func (c *Client) Current(ctx context.Context, location string) (core.WeatherSnapshot, error) {
	location = strings.TrimSpace(location)

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	reqURL := c.baseURL + currentWeatherPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return core.WeatherSnapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return core.WeatherSnapshot{}, core.NewUpstreamError("weather", "Weather API request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.WeatherSnapshot{}, core.NewUpstreamError("weather", "Weather API response unreadable", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.FromCtx(ctx).Debug().
			Int("status", resp.StatusCode).
			Str("location", location).
			Msg("weather api returned non-200")
		return core.WeatherSnapshot{}, core.NewUpstreamError(
			"weather",
			fmt.Sprintf("Weather API error: http %d for %q", resp.StatusCode, location),
			nil,
		)
	}

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return core.WeatherSnapshot{}, core.NewUpstreamError("weather", "Weather API returned malformed JSON", err)
	}

	snapshot := core.WeatherSnapshot{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		snapshot.Condition = payload.Weather[0].Description
	}

	log.FromCtx(ctx).Debug().
		Str("location", location).
		Float64("temp", snapshot.Temperature).
		Str("condition", snapshot.Condition).
		Msg("fetched weather snapshot")

	return snapshot, nil
}
