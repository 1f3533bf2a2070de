// Package weather fetches current conditions for the home feed widget.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Snapshot is the home-feed weather card. Available is false when the
// upstream fetch failed; the feed renders a placeholder instead of erroring.
type Snapshot struct {
	City      string  `json:"city"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	IconURL   string  `json:"icon_url,omitempty"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	Available bool    `json:"available"`
}

// Client talks to weatherapi.com.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Humidity  int     `json:"humidity"`
		WindKph   float64 `json:"wind_kph"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
}

// Current fetches conditions for the query ("auto:ip" resolves by caller
// IP). Any failure degrades to an unavailable snapshot.
func (c *Client) Current(ctx context.Context, query string) Snapshot {
	if c.apiKey == "" {
		return unavailable()
	}
	if query == "" {
		query = "auto:ip"
	}
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable()
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return unavailable()
	}
	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return unavailable()
	}
	icon := body.Current.Condition.Icon
	if icon != "" {
		icon = "https:" + icon
	}
	return Snapshot{
		City:      body.Location.Name,
		TempC:     body.Current.TempC,
		Condition: body.Current.Condition.Text,
		IconURL:   icon,
		Humidity:  body.Current.Humidity,
		WindKph:   body.Current.WindKph,
		Available: true,
	}
}

func unavailable() Snapshot {
	return Snapshot{Condition: "Weather unavailable"}
}
