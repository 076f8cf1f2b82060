package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/mobiflow/hubopt/internal/model"
)

// maxFeedBytes caps the station feed response size.
const maxFeedBytes = 4 * 1024 * 1024

// JCDecauxOptions configures the Dublin Bikes feed client.
type JCDecauxOptions struct {
	BaseURL  string
	Contract string
	APIKey   string
	Timeout  time.Duration
}

// JCDecauxClient fetches live station data from the JCDecaux VLS API.
type JCDecauxClient struct {
	http    *http.Client
	opts    JCDecauxOptions
	limiter *rate.Limiter
}

// NewJCDecauxClient creates a client with sensible defaults. The API
// allows generous polling; one request per second is far below its cap.
func NewJCDecauxClient(opts JCDecauxOptions) *JCDecauxClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.jcdecaux.com"
	}
	if opts.Contract == "" {
		opts.Contract = "dublin"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &JCDecauxClient{
		http:    &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(1, 1),
	}
}

// jcdStation mirrors one station object of the VLS stations feed.
type jcdStation struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"position"`
	AvailableBikes      int    `json:"available_bikes"`
	AvailableBikeStands int    `json:"available_bike_stands"`
	BikeStands          int    `json:"bike_stands"`
	Status              string `json:"status"`
	LastUpdate          int64  `json:"last_update"`
}

// Stations fetches the current station list for the configured contract.
func (c *JCDecauxClient) Stations(ctx context.Context) ([]model.BikeStation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "jcdecaux: rate limit wait")
	}

	u := c.opts.BaseURL + "/vls/v1/stations?contract=" + url.QueryEscape(c.opts.Contract) +
		"&apiKey=" + url.QueryEscape(c.opts.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "jcdecaux: create request")
	}
	req.Header.Set("User-Agent", "hubopt/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "jcdecaux: fetch stations")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("jcdecaux: stations feed returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, eris.Wrap(err, "jcdecaux: read response")
	}

	var raw []jcdStation
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, eris.Wrap(err, "jcdecaux: decode stations")
	}

	stations := make([]model.BikeStation, 0, len(raw))
	for _, s := range raw {
		stations = append(stations, model.BikeStation{
			ID:              s.Number,
			Name:            s.Name,
			Lat:             s.Position.Lat,
			Lng:             s.Position.Lng,
			AvailableBikes:  s.AvailableBikes,
			AvailableStands: s.AvailableBikeStands,
			TotalCapacity:   s.BikeStands,
			Status:          s.Status,
			LastUpdate:      time.UnixMilli(s.LastUpdate).UTC(),
		})
	}
	return stations, nil
}
