// Package glidingapp fetches the daily flight list from the GlidingApp club API.
package glidingapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/antonholmquist/jason"

	"flightlog-reconciler/internal/interface/jsonutil"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/normalizer"
)

// Client calls {baseURL}/flights.json authenticated with an API key.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a GlidingApp client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, apiToken string, httpClient *http.Client, logger logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchFlights returns the raw flights logged on date (YYYY-MM-DD).
func (c *Client) FetchFlights(ctx context.Context, date string) ([]normalizer.GlidingAppFlight, error) {
	endpoint, err := url.Parse(c.baseURL + "/flights.json")
	if err != nil {
		return nil, fmt.Errorf("invalid glidingapp base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("date", date)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request glidingapp flights: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read glidingapp response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("glidingapp returned status %d", resp.StatusCode)
	}

	objs, err := jsonutil.Objects(body, "")
	if err != nil {
		return nil, err
	}

	flights := make([]normalizer.GlidingAppFlight, 0, len(objs))
	for _, obj := range objs {
		flights = append(flights, decodeFlight(obj))
	}
	c.logger.Debug("Fetched glidingapp flights", "date", date, "count", len(flights))
	return flights, nil
}

func decodeFlight(obj *jason.Object) normalizer.GlidingAppFlight {
	return normalizer.GlidingAppFlight{
		UUID:         jsonutil.String(obj, "uuid"),
		SeqNo:        jsonutil.Int(obj, "volg_nummer"),
		Date:         jsonutil.String(obj, "datum"),
		LaunchMethod: jsonutil.String(obj, "start_methode"),
		Callsign:     jsonutil.String(obj, "callsign"),
		Takeoff:      jsonutil.String(obj, "start_tijd"),
		Landing:      jsonutil.String(obj, "landings_tijd"),
		PicAccount:   jsonutil.String(obj, "pic_m_id"),
		PicName:      jsonutil.String(obj, "gezagvoerder_naam"),
		P2Account:    jsonutil.String(obj, "second_pilot_m_id"),
		P2Name:       jsonutil.String(obj, "tweede_inzittende_naam"),
		PayerAccount: jsonutil.String(obj, "paying_pilot_m_id"),
		TowUUID:      jsonutil.String(obj, "sleep_uuid"),
		Altitude:     jsonutil.String(obj, "height"),
		Remarks:      jsonutil.String(obj, "bijzonderheden"),
		Category:     jsonutil.String(obj, "category"),
	}
}
