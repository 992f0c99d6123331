// Package ktrax fetches the airfield logbook from the KTrax tracking backend.
package ktrax

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/antonholmquist/jason"

	"flightlog-reconciler/internal/interface/jsonutil"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/normalizer"
)

// Client queries the KTrax logbook endpoint for one airfield.
type Client struct {
	endpoint   string
	airfieldID string
	timezone   string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a KTrax client. A nil httpClient uses http.DefaultClient.
func NewClient(endpoint, airfieldID, timezone string, httpClient *http.Client, logger logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		airfieldID: airfieldID,
		timezone:   timezone,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchSorties returns the raw sorties recorded at the airfield on date (YYYY-MM-DD).
func (c *Client) FetchSorties(ctx context.Context, date string) ([]normalizer.KTraxSortie, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid ktrax url: %w", err)
	}
	q := u.Query()
	q.Set("query_type", "ap")
	q.Set("id", c.airfieldID)
	q.Set("tz", c.timezone)
	q.Set("dbeg", date)
	q.Set("dend", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request ktrax logbook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ktrax response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ktrax returned status %d", resp.StatusCode)
	}

	objs, err := jsonutil.Objects(body, "sorties")
	if err != nil {
		return nil, err
	}

	sorties := make([]normalizer.KTraxSortie, 0, len(objs))
	for _, obj := range objs {
		sorties = append(sorties, decodeSortie(obj))
	}
	c.logger.Debug("Fetched ktrax sorties", "date", date, "airfield", c.airfieldID, "count", len(sorties))
	return sorties, nil
}

func decodeSortie(obj *jason.Object) normalizer.KTraxSortie {
	return normalizer.KTraxSortie{
		Seq:      jsonutil.String(obj, "seq"),
		Date:     jsonutil.String(obj, "date"),
		Launch:   jsonutil.String(obj, "launch"),
		CN:       jsonutil.String(obj, "cn"),
		Callsign: jsonutil.String(obj, "callsign"),
		Takeoff:  jsonutil.String(obj, "tkof", "time"),
		Landing:  jsonutil.String(obj, "ldg", "time"),
		TowSeq:   jsonutil.String(obj, "tow_seq"),
		Altitude: jsonutil.String(obj, "dalt"),
	}
}
