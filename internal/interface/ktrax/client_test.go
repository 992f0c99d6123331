package ktrax

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-reconciler/pkg/logger"
)

const endpoint = "https://ktrax.test/backend/logbook"

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := NewClient(endpoint, "GRANSDEN LODGE", "1", &http.Client{Transport: transport}, logger.NewNopLogger())
	return client, transport
}

func TestFetchSortiesWrapped(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, endpoint,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "ap", q.Get("query_type"))
			assert.Equal(t, "GRANSDEN LODGE", q.Get("id"))
			assert.Equal(t, "1", q.Get("tz"))
			assert.Equal(t, "2025-06-01", q.Get("dbeg"))
			assert.Equal(t, "2025-06-01", q.Get("dend"))
			return httpmock.NewStringResponse(http.StatusOK, `{"sorties":[
				{"seq":11,"date":"2025-06-01","launch":"T","cn":"DU","tkof":{"time":"10:03"},"ldg":{"time":"10:41"},"tow_seq":12},
				{"seq":12,"date":"2025-06-01","launch":"S","cn":"SB","callsign":"GELSB","tkof":{"time":"10:03"},"ldg":null,"dalt":610}
			]}`), nil
		})

	sorties, err := client.FetchSorties(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.Len(t, sorties, 2)

	assert.Equal(t, "11", *sorties[0].Seq)
	assert.Equal(t, "12", *sorties[0].TowSeq)
	assert.Equal(t, "10:03", *sorties[0].Takeoff)
	assert.Equal(t, "10:41", *sorties[0].Landing)
	assert.Nil(t, sorties[0].Altitude)

	assert.Equal(t, "GELSB", *sorties[1].Callsign)
	assert.Equal(t, "610", *sorties[1].Altitude)
	assert.Nil(t, sorties[1].Landing)
}

func TestFetchSortiesBareArray(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `[{"seq":"1","cn":"K8","launch":"W"}]`))

	sorties, err := client.FetchSorties(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.Len(t, sorties, 1)
	assert.Equal(t, "W", *sorties[0].Launch)
	assert.Nil(t, sorties[0].Takeoff)
}

func TestFetchSortiesServerError(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err := client.FetchSorties(context.Background(), "2025-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchSortiesTransportError(t *testing.T) {
	client, _ := newTestClient(t)

	// no responder registered: the mock transport refuses the request
	_, err := client.FetchSorties(context.Background(), "2025-06-01")
	assert.Error(t, err)
}
