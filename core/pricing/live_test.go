package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

const ratePayload = `{
	"currency": "USD",
	"compute": {"per_vcpu_hour": "0.041", "per_gb_ram_hour": "0.0052", "managed_control_plane_hour": "0.10"},
	"storage": {"ssd_per_gb_month": "0.085"},
	"network": {"egress_per_gb": "0.08"}
}`

func TestHTTPRateSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/rates/aws/eu-west-1", req.URL.Path)
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ratePayload))
	}))
	defer srv.Close()

	src := NewHTTPRateSource(srv.URL, "secret", time.Second)
	card, err := src.Fetch(context.Background(), types.ProviderAWS, "eu-west-1")
	require.NoError(t, err)

	assert.Equal(t, types.ProviderAWS, card.Provider)
	assert.Equal(t, "eu-west-1", card.Region)
	assert.Equal(t, "0.041", card.Compute.PerVCPUHour.String())
	assert.False(t, card.RetrievedAt.IsZero())
}

func TestRefreshRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(ratePayload))
	}))
	defer srv.Close()

	r := NewRefresher(map[types.CloudProvider]RateSource{
		types.ProviderAWS: NewHTTPRateSource(srv.URL, "", time.Second),
	}, RefresherConfig{Timeout: 10 * time.Second}, nil)

	card, err := r.Refresh(context.Background(), types.ProviderAWS, "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	cached, ok := r.Lookup(types.ProviderAWS, "us-east-1")
	require.True(t, ok)
	assert.Same(t, card, cached)
}

func TestRefreshDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	r := NewRefresher(map[types.CloudProvider]RateSource{
		types.ProviderAzure: NewHTTPRateSource(srv.URL, "bad", time.Second),
	}, RefresherConfig{}, nil)

	_, err := r.Refresh(context.Background(), types.ProviderAzure, "eastus")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())

	_, ok := r.Lookup(types.ProviderAzure, "eastus")
	assert.False(t, ok)
}

func TestRefreshAllFallsBackOnFailure(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ratePayload))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	r := NewRefresher(map[types.CloudProvider]RateSource{
		types.ProviderAWS: NewHTTPRateSource(good.URL, "", time.Second),
		types.ProviderGCP: NewHTTPRateSource(bad.URL, "", time.Second),
	}, RefresherConfig{}, nil)

	n := r.RefreshAll(context.Background(), []Target{
		{Provider: types.ProviderAWS, Region: "us-east-1"},
		{Provider: types.ProviderGCP, Region: "us-central1"},
		{Provider: types.ProviderOCI, Region: "us-ashburn-1"},
	})
	assert.Equal(t, 1, n)

	reg := NewRegistry(WithRateOverrides(r))

	aws, err := reg.GetPricing(types.ProviderAWS, "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "live", aws.Source)

	gcp, err := reg.GetPricing(types.ProviderGCP, "us-central1")
	require.NoError(t, err)
	assert.Equal(t, "default", gcp.Source)
}
