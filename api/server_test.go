package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/output"
	"infra-tco/core/types"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	s, err := NewServer("test", opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

const awsEstimate = `{
  "provider": "aws",
  "environments": [
    {"environment": "prod", "nodes": 3, "cpu": 8, "ram_gb": 32, "disk_gb": 100}
  ],
  "load_balancers": 1
}`

func TestEstimate(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/estimate", awsEstimate)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v output.EstimateView
	decodeBody(t, resp, &v)
	assert.Equal(t, "aws", v.Provider)
	assert.True(t, v.PricingIncluded)
	assert.True(t, strings.HasPrefix(v.MonthlyTotal, "$"))
	assert.NotEmpty(t, v.Categories)
	require.Len(t, v.Environments, 1)
	assert.Equal(t, types.EnvProd, v.Environments[0].Environment)
}

func TestEstimateHidesPricing(t *testing.T) {
	hidden := newTestServer(t, WithIncludePricing(false))

	resp := post(t, hidden.URL+"/estimate?include_pricing=true", awsEstimate)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v output.EstimateView
	decodeBody(t, resp, &v)
	assert.False(t, v.PricingIncluded)
	assert.Equal(t, output.NotAvailable, v.MonthlyTotal)
	assert.Equal(t, output.NotAvailable, v.FiveYearTCO)

	shown := newTestServer(t)
	resp = post(t, shown.URL+"/estimate?include_pricing=false", awsEstimate)
	decodeBody(t, resp, &v)
	assert.Equal(t, output.NotAvailable, v.MonthlyTotal)
}

func TestEstimateErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed", `{"provider":`, "INVALID_ARGUMENT"},
		{"unknown field", `{"flavour": "vanilla"}`, "INVALID_ARGUMENT"},
		{"unknown provider", `{"provider": "mainframe", "environments": [{"environment": "prod", "nodes": 1, "cpu": 2, "ram_gb": 4}]}`, "INVALID_ARGUMENT"},
		{"negative count", `{"provider": "aws", "public_ips": -1}`, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body ErrorBody
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestPricing(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/pricing/aws?pricing_type=reserved-1yr")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p PricingResponse
	decodeBody(t, resp, &p)
	assert.Equal(t, types.ProviderAWS, p.Provider)
	assert.Equal(t, types.PricingReserved1Y, p.PricingType)
	assert.Equal(t, "default", p.Source)
	require.NotNil(t, p.Rates)
	assert.True(t, p.Rates.Compute.PerVCPUHour.IsPositive())

	resp = get(t, ts.URL+"/pricing/mainframe")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	hidden := newTestServer(t, WithIncludePricing(false))
	resp = get(t, hidden.URL+"/pricing/gcp")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &p)
	assert.Nil(t, p.Rates)
	assert.False(t, p.PricingIncluded)
}

func TestLicensing(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/licensing/openshift", `{"node_count": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lr LicensingResponse
	decodeBody(t, resp, &lr)
	assert.True(t, lr.Known)
	assert.True(t, lr.HasLicense)
	assert.Equal(t, "$25,000", lr.AnnualCost)

	resp = post(t, ts.URL+"/licensing/nomad", `{"node_count": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lr = LicensingResponse{}
	decodeBody(t, resp, &lr)
	assert.False(t, lr.Known)
	assert.False(t, lr.HasLicense)
	assert.Equal(t, "$0", lr.AnnualCost)

	resp = post(t, ts.URL+"/licensing/openshift", `{"node_count": -1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAlternatives(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/alternatives/openshift")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ar AlternativesResponse
	decodeBody(t, resp, &ar)
	require.NotEmpty(t, ar.Alternatives)
	assert.Equal(t, types.ProviderROSA, ar.Alternatives[0].Provider)

	resp = get(t, ts.URL+"/alternatives/nomad")
	ar = AlternativesResponse{}
	decodeBody(t, resp, &ar)
	require.NotEmpty(t, ar.Alternatives)
	for _, alt := range ar.Alternatives {
		src, ok := alt.SourceDistribution.Get()
		assert.True(t, ok)
		assert.Equal(t, types.Distribution("nomad"), src)
	}
}

func TestLowCodeRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/mendix", `{"category": "private-cloud", "private_cloud_target": "eks", "internal_users": 100, "environments": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v output.SubscriptionView
	decodeBody(t, resp, &v)
	assert.Equal(t, "mendix", v.Platform)
	assert.NotEmpty(t, v.LineItems)

	resp = post(t, ts.URL+"/outsystems", `{"edition": "standard", "deployment_type": "cloud", "internal_users": 100, "environments": 3, "discount_percent": "0"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = output.SubscriptionView{}
	decodeBody(t, resp, &v)
	assert.Equal(t, "outsystems", v.Platform)

	resp = post(t, ts.URL+"/mendix", `{"category": "cloud", "internal_users": -5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthVersionMetrics(t *testing.T) {
	ts := newTestServer(t, WithLivePricing(true))

	resp := get(t, ts.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var h HealthResponse
	decodeBody(t, resp, &h)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "test", h.Version)
	assert.True(t, h.LivePricing)

	resp = get(t, ts.URL+"/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	post(t, ts.URL+"/estimate", awsEstimate)

	resp = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err := io.Copy(&buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tco_http_requests_total")
	assert.Contains(t, buf.String(), `tco_estimates_total{target="auto"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
