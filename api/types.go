package api

import (
	"time"

	"infra-tco/core/output"
	"infra-tco/core/types"
)

// LicensingResponse wraps a licensing view
type LicensingResponse struct {
	*output.LicensingView

	// Known is false when the distribution is not in the catalog and was priced with no license
	Known bool `json:"known"`
}

// PricingResponse is the body of GET /pricing/{provider}.
// Rates is omitted when pricing is hidden.
type PricingResponse struct {
	Provider        types.CloudProvider `json:"provider"`
	Region          string              `json:"region"`
	PricingType     types.PricingType   `json:"pricing_type"`
	Currency        types.Currency      `json:"currency"`
	Source          string              `json:"source"`
	PricingIncluded bool                `json:"pricing_included"`
	Rates           *types.PricingModel `json:"rates,omitempty"`
}

// AlternativesResponse is the body of GET /alternatives/{distribution}
type AlternativesResponse struct {
	Distribution types.Distribution       `json:"distribution"`
	Alternatives []types.CloudAlternative `json:"alternatives"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Time        time.Time `json:"time"`
	LivePricing bool      `json:"live_pricing"`
}

// ErrorBody is the error envelope of every failed request
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
