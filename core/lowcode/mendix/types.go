package mendix

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// DeploymentCategory is how a Mendix application is hosted
type DeploymentCategory string

const (
	// CategoryCloud is Mendix Cloud, billed through resource packs
	CategoryCloud DeploymentCategory = "cloud"

	// CategoryPrivateCloud is Mendix on a customer Kubernetes cluster
	CategoryPrivateCloud DeploymentCategory = "private-cloud"

	// CategoryOther is a flat-fee target (server, StackIT, SAP BTP)
	CategoryOther DeploymentCategory = "other"
)

// PackSelection is a quantity of one resource pack
type PackSelection struct {
	Pack     ResourcePackKey `json:"pack"`
	Quantity int             `json:"quantity"`
}

// GenAISelection is a quantity of one GenAI model pack
type GenAISelection struct {
	Size     GenAISize `json:"size"`
	Quantity int       `json:"quantity"`
}

// Config is one Mendix pricing session
type Config struct {
	Category DeploymentCategory `json:"category"`

	InternalUsers int `json:"internal_users"`
	ExternalUsers int `json:"external_users"`

	// Cloud
	ResourcePacks []PackSelection `json:"resource_packs,omitempty"`

	// Private Cloud
	PrivateCloudTarget PrivateCloudTarget `json:"private_cloud_target,omitempty"`
	Environments       int                `json:"environments,omitempty"`

	// Other
	OtherTarget   OtherTarget `json:"other_target,omitempty"`
	Apps          int         `json:"apps,omitempty"`
	UnlimitedApps bool        `json:"unlimited_apps,omitempty"`

	// Add-ons
	GenAIPacks         []GenAISelection `json:"genai_packs,omitempty"`
	GenAIKnowledgeBase bool             `json:"genai_knowledge_base,omitempty"`
	CustomerEnablement bool             `json:"customer_enablement,omitempty"`

	ExtraFileStorageGB     int `json:"extra_file_storage_gb,omitempty"`
	ExtraDatabaseStorageGB int `json:"extra_database_storage_gb,omitempty"`

	// DiscountPercent applies to the subtotal; nil uses the engine default
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

// Result is the annual Mendix cost
type Result struct {
	PlatformLicenseCost decimal.Decimal `json:"platform_license_cost"`
	UserLicenseCost     decimal.Decimal `json:"user_license_cost"`
	DeploymentFeeCost   decimal.Decimal `json:"deployment_fee_cost"`
	EnvironmentCost     decimal.Decimal `json:"environment_cost"`
	StorageCost         decimal.Decimal `json:"storage_cost"`
	GenAICost           decimal.Decimal `json:"genai_cost"`
	ServicesCost        decimal.Decimal `json:"services_cost"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	TotalPerYear   decimal.Decimal `json:"total_per_year"`
	TotalPerMonth  decimal.Decimal `json:"total_per_month"`
	ThreeYearTotal decimal.Decimal `json:"three_year_total"`

	// BillableEnvironments is the Private Cloud environment count beyond the base package
	BillableEnvironments int `json:"billable_environments,omitempty"`

	LineItems []types.CostLineItem `json:"line_items"`
	Notes     []string             `json:"notes,omitempty"`
}

// LicenseLines returns every line except the services engagement
func (r *Result) LicenseLines() []types.CostLineItem {
	if r.ServicesCost.IsPositive() && len(r.LineItems) > 0 {
		return r.LineItems[:len(r.LineItems)-1]
	}
	return r.LineItems
}

// ServiceLines returns the services engagement line, if any.
// Calculate appends it last.
func (r *Result) ServiceLines() []types.CostLineItem {
	if r.ServicesCost.IsPositive() && len(r.LineItems) > 0 {
		return r.LineItems[len(r.LineItems)-1:]
	}
	return nil
}

// ParsePackSelection parses "tier/size[-DB][:quantity]", e.g. "premium/L-DB:2".
// The quantity defaults to one.
func ParsePackSelection(s string) (PackSelection, error) {
	spec, qtyText, hasQty := strings.Cut(s, ":")
	qty := 1
	if hasQty {
		n, err := strconv.Atoi(qtyText)
		if err != nil || n < 0 {
			return PackSelection{}, errors.InvalidArgument("invalid resource pack quantity in %q", s)
		}
		qty = n
	}

	tier, size, ok := strings.Cut(spec, "/")
	if !ok || tier == "" || size == "" {
		return PackSelection{}, errors.InvalidArgument("resource pack %q is not tier/size", s)
	}
	key := ResourcePackKey{Tier: SLATier(strings.ToLower(tier))}
	if base, found := strings.CutSuffix(strings.ToUpper(size), "-DB"); found {
		key.DBEnhanced = true
		size = base
	}
	key.Size = PackSize(strings.ToUpper(size))

	if _, err := LookupResourcePack(key); err != nil {
		return PackSelection{}, err
	}
	return PackSelection{Pack: key, Quantity: qty}, nil
}
