// Package mendix prices Mendix low-code platform subscriptions.
package mendix

import (
	"sort"

	"github.com/shopspring/decimal"

	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// SLATier is the Mendix Cloud service level
type SLATier string

const (
	TierStandard    SLATier = "standard"
	TierPremium     SLATier = "premium"
	TierPremiumPlus SLATier = "premium-plus"
)

// PackSize is a resource pack size
type PackSize string

const (
	SizeXS    PackSize = "XS"
	SizeS     PackSize = "S"
	SizeM     PackSize = "M"
	SizeL     PackSize = "L"
	SizeXL    PackSize = "XL"
	SizeXXL   PackSize = "XXL"
	SizeXXXL  PackSize = "XXXL"
	SizeXXXXL PackSize = "XXXXL"
)

// sizeOrder ranks sizes from smallest to largest
var sizeOrder = []PackSize{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeXXXL, SizeXXXXL}

// ResourcePackKey identifies one resource pack in the catalog
type ResourcePackKey struct {
	Tier       SLATier  `json:"tier"`
	Size       PackSize `json:"size"`
	DBEnhanced bool     `json:"db_enhanced,omitempty"`
}

func (k ResourcePackKey) String() string {
	s := string(k.Tier) + "/" + string(k.Size)
	if k.DBEnhanced {
		s += "-DB"
	}
	return s
}

// ResourcePackSpec is one Mendix Cloud resource pack
type ResourcePackSpec struct {
	Key           ResourcePackKey
	RuntimeVCPU   float64
	RuntimeMemGB  int
	DBVCPU        float64
	DBMemGB       int
	DBStorageGB   int
	FileStorageGB int
	AnnualPrice   decimal.Decimal
}

// GenAISize is a GenAI model resource pack size
type GenAISize string

const (
	GenAISmall  GenAISize = "S"
	GenAIMedium GenAISize = "M"
	GenAILarge  GenAISize = "L"
)

// GenAIModelPack is an annual GenAI model resource pack
type GenAIModelPack struct {
	Size          GenAISize
	InputTokensM  int
	OutputTokensM int
	AnnualPrice   decimal.Decimal
}

// K8sEnvironmentTier prices Private Cloud environments beyond the base package
type K8sEnvironmentTier = types.Tier

type baseSpec struct {
	size          PackSize
	vcpu          float64
	memGB         int
	dbStorageGB   int
	fileStorageGB int
	price         int64
}

// Standard tier compute-only packs; other tiers and DB-enhanced variants derive from these
var baseSpecs = []baseSpec{
	{SizeXS, 0.25, 1, 5, 10, 1800},
	{SizeS, 0.5, 2, 10, 20, 3600},
	{SizeM, 1, 4, 20, 40, 7200},
	{SizeL, 2, 8, 40, 80, 14400},
	{SizeXL, 4, 16, 80, 160, 28800},
	{SizeXXL, 8, 32, 160, 320, 57600},
	{SizeXXXL, 16, 64, 320, 640, 115200},
	{SizeXXXXL, 32, 128, 640, 1280, 230400},
}

var tierMultipliers = map[SLATier]decimal.Decimal{
	TierStandard:    decimal.NewFromInt(1),
	TierPremium:     decimal.NewFromFloat(1.5),
	TierPremiumPlus: decimal.NewFromInt(2),
}

// dbEnhancedMultiplier prices the dedicated database upgrade of a pack
var dbEnhancedMultiplier = decimal.NewFromFloat(1.35)

var resourcePacks = buildResourcePacks()

func buildResourcePacks() map[ResourcePackKey]ResourcePackSpec {
	out := make(map[ResourcePackKey]ResourcePackSpec)
	for tier, mult := range tierMultipliers {
		for _, b := range baseSpecs {
			if tier == TierPremiumPlus && sizeRank(b.size) < sizeRank(SizeXL) {
				continue
			}
			price := decimal.NewFromInt(b.price).Mul(mult)

			compute := ResourcePackSpec{
				Key:           ResourcePackKey{Tier: tier, Size: b.size},
				RuntimeVCPU:   b.vcpu,
				RuntimeMemGB:  b.memGB,
				DBVCPU:        b.vcpu / 2,
				DBMemGB:       b.memGB / 2,
				DBStorageGB:   b.dbStorageGB,
				FileStorageGB: b.fileStorageGB,
				AnnualPrice:   price,
			}
			out[compute.Key] = compute

			// XS has no DB-enhanced variant
			if b.size == SizeXS {
				continue
			}
			db := compute
			db.Key.DBEnhanced = true
			db.DBVCPU = b.vcpu
			db.DBMemGB = b.memGB
			db.DBStorageGB = b.dbStorageGB * 2
			db.AnnualPrice = price.Mul(dbEnhancedMultiplier).Round(0)
			out[db.Key] = db
		}
	}
	return out
}

func sizeRank(s PackSize) int {
	for i, v := range sizeOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// LookupResourcePack returns the pack for key
func LookupResourcePack(key ResourcePackKey) (ResourcePackSpec, error) {
	spec, ok := resourcePacks[key]
	if !ok {
		return ResourcePackSpec{}, errors.InvalidArgument("unknown Mendix resource pack %s", key).
			WithContext("tier", string(key.Tier)).
			WithContext("size", string(key.Size))
	}
	return spec, nil
}

// ResourcePacks returns the packs offered at an SLA tier, smallest first
func ResourcePacks(tier SLATier) []ResourcePackSpec {
	var out []ResourcePackSpec
	for k, v := range resourcePacks {
		if k.Tier == tier {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := sizeRank(out[i].Key.Size), sizeRank(out[j].Key.Size)
		if ri != rj {
			return ri < rj
		}
		return !out[i].Key.DBEnhanced && out[j].Key.DBEnhanced
	})
	return out
}

var genAIPacks = map[GenAISize]GenAIModelPack{
	GenAISmall:  {GenAISmall, 60, 20, decimal.NewFromInt(6000)},
	GenAIMedium: {GenAIMedium, 180, 60, decimal.NewFromInt(15000)},
	GenAILarge:  {GenAILarge, 480, 160, decimal.NewFromInt(36000)},
}

// LookupGenAIPack returns the GenAI model pack of a size
func LookupGenAIPack(size GenAISize) (GenAIModelPack, error) {
	p, ok := genAIPacks[size]
	if !ok {
		return GenAIModelPack{}, errors.InvalidArgument("unknown Mendix GenAI pack size %q", size)
	}
	return p, nil
}

// DefaultIncludedEnvironments are covered by the Private Cloud base package
const DefaultIncludedEnvironments = 3

// DefaultK8sEnvironmentTiers are the annual per-environment prices beyond the base package
func DefaultK8sEnvironmentTiers() []K8sEnvironmentTier {
	return []K8sEnvironmentTier{
		types.NewTier(4, 50, 552),
		types.NewTier(51, 100, 408),
		types.NewTier(101, 150, 240),
		types.NewTier(151, types.Unlimited, 0),
	}
}

// DefaultInternalUserTiers are annual per-user prices for internal users
func DefaultInternalUserTiers() []types.Tier {
	return []types.Tier{
		types.NewTier(1, 100, 240),
		types.NewTier(101, 500, 180),
		types.NewTier(501, 2000, 120),
		types.NewTier(2001, types.Unlimited, 60),
	}
}

// DefaultExternalUserTiers are annual per-user prices for external users
func DefaultExternalUserTiers() []types.Tier {
	return []types.Tier{
		types.NewTier(1, 10000, 12),
		types.NewTier(10001, 100000, 6),
		types.NewTier(100001, types.Unlimited, 2),
	}
}

// PrivateCloudTarget is where Mendix for Private Cloud runs
type PrivateCloudTarget string

const (
	PrivateCloudAzure      PrivateCloudTarget = "azure"
	PrivateCloudEKS        PrivateCloudTarget = "eks"
	PrivateCloudAKS        PrivateCloudTarget = "aks"
	PrivateCloudGKE        PrivateCloudTarget = "gke"
	PrivateCloudOpenShift  PrivateCloudTarget = "openshift"
	PrivateCloudKubernetes PrivateCloudTarget = "kubernetes"
)

// privateCloudBasePackage is the annual Private Cloud platform fee, covering the included environments
var privateCloudBasePackage = decimal.NewFromInt(30000)

// privateCloudDeploymentFees is the annual per-target surcharge
var privateCloudDeploymentFees = map[PrivateCloudTarget]decimal.Decimal{
	PrivateCloudAzure:      decimal.NewFromInt(6000),
	PrivateCloudEKS:        decimal.Zero,
	PrivateCloudAKS:        decimal.Zero,
	PrivateCloudGKE:        decimal.Zero,
	PrivateCloudOpenShift:  decimal.Zero,
	PrivateCloudKubernetes: decimal.Zero,
}

// OtherTarget is a non-Kubernetes Mendix deployment
type OtherTarget string

const (
	OtherServer  OtherTarget = "server"
	OtherStackIT OtherTarget = "stackit"
	OtherSAPBTP  OtherTarget = "sap-btp"
)

// OtherFees are the flat annual fees of an Other deployment target
type OtherFees struct {
	PerApp        decimal.Decimal
	UnlimitedApps decimal.Decimal
}

var otherFees = map[OtherTarget]OtherFees{
	OtherServer:  {decimal.NewFromInt(9600), decimal.NewFromInt(96000)},
	OtherStackIT: {decimal.NewFromInt(10800), decimal.NewFromInt(108000)},
	OtherSAPBTP:  {decimal.NewFromInt(12000), decimal.NewFromInt(120000)},
}

// Add-on and storage prices, annual
var (
	genAIKnowledgeBasePrice   = decimal.NewFromInt(4800)
	customerEnablementPrice   = decimal.NewFromInt(12500)
	extraFileStoragePerGB     = decimal.NewFromFloat(1.2)
	extraDatabaseStoragePerGB = decimal.NewFromFloat(2.4)
)

func lookupDeploymentFee(t PrivateCloudTarget) (decimal.Decimal, error) {
	fee, ok := privateCloudDeploymentFees[t]
	if !ok {
		return decimal.Zero, errors.InvalidArgument("unknown Mendix Private Cloud target %q", t)
	}
	return fee, nil
}

func lookupOtherFees(t OtherTarget) (OtherFees, error) {
	fees, ok := otherFees[t]
	if !ok {
		return OtherFees{}, errors.InvalidArgument("unknown Mendix deployment target %q", t)
	}
	return fees, nil
}
