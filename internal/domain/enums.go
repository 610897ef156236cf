package domain

// BillMode distinguishes single-receipt bills from multi-receipt bills with
// per-receipt payers.
type BillMode string

const (
	BillModeSingle BillMode = "single"
	BillModeMulti  BillMode = "multi"
)

// ValidBillModes enumerates the accepted bill modes.
var ValidBillModes = map[BillMode]bool{
	BillModeSingle: true,
	BillModeMulti:  true,
}

// SplitType determines how a split's value turns into an owed amount.
type SplitType string

const (
	SplitEqual    SplitType = "equal"
	SplitFixed    SplitType = "fixed"
	SplitPercent  SplitType = "percent"
	SplitQuantity SplitType = "quantity"
)

// ValidSplitTypes enumerates the accepted split types.
var ValidSplitTypes = map[SplitType]bool{
	SplitEqual:    true,
	SplitFixed:    true,
	SplitPercent:  true,
	SplitQuantity: true,
}

// ChargeType is the optional subtype of a tax/charge item.
type ChargeType string

const (
	ChargeTax      ChargeType = "tax"
	ChargeService  ChargeType = "service"
	ChargeGratuity ChargeType = "gratuity"
)

// ValidChargeTypes enumerates the accepted charge subtypes.
var ValidChargeTypes = map[ChargeType]bool{
	ChargeTax:      true,
	ChargeService:  true,
	ChargeGratuity: true,
}

// DistributionType is the policy for allocating a tax/charge item.
type DistributionType string

const (
	DistributionEqual        DistributionType = "equal"
	DistributionProportional DistributionType = "proportional"
	DistributionCustom       DistributionType = "custom"
	DistributionNone         DistributionType = "none"
)

// ValidDistributionTypes enumerates the accepted distribution policies.
var ValidDistributionTypes = map[DistributionType]bool{
	DistributionEqual:        true,
	DistributionProportional: true,
	DistributionCustom:       true,
	DistributionNone:         true,
}
