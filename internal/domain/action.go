package domain

import "math/big"

// CellAction is what a click on a cell resolves to
type CellAction string

const (
	ActionPlant   CellAction = "plant"
	ActionHarvest CellAction = "harvest"
	ActionIgnore  CellAction = "ignore"
)

// Reasons attached to resolved actions
const (
	ReasonEmptyCell = "empty cell"
	ReasonReady     = "crop ready"
	ReasonGrowing   = "crop still growing"
)

// ClickRequest is a player's interaction with a single cell
type ClickRequest struct {
	Player    string
	PlotID    uint16
	CellIndex int
	SeedType  SeedType // zero when no seed is selected
}

// ContractCall is an unsigned GardenCore call a wallet can submit
type ContractCall struct {
	To       string   `json:"to"`
	Method   string   `json:"method"`
	Args     []string `json:"args"`
	Calldata string   `json:"calldata"`
	ValueWei *big.Int `json:"value_wei"`
}

// ActionPlan is the resolved outcome of a click
type ActionPlan struct {
	Action  CellAction    `json:"action"`
	Reason  string        `json:"reason"`
	Cell    CellView      `json:"cell"`
	Call    *ContractCall `json:"call,omitempty"`
	ReadyIn uint64        `json:"ready_in_seconds,omitempty"`
}

// TradeQuote is the exact value of a seed purchase or crop sale
type TradeQuote struct {
	SeedType SeedType      `json:"seed_type"`
	Name     string        `json:"name"`
	Quantity int64         `json:"quantity"`
	UnitWei  *big.Int      `json:"unit_wei"`
	TotalWei *big.Int      `json:"total_wei"`
	Call     *ContractCall `json:"call"`
}
