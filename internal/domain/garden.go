package domain

import (
	"math/big"
	"strconv"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

// Plot grid dimensions
const (
	GridColumns  = 4
	GridRows     = 3
	CellsPerPlot = GridColumns * GridRows
)

// SeedType identifies a crop species on-chain
type SeedType uint16

// String renders the numeric seed type, used as a metrics label
func (t SeedType) String() string {
	return strconv.Itoa(int(t))
}

// Seed type constants for the built-in catalog
const (
	SeedCarrot SeedType = 1
	SeedMint   SeedType = 2
	SeedSage   SeedType = 3
)

// SeedConfig mirrors GardenCore.SeedConfig plus a display name
type SeedConfig struct {
	Type         SeedType `json:"type"`
	Name         string   `json:"name"`
	GrowDuration uint32   `json:"grow_duration"`
	SeedTokenID  uint64   `json:"seed_token_id"`
	CropTokenID  uint64   `json:"crop_token_id"`
	BuyPriceWei  *big.Int `json:"buy_price_wei"`
	SellPriceWei *big.Int `json:"sell_price_wei"`
	Active       bool     `json:"active"`
}

// CellView is a decoded cell annotated for display
type CellView struct {
	Index            int                  `json:"index"`
	Row              int                  `json:"row"`
	Column           int                  `json:"column"`
	Empty            bool                 `json:"empty"`
	State            *plotcodec.CellState `json:"state,omitempty"`
	SeedName         string               `json:"seed_name,omitempty"`
	ReadyAt          *time.Time           `json:"ready_at,omitempty"`
	SecondsRemaining uint64               `json:"seconds_remaining"`
}

// Ready reports whether the cell holds a harvestable crop
func (c CellView) Ready() bool {
	return !c.Empty && c.State != nil && c.State.Ready
}

// PlotView is the decoded state of one plot at a point in time
type PlotView struct {
	Player     string                 `json:"player"`
	PlotID     uint16                 `json:"plot_id"`
	ObservedAt time.Time              `json:"observed_at"`
	ClockBasis string                 `json:"clock_basis"`
	Cells      [CellsPerPlot]CellView `json:"cells"`
	Packed     [CellsPerPlot]string   `json:"-"`
}

// ReadyCount returns the number of harvestable cells
func (p *PlotView) ReadyCount() int {
	n := 0
	for _, c := range p.Cells {
		if c.Ready() {
			n++
		}
	}
	return n
}

// CellPosition converts a cell index into its grid row and column
func CellPosition(index int) (row, column int) {
	return index / GridColumns, index % GridColumns
}

// TokenBalance is a player's GARDEN ERC-20 balance. Formatted is the raw
// amount scaled by Decimals.
type TokenBalance struct {
	Player    string   `json:"player"`
	Token     string   `json:"token"`
	Raw       *big.Int `json:"raw"`
	Decimals  uint8    `json:"decimals"`
	Formatted string   `json:"formatted"`
}

// InventoryEntry holds a player's seed and crop balances for one seed type
type InventoryEntry struct {
	SeedType    SeedType `json:"seed_type"`
	Name        string   `json:"name"`
	SeedBalance *big.Int `json:"seed_balance"`
	CropBalance *big.Int `json:"crop_balance"`
}
