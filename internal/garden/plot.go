package garden

import (
	"fmt"
	"math/big"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

// maxRenderableUnix is 9999-12-31T23:59:59Z, the last instant encoding/json can marshal
const maxRenderableUnix = 253402300799

// SeedNamer resolves a display name for a seed type
type SeedNamer interface {
	Name(t domain.SeedType) string
}

// BuildPlotView decodes the raw cells of one plot at the given instant
func BuildPlotView(player string, plotID uint16, cells [domain.CellsPerPlot]*big.Int, now time.Time, basis string, names SeedNamer) (*domain.PlotView, error) {
	view := &domain.PlotView{
		Player:     player,
		PlotID:     plotID,
		ObservedAt: now.UTC(),
		ClockBasis: basis,
	}
	nowSeconds := now.Unix()

	for i, raw := range cells {
		if raw == nil {
			raw = new(big.Int)
		}
		state, err := plotcodec.DecodeBig(raw, nowSeconds)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		view.Packed[i] = raw.String()
		view.Cells[i] = NewCellView(i, state, nowSeconds, names)
	}
	return view, nil
}

// NewCellView annotates a decoded cell. A nil state is an empty cell.
func NewCellView(index int, state *plotcodec.CellState, nowSeconds int64, names SeedNamer) domain.CellView {
	row, col := domain.CellPosition(index)
	cell := domain.CellView{Index: index, Row: row, Column: col, Empty: state == nil}
	if state == nil {
		return cell
	}

	cell.State = state
	if names != nil {
		cell.SeedName = names.Name(domain.SeedType(state.SeedType))
	}
	cell.SecondsRemaining = state.SecondsRemaining(nowSeconds)
	if readyAt := state.ReadyAt(); readyAt <= maxRenderableUnix {
		t := time.Unix(int64(readyAt), 0).UTC()
		cell.ReadyAt = &t
	}
	return cell
}
