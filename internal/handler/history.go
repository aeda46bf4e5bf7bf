package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
)

// CellHistoryResponse lists recorded values of one cell, newest first
type CellHistoryResponse struct {
	Player    string                `json:"player"`
	PlotID    uint16                `json:"plot_id"`
	CellIndex int                   `json:"cell_index"`
	Snapshots []domain.PlotSnapshot `json:"snapshots"`
}

// HandleGetCellHistory returns the snapshots the poller recorded for a cell
// @Summary Cell history
// @Description Recorded values of one cell, newest first
// @Tags garden
// @Produce json
// @Param player path string true "Player address"
// @Param plotID path int true "Plot id"
// @Param cell path int true "Cell index (0-11)"
// @Param limit query int false "Page size (default 50, max 500)"
// @Success 200 {object} CellHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{player}/plots/{plotID}/cells/{cell}/history [get]
func HandleGetCellHistory(repo repository.SnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(w, r)
		if !ok {
			return
		}
		plotID, ok := plotIDParam(w, r)
		if !ok {
			return
		}
		cell, ok := cellParam(w, r)
		if !ok {
			return
		}
		limit, err := intQueryParam(r, QueryLimit, repository.DefaultHistoryLimit)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		snaps, err := repo.History(r.Context(), player, plotID, cell, repository.ClampHistoryLimit(limit))
		if err != nil {
			respondServiceError(w, r, err, "cell_history", ErrMsgHistoryFailed)
			return
		}
		if len(snaps) == 0 {
			err := fmt.Errorf("%w: %s plot %d cell %d", domain.ErrSnapshotNotFound, player, plotID, cell)
			respondServiceError(w, r, err, "cell_history", ErrMsgHistoryFailed)
			return
		}

		respondJSON(w, http.StatusOK, CellHistoryResponse{
			Player:    player,
			PlotID:    plotID,
			CellIndex: cell,
			Snapshots: snaps,
		})
	}
}
