package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/garden"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// ClickRequest is a click on one cell of a plot
type ClickRequest struct {
	Player    string `json:"player" validate:"required,player"`
	PlotID    uint16 `json:"plot_id"`
	CellIndex int    `json:"cell_index" validate:"cell"`
	SeedType  uint16 `json:"seed_type" validate:"seedtype"`
}

// TradeRequest prices a seed purchase or a crop sale
type TradeRequest struct {
	SeedType uint16 `json:"seed_type" validate:"required,seedtype"`
	Quantity int64  `json:"quantity" validate:"required,min=1,max=1000000"`
}

// SeedListResponse wraps the merged seed catalog
type SeedListResponse struct {
	Seeds []domain.SeedConfig `json:"seeds"`
}

// InventoryResponse lists a player's balances
type InventoryResponse struct {
	Player  string                  `json:"player"`
	Entries []domain.InventoryEntry `json:"entries"`
}

// GardenHandler serves the plot, inventory, seed and trade endpoints
type GardenHandler struct {
	svc garden.Service
}

// NewGardenHandler creates a GardenHandler
func NewGardenHandler(svc garden.Service) *GardenHandler {
	return &GardenHandler{svc: svc}
}

// HandleGetPlot returns one decoded plot
// @Summary Get plot
// @Description Read and decode the 12 cells of a player's plot
// @Tags garden
// @Produce json
// @Param player path string true "Player address"
// @Param plotID path int true "Plot id"
// @Success 200 {object} domain.PlotView
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /players/{player}/plots/{plotID} [get]
func (h *GardenHandler) HandleGetPlot(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(w, r)
	if !ok {
		return
	}
	plotID, ok := plotIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.GetPlot(r.Context(), player, plotID)
	if err != nil {
		respondServiceError(w, r, err, "get_plot", ErrMsgGetPlotFailed)
		return
	}

	logger.FromContext(r.Context()).Debug(LogMsgPlotServed,
		"player", player,
		"plot_id", plotID,
		"ready", view.ReadyCount())
	respondJSON(w, http.StatusOK, view)
}

// HandleGetInventory returns seed and crop balances
// @Summary Get inventory
// @Description Seed and crop balances for every known seed type
// @Tags garden
// @Produce json
// @Param player path string true "Player address"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /players/{player}/inventory [get]
func (h *GardenHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Inventory(r.Context(), player)
	if err != nil {
		respondServiceError(w, r, err, "inventory", ErrMsgGetInventoryFailed)
		return
	}
	respondJSON(w, http.StatusOK, InventoryResponse{Player: player, Entries: entries})
}

// BalanceResponse carries the player's GARDEN token balance
type BalanceResponse struct {
	Player string               `json:"player"`
	Token  *domain.TokenBalance `json:"token"`
}

// HandleGetBalances returns the GARDEN token balance crop sales pay into
// @Summary Get token balance
// @Description GARDEN ERC-20 balance, raw and scaled by the token decimals
// @Tags garden
// @Produce json
// @Param player path string true "Player address"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /players/{player}/balances [get]
func (h *GardenHandler) HandleGetBalances(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(w, r)
	if !ok {
		return
	}

	bal, err := h.svc.TokenBalance(r.Context(), player)
	if err != nil {
		respondServiceError(w, r, err, "token_balance", ErrMsgGetBalanceFailed)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{Player: player, Token: bal})
}

// HandleGetSeeds returns the merged seed list
// @Summary List seeds
// @Description Static catalog merged with on-chain seed configuration
// @Tags garden
// @Produce json
// @Success 200 {object} SeedListResponse
// @Failure 503 {object} ErrorResponse
// @Router /seeds [get]
func (h *GardenHandler) HandleGetSeeds(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.SeedList(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "seed_list", ErrMsgGetSeedsFailed)
		return
	}
	respondJSON(w, http.StatusOK, SeedListResponse{Seeds: list})
}

// HandleClick resolves a click into plant, harvest or ignore
// @Summary Resolve click
// @Description Decide what a click on a cell does and return the unsigned call
// @Tags garden
// @Accept json
// @Produce json
// @Param request body ClickRequest true "Click"
// @Success 200 {object} domain.ActionPlan
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /plots/click [post]
func (h *GardenHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Click"); err != nil {
		return
	}

	plan, err := h.svc.ResolveClick(r.Context(), domain.ClickRequest{
		Player:    req.Player,
		PlotID:    req.PlotID,
		CellIndex: req.CellIndex,
		SeedType:  domain.SeedType(req.SeedType),
	})
	if err != nil {
		respondServiceError(w, r, err, "click", ErrMsgClickFailed)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgClickResolved,
		"player", req.Player,
		"plot_id", req.PlotID,
		"cell", req.CellIndex,
		"action", plan.Action)
	respondJSON(w, http.StatusOK, plan)
}

// HandleBuySeeds quotes a seed purchase
// @Summary Quote seed purchase
// @Tags shop
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Trade"
// @Success 200 {object} domain.TradeQuote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/buy [post]
func (h *GardenHandler) HandleBuySeeds(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, "buy", h.svc.QuoteBuySeeds)
}

// HandleSellCrops quotes a crop sale
// @Summary Quote crop sale
// @Tags shop
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Trade"
// @Success 200 {object} domain.TradeQuote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/sell [post]
func (h *GardenHandler) HandleSellCrops(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, "sell", h.svc.QuoteSellCrops)
}

type quoteFunc func(ctx context.Context, seedType domain.SeedType, qty int64) (*domain.TradeQuote, error)

func (h *GardenHandler) handleTrade(w http.ResponseWriter, r *http.Request, side string, quote quoteFunc) {
	var req TradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Trade "+side); err != nil {
		return
	}

	q, err := quote(r.Context(), domain.SeedType(req.SeedType), req.Quantity)
	if err != nil {
		respondServiceError(w, r, err, side, ErrMsgQuoteFailed)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgQuoteServed,
		"side", side,
		"seed_type", req.SeedType,
		"quantity", req.Quantity,
		"total_wei", q.TotalWei.String())
	respondJSON(w, http.StatusOK, q)
}
