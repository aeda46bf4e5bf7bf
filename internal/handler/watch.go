package handler

import (
	"net/http"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// Watcher manages the set of plots the poller follows
type Watcher interface {
	Watch(player string, plotID uint16) (domain.WatchTarget, error)
	Unwatch(player string, plotID uint16) (bool, error)
	Watched() []domain.WatchTarget
}

// WatchRequest names a plot to follow or drop
type WatchRequest struct {
	Player string `json:"player" validate:"required,player"`
	PlotID uint16 `json:"plot_id"`
}

// WatchListResponse lists followed plots
type WatchListResponse struct {
	Targets []domain.WatchTarget `json:"targets"`
}

// WatchHandler exposes the poller watch list
type WatchHandler struct {
	watcher Watcher
}

// NewWatchHandler creates a WatchHandler
func NewWatchHandler(watcher Watcher) *WatchHandler {
	return &WatchHandler{watcher: watcher}
}

// HandleList returns every watched plot
// @Summary List watched plots
// @Tags watch
// @Produce json
// @Success 200 {object} WatchListResponse
// @Router /watch [get]
func (h *WatchHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	targets := h.watcher.Watched()
	if targets == nil {
		targets = []domain.WatchTarget{}
	}
	respondJSON(w, http.StatusOK, WatchListResponse{Targets: targets})
}

// HandleWatch starts following a plot
// @Summary Watch plot
// @Description Add a plot to the poller so its transitions are streamed
// @Tags watch
// @Accept json
// @Produce json
// @Param request body WatchRequest true "Plot"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /watch [post]
func (h *WatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	var req WatchRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Watch"); err != nil {
		return
	}

	target, err := h.watcher.Watch(req.Player, req.PlotID)
	if err != nil {
		respondServiceError(w, r, err, "watch", ErrMsgWatchFailed)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgWatchListChanged,
		"op", "watch",
		"player", target.Player,
		"plot_id", target.PlotID)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgWatchAdded, Data: target})
}

// HandleUnwatch stops following a plot
// @Summary Unwatch plot
// @Tags watch
// @Accept json
// @Produce json
// @Param request body WatchRequest true "Plot"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watch [delete]
func (h *WatchHandler) HandleUnwatch(w http.ResponseWriter, r *http.Request) {
	var req WatchRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unwatch"); err != nil {
		return
	}

	removed, err := h.watcher.Unwatch(req.Player, req.PlotID)
	if err != nil {
		respondServiceError(w, r, err, "unwatch", ErrMsgWatchFailed)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, MsgNotWatched)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgWatchListChanged,
		"op", "unwatch",
		"player", req.Player,
		"plot_id", req.PlotID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWatchRemoved})
}
