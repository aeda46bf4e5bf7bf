package handler

import (
	"net/http"

	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// SeedCachePurger drops cached seed configurations
type SeedCachePurger interface {
	PurgeSeedCache() int
}

// CachePurgeResponse reports how many entries a purge dropped
type CachePurgeResponse struct {
	Message string `json:"message"`
	Purged  int    `json:"purged"`
}

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	seeds SeedCachePurger
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(seeds SeedCachePurger) *AdminCacheHandler {
	return &AdminCacheHandler{seeds: seeds}
}

// HandlePurgeSeedCache forgets cached on-chain seed configs
// @Summary Purge seed config cache
// @Description Forces the next seed read to call getSeedConfig again (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} CachePurgeResponse
// @Router /admin/cache/seeds [delete]
func (h *AdminCacheHandler) HandlePurgeSeedCache(w http.ResponseWriter, r *http.Request) {
	n := h.seeds.PurgeSeedCache()
	logger.FromContext(r.Context()).Info(LogMsgSeedCachePurged, "entries", n)
	respondJSON(w, http.StatusOK, CachePurgeResponse{Message: MsgSeedCachePurged, Purged: n})
}
