package domain

import (
	"fmt"
	"strings"
	"time"
)

// PlotSnapshot is one observed value of one cell
type PlotSnapshot struct {
	Player       string    `json:"player"`
	PlotID       uint16    `json:"plot_id"`
	CellIndex    int       `json:"cell_index"`
	Packed       string    `json:"packed"`
	Status       uint8     `json:"status"`
	SeedType     uint16    `json:"seed_type"`
	PlantedAt    uint64    `json:"planted_at"`
	GrowDuration uint32    `json:"grow_duration"`
	ObservedAt   time.Time `json:"observed_at"`
}

// Empty reports whether the snapshot recorded an empty cell
func (s PlotSnapshot) Empty() bool {
	return s.Packed == "" || s.Packed == "0"
}

// WatchTarget identifies a plot the poller follows
type WatchTarget struct {
	Player string `json:"player"`
	PlotID uint16 `json:"plot_id"`
}

// Key returns a stable map key for the target
func (w WatchTarget) Key() string {
	return fmt.Sprintf("%s:%d", strings.ToLower(w.Player), w.PlotID)
}

// CellTransition describes a change observed between two polls
type CellTransition struct {
	Player     string    `json:"player"`
	PlotID     uint16    `json:"plot_id"`
	CellIndex  int       `json:"cell_index"`
	SeedType   uint16    `json:"seed_type,omitempty"`
	SeedName   string    `json:"seed_name,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}
