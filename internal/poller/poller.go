// Package poller follows watched plots on a fixed interval, records changed
// cells and publishes cell transitions.
package poller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/event"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
	"github.com/osse101/GardenKeeper_Go/internal/metrics"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
	"github.com/osse101/GardenKeeper_Go/internal/scheduler"
	"github.com/osse101/GardenKeeper_Go/internal/worker"
)

// PlotSource reads the decoded state of a plot
type PlotSource interface {
	GetPlot(ctx context.Context, player string, plotID uint16) (*domain.PlotView, error)
}

// Publisher sends cell events
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// SeedNamer names seeds for transitions restored from history
type SeedNamer interface {
	Name(t domain.SeedType) string
}

// Config holds poller settings
type Config struct {
	Interval    time.Duration
	Workers     int
	QueueSize   int
	PollTimeout time.Duration
	MaxWatched  int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.MaxWatched <= 0 {
		c.MaxWatched = DefaultMaxWatched
	}
	return c
}

// cellMemo is the last value the poller recorded for a cell
type cellMemo struct {
	known    bool
	packed   string
	ready    bool
	seedType uint16
	seedName string
}

func (m cellMemo) empty() bool {
	return !m.known || m.packed == "" || m.packed == "0"
}

// watchedPlot is the per-plot state. mu serialises polls of one plot;
// polling marks a poll as queued or running.
type watchedPlot struct {
	target  domain.WatchTarget
	mu      sync.Mutex
	polling atomic.Bool
	primed  bool
	cells   [domain.CellsPerPlot]cellMemo
}

// Poller watches plots in the background
type Poller struct {
	source    PlotSource
	repo      repository.SnapshotRepository
	publisher Publisher
	names     SeedNamer
	cfg       Config

	pool  *worker.Pool
	sched *scheduler.Scheduler

	mu    sync.RWMutex
	plots map[string]*watchedPlot

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a poller. Nothing is polled until Start.
func New(source PlotSource, repo repository.SnapshotRepository, publisher Publisher, names SeedNamer, cfg Config) *Poller {
	cfg = cfg.withDefaults()
	pool := worker.NewPool(cfg.Workers, cfg.QueueSize, cfg.PollTimeout)
	return &Poller{
		source:    source,
		repo:      repo,
		publisher: publisher,
		names:     names,
		cfg:       cfg,
		pool:      pool,
		sched:     scheduler.New(pool),
		plots:     make(map[string]*watchedPlot),
	}
}

// Watch adds a plot to the watch list. Watching a plot twice is a no-op;
// a new plot beyond MaxWatched fails with domain.ErrWatchLimitReached.
func (p *Poller) Watch(player string, plotID uint16) (domain.WatchTarget, error) {
	normalized, err := chain.NormalizeAddress(player)
	if err != nil {
		return domain.WatchTarget{}, err
	}
	target := domain.WatchTarget{Player: normalized, PlotID: plotID}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.plots[target.Key()]; ok {
		return target, nil
	}
	if len(p.plots) >= p.cfg.MaxWatched {
		return domain.WatchTarget{}, fmt.Errorf("%w: %d plots", domain.ErrWatchLimitReached, p.cfg.MaxWatched)
	}
	p.plots[target.Key()] = &watchedPlot{target: target}
	metrics.WatchedPlots.Set(float64(len(p.plots)))
	logger.FromContext(context.Background()).Info(LogMsgPlotWatched, "player", target.Player, "plot", plotID)

	return target, nil
}

// Unwatch removes a plot from the watch list and reports whether it was watched
func (p *Poller) Unwatch(player string, plotID uint16) (bool, error) {
	normalized, err := chain.NormalizeAddress(player)
	if err != nil {
		return false, err
	}
	target := domain.WatchTarget{Player: normalized, PlotID: plotID}

	p.mu.Lock()
	_, ok := p.plots[target.Key()]
	delete(p.plots, target.Key())
	metrics.WatchedPlots.Set(float64(len(p.plots)))
	// polls only set the gauge under p.mu, so no series survives this
	metrics.ReadyCells.DeleteLabelValues(target.Key())
	p.mu.Unlock()

	if ok {
		logger.FromContext(context.Background()).Info(LogMsgPlotUnwatched, "player", target.Player, "plot", plotID)
	}
	return ok, nil
}

// Watched returns the watch list ordered by player then plot
func (p *Poller) Watched() []domain.WatchTarget {
	p.mu.RLock()
	out := make([]domain.WatchTarget, 0, len(p.plots))
	for _, w := range p.plots {
		out = append(out, w.target)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Player), strings.ToLower(out[j].Player)
		if a != b {
			return a < b
		}
		return out[i].PlotID < out[j].PlotID
	})
	return out
}

// Start begins polling every watched plot, once immediately and then every interval
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.pool.Start()
		p.tick(time.Now())
		p.sched.Every(p.cfg.Interval, p.tick)
		logger.FromContext(ctx).Info(LogMsgPollerStarted, "interval", p.cfg.Interval, "workers", p.cfg.Workers, "plots", len(p.Watched()))
	})
}

// Stop halts the schedule and waits for in-flight polls to finish
func (p *Poller) Stop(ctx context.Context) {
	p.stopOnce.Do(func() {
		p.sched.Stop()
		p.pool.Stop()
		logger.FromContext(ctx).Info(LogMsgPollerStopped)
	})
}

// tick queues one poll per watched plot, skipping plots whose previous poll
// has not finished
func (p *Poller) tick(time.Time) {
	p.mu.RLock()
	plots := make([]*watchedPlot, 0, len(p.plots))
	for _, w := range p.plots {
		plots = append(plots, w)
	}
	p.mu.RUnlock()

	for _, w := range plots {
		if !w.polling.CompareAndSwap(false, true) {
			continue
		}
		if !p.pool.TryEnqueue(&pollJob{poller: p, plot: w}) {
			w.polling.Store(false)
			logger.FromContext(context.Background()).Warn(LogMsgPollSkipped, "player", w.target.Player, "plot", w.target.PlotID)
		}
	}
}

// Poll reads one watched plot now
func (p *Poller) Poll(ctx context.Context, player string, plotID uint16) error {
	normalized, err := chain.NormalizeAddress(player)
	if err != nil {
		return err
	}
	key := domain.WatchTarget{Player: normalized, PlotID: plotID}.Key()

	p.mu.RLock()
	w, ok := p.plots[key]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: plot %s is not watched", domain.ErrInvalidInput, key)
	}
	return p.poll(ctx, w)
}

func (p *Poller) poll(ctx context.Context, w *watchedPlot) error {
	start := time.Now()
	metrics.PollsTotal.Inc()
	defer func() { metrics.PollDuration.Observe(time.Since(start).Seconds()) }()

	w.mu.Lock()
	defer w.mu.Unlock()

	key := w.target.Key()
	view, err := p.source.GetPlot(ctx, w.target.Player, w.target.PlotID)
	if err != nil {
		metrics.PollErrors.Inc()
		return fmt.Errorf("poll %s: %w", key, err)
	}

	if !w.primed {
		if err := p.prime(ctx, w); err != nil {
			metrics.PollErrors.Inc()
			return fmt.Errorf("poll %s: %w", key, err)
		}
	}

	var (
		snapshots []domain.PlotSnapshot
		events    []event.Event
		next      [domain.CellsPerPlot]cellMemo
	)
	for i := range view.Cells {
		cell := &view.Cells[i]
		cur := memoOf(view, i)
		prev := w.cells[i]
		if !prev.known || prev.packed != cur.packed {
			snapshots = append(snapshots, snapshotOf(view, i))
		}
		events = append(events, p.transitions(view, cell, prev, cur)...)
		next[i] = cur
	}

	if len(snapshots) > 0 {
		if err := p.repo.SaveSnapshots(ctx, snapshots); err != nil {
			// memory is left untouched so the next poll retries the same transitions
			metrics.PollErrors.Inc()
			return fmt.Errorf("poll %s: %w", key, err)
		}
		metrics.SnapshotsWritten.Add(float64(len(snapshots)))
	}
	w.cells = next
	p.mu.RLock()
	if p.plots[key] == w {
		metrics.ReadyCells.WithLabelValues(key).Set(float64(view.ReadyCount()))
	}
	p.mu.RUnlock()

	log := logger.FromContext(ctx)
	for _, evt := range events {
		log.Debug(LogMsgCellTransition, "type", evt.Type, "player", w.target.Player, "plot", w.target.PlotID)
		if err := p.publisher.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgTransitionPublish, "type", evt.Type, "error", err)
		}
	}
	return nil
}

// prime restores the last recorded value of every cell so a restart does
// not replay transitions that were already published
func (p *Poller) prime(ctx context.Context, w *watchedPlot) error {
	latest, err := p.repo.LatestSnapshots(ctx, w.target.Player, w.target.PlotID)
	if err != nil {
		return err
	}
	for _, snap := range latest {
		if snap.CellIndex < 0 || snap.CellIndex >= domain.CellsPerPlot {
			continue
		}
		memo := cellMemo{known: true, packed: snap.Packed}
		if !snap.Empty() {
			memo.seedType = snap.SeedType
			memo.ready = readyAtObservation(snap)
			if p.names != nil {
				memo.seedName = p.names.Name(domain.SeedType(snap.SeedType))
			}
		}
		w.cells[snap.CellIndex] = memo
	}
	w.primed = true
	return nil
}

func readyAtObservation(snap domain.PlotSnapshot) bool {
	now := snap.ObservedAt.Unix()
	if now < 0 {
		return false
	}
	u := uint64(now)
	return u >= snap.PlantedAt && u-snap.PlantedAt >= uint64(snap.GrowDuration)
}

// transitions derives the events between two observations of a cell. A
// replanted cell reports a clear followed by a plant.
func (p *Poller) transitions(view *domain.PlotView, cell *domain.CellView, prev, cur cellMemo) []event.Event {
	base := domain.CellTransition{
		Player:     view.Player,
		PlotID:     view.PlotID,
		CellIndex:  cell.Index,
		ObservedAt: view.ObservedAt,
	}
	var out []event.Event

	replanted := !prev.empty() && !cur.empty() && prev.packed != cur.packed
	if !prev.empty() && (cur.empty() || replanted) {
		cleared := base
		cleared.SeedType = prev.seedType
		cleared.SeedName = prev.seedName
		out = append(out, event.NewCellEvent(event.CellCleared, cleared, nil))
	}
	if cur.empty() {
		return out
	}

	current := base
	current.SeedType = cur.seedType
	current.SeedName = cur.seedName
	if prev.empty() || replanted {
		out = append(out, event.NewCellEvent(event.CellPlanted, current, cell))
		if cur.ready {
			out = append(out, event.NewCellEvent(event.CellReady, current, cell))
		}
		return out
	}
	if cur.ready && !prev.ready {
		out = append(out, event.NewCellEvent(event.CellReady, current, cell))
	}
	return out
}

func memoOf(view *domain.PlotView, i int) cellMemo {
	cell := view.Cells[i]
	memo := cellMemo{known: true, packed: view.Packed[i]}
	if memo.packed == "" {
		memo.packed = "0"
	}
	if cell.State != nil {
		memo.seedType = cell.State.SeedType
		memo.seedName = cell.SeedName
		memo.ready = cell.Ready()
	}
	return memo
}

func snapshotOf(view *domain.PlotView, i int) domain.PlotSnapshot {
	cell := view.Cells[i]
	snap := domain.PlotSnapshot{
		Player:     view.Player,
		PlotID:     view.PlotID,
		CellIndex:  i,
		Packed:     view.Packed[i],
		ObservedAt: view.ObservedAt,
	}
	if snap.Packed == "" {
		snap.Packed = "0"
	}
	if cell.State != nil {
		snap.Status = cell.State.Status
		snap.SeedType = cell.State.SeedType
		snap.PlantedAt = cell.State.PlantedAt
		snap.GrowDuration = cell.State.GrowDuration
	}
	return snap
}

type pollJob struct {
	poller *Poller
	plot   *watchedPlot
}

// Process implements worker.Job
func (j *pollJob) Process(ctx context.Context) error {
	defer j.plot.polling.Store(false)
	if err := j.poller.poll(ctx, j.plot); err != nil {
		// retried on the next tick
		logger.FromContext(ctx).Warn(LogMsgPollFailed, "player", j.plot.target.Player, "plot", j.plot.target.PlotID, "error", err)
	}
	return nil
}
