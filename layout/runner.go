package layout

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// ============================================================================
// RUNNER — Background per-frame tick loop
// ============================================================================
// One Runner owns at most one in-flight Simulation. Start() always stops the
// previous run before launching the next, so there is never more than one
// writer to the positions. Ticks are paced by a rate.Limiter (frames per
// second); observers poll Snapshot() or receive OnTick callbacks.
// ============================================================================

// Snapshot is a copy of the simulation state after a tick.
type Snapshot struct {
	Nodes     []Node    `json:"nodes"`
	Positions Positions `json:"positions"`
	Alpha     float64   `json:"alpha"`
	Tick      int       `json:"tick"`
	Done      bool      `json:"done"`
	Converged bool      `json:"converged"`
}

// Runner ticks simulations in a goroutine.
type Runner struct {
	fps    float64
	logger hclog.Logger
	onTick func(Snapshot)

	ctl    sync.Mutex // serialises Start and Stop
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	last   Snapshot
	runs   int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFPS sets the tick rate. fps <= 0 ticks as fast as possible.
func WithFPS(fps float64) RunnerOption {
	return func(r *Runner) { r.fps = fps }
}

// WithLogger sets the runner logger.
func WithLogger(logger hclog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// OnTick registers a callback invoked after every tick with a fresh snapshot.
// It runs on the runner goroutine and must not call Start or Stop.
func OnTick(fn func(Snapshot)) RunnerOption {
	return func(r *Runner) { r.onTick = fn }
}

// NewRunner creates an idle Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{fps: 60}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = hclog.NewNullLogger()
	}
	return r
}

// Start stops any in-flight run and lays out entities in the background.
// Entities that were in the previous run keep their last position unless
// opts supply WithPrevious themselves.
// Safe to call from several goroutines; the last caller's run survives.
func (r *Runner) Start(ctx context.Context, entities []Entity, bounds Bounds, opts ...Option) {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.stop()

	r.mu.Lock()
	prev := r.last.Positions
	simOpts := append([]Option{WithPrevious(prev)}, opts...)
	sim := NewSimulation(entities, bounds, simOpts...)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.runs++
	run := r.runs
	r.last = snapshotOf(sim)
	r.mu.Unlock()

	r.logger.Debug("🫧 layout started", "run", run, "entities", len(entities), "fps", r.fps)
	go r.loop(runCtx, sim, done, run)
}

func (r *Runner) loop(ctx context.Context, sim *Simulation, done chan struct{}, run int) {
	defer close(done)

	limit := rate.Inf
	if r.fps > 0 {
		limit = rate.Limit(r.fps)
	}
	limiter := rate.NewLimiter(limit, 1)

	for !sim.Done() {
		if err := limiter.Wait(ctx); err != nil {
			sim.Stop()
			r.logger.Debug("🛑 layout cancelled", "run", run, "tick", sim.Ticks())
			break
		}
		sim.Tick()
		r.publish(sim)
	}

	snap := r.publish(sim)
	r.logger.Debug("✅ layout finished", "run", run, "ticks", snap.Tick, "alpha", snap.Alpha, "converged", snap.Converged)
}

func (r *Runner) publish(sim *Simulation) Snapshot {
	snap := snapshotOf(sim)
	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
	if r.onTick != nil {
		r.onTick(snap)
	}
	return snap
}

// Stop cancels the in-flight run, if any, and waits for it to exit.
func (r *Runner) Stop() {
	r.ctl.Lock()
	defer r.ctl.Unlock()
	r.stop()
}

func (r *Runner) stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Wait blocks until the in-flight run finishes on its own or ctx ends.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the latest published state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func snapshotOf(sim *Simulation) Snapshot {
	return Snapshot{
		Nodes:     sim.Nodes(),
		Positions: sim.Positions(),
		Alpha:     sim.Alpha(),
		Tick:      sim.Ticks(),
		Done:      sim.Done(),
		Converged: sim.Converged(),
	}
}
