package system

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
	budget  time.Duration // 0 = no overrun check
	log     *zap.Logger
}

type RunnerOption func(*Runner)

// WithBudget makes Tick warn when a tick takes longer than d.
func WithBudget(d time.Duration) RunnerOption {
	return func(r *Runner) { r.budget = d }
}

func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		systems: make([]System, 0, 16),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Len() int      { return len(r.systems) }
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs every system once.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	start := time.Now()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.ticks++
	if elapsed := time.Since(start); r.budget > 0 && elapsed > r.budget {
		r.log.Warn("tick overrun",
			zap.Uint64("tick", r.ticks),
			zap.Duration("elapsed", elapsed),
			zap.Duration("budget", r.budget),
		)
	}
}

// TickPhase runs only the systems registered for phase. It does not count as
// a tick.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	r.sorted = true
}
