package layout

import (
	"math"
	"math/rand/v2"
)

// ============================================================================
// SIMULATION — Damped-velocity force layout
// ============================================================================
// Per tick:
//   1. alpha decays toward 0
//   2. repulsion + centering (scaled by alpha) and collision add to velocity
//   3. velocity decays by VelocityDecay, position += velocity
// Runs until alpha < AlphaMin or MaxTicks, whichever comes first.
// 0 or 1 entities: placed at the centre, no forces, done immediately.
// ============================================================================

// Params tunes the simulation. Non-positive fractions, rates and budgets fall
// back to DefaultParams(); force strengths are used as given, so 0 turns a
// force off.
type Params struct {
	RadiusMinFrac        float64 `json:"radiusMinFrac" yaml:"radius_min_frac" koanf:"radius_min_frac"`
	RadiusMaxFrac        float64 `json:"radiusMaxFrac" yaml:"radius_max_frac" koanf:"radius_max_frac"`
	Padding              float64 `json:"padding" yaml:"padding" koanf:"padding"`
	Repulsion            float64 `json:"repulsion" yaml:"repulsion" koanf:"repulsion"`
	RepulsionMaxDistance float64 `json:"repulsionMaxDistance" yaml:"repulsion_max_distance" koanf:"repulsion_max_distance"`
	CenterStrength       float64 `json:"centerStrength" yaml:"center_strength" koanf:"center_strength"`
	CollisionStrength    float64 `json:"collisionStrength" yaml:"collision_strength" koanf:"collision_strength"`
	CollisionIterations  int     `json:"collisionIterations" yaml:"collision_iterations" koanf:"collision_iterations"`
	VelocityDecay        float64 `json:"velocityDecay" yaml:"velocity_decay" koanf:"velocity_decay"`
	AlphaMin             float64 `json:"alphaMin" yaml:"alpha_min" koanf:"alpha_min"`
	AlphaDecay           float64 `json:"alphaDecay" yaml:"alpha_decay" koanf:"alpha_decay"`
	MaxTicks             int     `json:"maxTicks" yaml:"max_ticks" koanf:"max_ticks"`
}

// DefaultParams returns the tuned defaults. AlphaDecay reaches AlphaMin in
// about 300 ticks.
func DefaultParams() Params {
	return Params{
		RadiusMinFrac:       0.015,
		RadiusMaxFrac:       0.06,
		Padding:             3,
		Repulsion:           3,
		CenterStrength:      0.05,
		CollisionStrength:   1,
		CollisionIterations: 1,
		VelocityDecay:       0.3,
		AlphaMin:            0.001,
		AlphaDecay:          1 - math.Pow(0.001, 1.0/300),
		MaxTicks:            500,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.RadiusMinFrac <= 0 {
		p.RadiusMinFrac = d.RadiusMinFrac
	}
	if p.RadiusMaxFrac <= 0 {
		p.RadiusMaxFrac = d.RadiusMaxFrac
	}
	if p.CollisionIterations <= 0 {
		p.CollisionIterations = d.CollisionIterations
	}
	if p.VelocityDecay <= 0 || p.VelocityDecay >= 1 {
		p.VelocityDecay = d.VelocityDecay
	}
	if p.AlphaMin <= 0 {
		p.AlphaMin = d.AlphaMin
	}
	if p.AlphaDecay <= 0 || p.AlphaDecay >= 1 {
		p.AlphaDecay = d.AlphaDecay
	}
	if p.MaxTicks <= 0 {
		p.MaxTicks = d.MaxTicks
	}
	return p
}

// Option configures a Simulation.
type Option func(*settings)

type settings struct {
	params   Params
	previous Positions
	seed     uint64
}

// WithParams replaces the simulation parameters.
func WithParams(p Params) Option {
	return func(s *settings) {
		s.params = p
	}
}

// WithPrevious warm-starts entities whose ID appears in prev from that position.
func WithPrevious(prev Positions) Option {
	return func(s *settings) {
		s.previous = prev
	}
}

// WithSeed seeds the jiggle source used to split coincident nodes.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// Simulation is one layout run. Not safe for concurrent use; a Runner
// owns it when ticking in the background.
type Simulation struct {
	nodes   []Node
	bounds  Bounds
	params  Params
	rng     *rand.Rand
	alpha   float64
	ticks   int
	stopped bool
}

const (
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// NewSimulation places entities on a phyllotaxis spiral around the centre
// (or at their previous position) and prepares a run.
func NewSimulation(entities []Entity, bounds Bounds, opts ...Option) *Simulation {
	st := &settings{params: DefaultParams()}
	for _, opt := range opts {
		opt(st)
	}

	bounds = bounds.sanitized()
	params := st.params.withDefaults()
	scale := NewRadiusScale(entities, bounds.Width, params)
	c := bounds.Center()

	nodes := make([]Node, len(entities))
	for i, e := range entities {
		n := Node{ID: e.ID, Radius: scale.Radius(e.Rating)}
		if p, ok := st.previous[e.ID]; ok && len(entities) > 1 {
			n.X, n.Y = p.X, p.Y
		} else if len(entities) > 1 {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			n.X = c.X + r*math.Cos(a)
			n.Y = c.Y + r*math.Sin(a)
		} else {
			n.X, n.Y = c.X, c.Y
		}
		nodes[i] = n
	}

	return &Simulation{
		nodes:  nodes,
		bounds: bounds,
		params: params,
		rng:    rand.New(rand.NewPCG(st.seed, st.seed+1)),
		alpha:  1,
	}
}

// Layout runs a simulation to convergence and returns the final positions.
func Layout(entities []Entity, bounds Bounds, opts ...Option) Positions {
	return NewSimulation(entities, bounds, opts...).Run()
}

// Tick advances one step. It returns false once the run is finished
// (converged, tick budget spent, stopped, or trivial input).
func (s *Simulation) Tick() bool {
	if s.Done() {
		return false
	}

	s.alpha += (0 - s.alpha) * s.params.AlphaDecay

	s.applyRepulsion(s.alpha)
	s.applyCentering(s.alpha)
	s.applyCollision()

	keep := 1 - s.params.VelocityDecay
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
	s.ticks++
	return !s.Done()
}

// Advance runs up to n ticks and returns the positions afterwards.
func (s *Simulation) Advance(n int) Positions {
	for i := 0; i < n; i++ {
		if !s.Tick() {
			break
		}
	}
	return s.Positions()
}

// Run ticks until the simulation is done.
func (s *Simulation) Run() Positions {
	for s.Tick() {
	}
	return s.Positions()
}

// Stop ends the run; further Ticks are no-ops.
func (s *Simulation) Stop() { s.stopped = true }

// Done reports whether the run has finished.
func (s *Simulation) Done() bool {
	return s.stopped ||
		len(s.nodes) <= 1 ||
		s.alpha < s.params.AlphaMin ||
		s.ticks >= s.params.MaxTicks
}

// Converged reports whether alpha dropped below AlphaMin.
func (s *Simulation) Converged() bool {
	return len(s.nodes) <= 1 || s.alpha < s.params.AlphaMin
}

// Alpha returns the current energy level.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() int { return s.ticks }

// Bounds returns the viewport the simulation centres on.
func (s *Simulation) Bounds() Bounds { return s.bounds }

// Positions returns a copy of the current positions keyed by entity ID.
func (s *Simulation) Positions() Positions {
	out := make(Positions, len(s.nodes))
	for _, n := range s.nodes {
		out[n.ID] = Point{X: n.X, Y: n.Y}
	}
	return out
}

// Nodes returns a copy of the current node state.
func (s *Simulation) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}
