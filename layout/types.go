package layout

import (
	"math"

	"github.com/spektr-org/moviescope/engine"
)

// ============================================================================
// LAYOUT TYPES — Entities in, positions out
// ============================================================================

// Entity is one bubble to place. Rating drives its radius.
type Entity struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
}

// Bounds is the layout viewport. The simulation centres on (Width/2, Height/2).
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the viewport centre.
func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}

func (b Bounds) sanitized() Bounds {
	if b.Width <= 0 || math.IsNaN(b.Width) {
		b.Width = 1
	}
	if b.Height <= 0 || math.IsNaN(b.Height) {
		b.Height = 1
	}
	return b
}

// Point is a 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps entity IDs to positions.
type Positions map[string]Point

// Node is an entity with its mutable simulation state.
// Owned by a Simulation for the duration of one run.
type Node struct {
	ID     string  `json:"id"`
	Radius float64 `json:"radius"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

// EntitiesFromMovies turns a display list into layout entities.
func EntitiesFromMovies(movies []engine.Movie) []Entity {
	out := make([]Entity, len(movies))
	for i, m := range movies {
		out[i] = Entity{ID: m.ID, Rating: m.Rating}
	}
	return out
}
