package layout

import "math"

// ============================================================================
// FORCES — Repulsion, centering, collision
// ============================================================================
// Each force adds to node velocities; positions move only in Simulation.Tick.
// Forces superpose; none takes priority over another.
// ============================================================================

// distanceMin2 keeps repulsion finite for near-coincident nodes.
const distanceMin2 = 1.0

// applyRepulsion pushes every pair apart with magnitude strength·alpha/distance,
// independent of radius. maxDistance <= 0 means unbounded.
func (s *Simulation) applyRepulsion(alpha float64) {
	strength := s.params.Repulsion
	if strength == 0 {
		return
	}
	maxD2 := s.params.RepulsionMaxDistance * s.params.RepulsionMaxDistance

	nodes := s.nodes
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[j].X - nodes[i].X
			dy := nodes[j].Y - nodes[i].Y
			if dx == 0 {
				dx = s.jiggle()
			}
			if dy == 0 {
				dy = s.jiggle()
			}
			l2 := dx*dx + dy*dy
			if maxD2 > 0 && l2 >= maxD2 {
				continue
			}
			if l2 < distanceMin2 {
				l2 = math.Sqrt(distanceMin2 * l2)
			}
			w := strength * alpha / l2
			nodes[i].VX -= dx * w
			nodes[i].VY -= dy * w
			nodes[j].VX += dx * w
			nodes[j].VY += dy * w
		}
	}
}

// applyCentering pulls every node toward the viewport centre.
func (s *Simulation) applyCentering(alpha float64) {
	k := s.params.CenterStrength * alpha
	if k == 0 {
		return
	}
	c := s.bounds.Center()
	for i := range s.nodes {
		s.nodes[i].VX += (c.X - s.nodes[i].X) * k
		s.nodes[i].VY += (c.Y - s.nodes[i].Y) * k
	}
}

// applyCollision separates overlapping pairs using predicted positions
// (x+vx). Both nodes move, weighted by the other's squared radius, and the
// correction goes through velocity so no energy is dropped abruptly.
func (s *Simulation) applyCollision() {
	strength := s.params.CollisionStrength
	if strength == 0 {
		return
	}
	pad := s.params.Padding / 2
	iterations := s.params.CollisionIterations
	if iterations < 1 {
		iterations = 1
	}

	nodes := s.nodes
	for k := 0; k < iterations; k++ {
		for i := 0; i < len(nodes); i++ {
			ri := nodes[i].Radius + pad
			for j := i + 1; j < len(nodes); j++ {
				rj := nodes[j].Radius + pad
				r := ri + rj

				dx := (nodes[i].X + nodes[i].VX) - (nodes[j].X + nodes[j].VX)
				dy := (nodes[i].Y + nodes[i].VY) - (nodes[j].Y + nodes[j].VY)
				l := dx*dx + dy*dy
				if l >= r*r {
					continue
				}
				if dx == 0 {
					dx = s.jiggle()
					l += dx * dx
				}
				if dy == 0 {
					dy = s.jiggle()
					l += dy * dy
				}
				l = math.Sqrt(l)
				l = (r - l) / l * strength
				dx *= l
				dy *= l

				w := (rj * rj) / (ri*ri + rj*rj)
				nodes[i].VX += dx * w
				nodes[i].VY += dy * w
				nodes[j].VX -= dx * (1 - w)
				nodes[j].VY -= dy * (1 - w)
			}
		}
	}
}

// jiggle returns a tiny random offset to split coincident nodes.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
