package readiness

import (
	"math"

	"vitametron/api/domain/entity"
)

// multiplyLikelihood applies posterior[s] *= L[s]^w element-wise and
// re-normalizes, the core step of weighted-likelihood evidence fusion.
func multiplyLikelihood(d entity.StateDistribution, l entity.StateDistribution, weight float64) entity.StateDistribution {
	for i := range d {
		li := l[i]
		if li < 1e-6 {
			li = 1e-6
		}
		d[i] *= math.Pow(li, weight)
	}
	d.Normalize()
	return d
}

// shiftMass moves pct (a fraction in [0,1]) of the total probability mass
// currently on the states in from toward the states in to, proportionally
// removed from "from" and distributed equally across "to". Used by the
// consecutive-high-load penalty and the ACWR adjustment.
func shiftMass(d entity.StateDistribution, from, to []entity.State, pct float64) entity.StateDistribution {
	totalFrom := 0.0
	for _, s := range from {
		totalFrom += d[s]
	}
	if totalFrom <= 0 || pct <= 0 {
		return d
	}
	moved := totalFrom * pct
	for _, s := range from {
		share := d[s] / totalFrom
		d[s] -= moved * share
		if d[s] < 1e-6 {
			d[s] = 1e-6
		}
	}
	if len(to) > 0 {
		each := moved / float64(len(to))
		for _, s := range to {
			d[s] += each
		}
	}
	d.Normalize()
	return d
}

// applyTransition computes prior[s_today] = sum_{s_yd} P(s_yd) * T[s_yd][s_today].
func applyTransition(previous entity.StateDistribution) entity.StateDistribution {
	var prior entity.StateDistribution
	for _, from := range entity.States {
		row := TransitionRow(from)
		p := previous[from]
		for i := range prior {
			prior[i] += p * row[i]
		}
	}
	prior.Normalize()
	return prior
}
