package readiness

import (
	"math"

	"vitametron/api/domain/entity"
)

// cycleGoodRow / cycleBadRow bound the continuous menstrual-cycle
// likelihood curve: best around mid-follicular, worst late-luteal (the
// design note: "implement as a small table or closed-form function").
var cycleGoodRow = sd(0.35, 0.40, 0.15, 0.06, 0.03, 0.01)
var cycleBadRow = sd(0.05, 0.20, 0.28, 0.27, 0.15, 0.05)

// cycleLikelihood returns a likelihood row for the given cycle day,
// peaking (cycleGoodRow) near 30% through the cycle (mid-follicular) and
// troughing (cycleBadRow) near 80% through (late-luteal), via a cosine
// profile so it degrades gracefully for any cycle_length in [20,40].
func cycleLikelihood(day, length int) entity.StateDistribution {
	if length <= 0 {
		return cycleGoodRow
	}
	frac := float64(day) / float64(length)
	favorability := (math.Cos(2*math.Pi*(frac-0.30)) + 1) / 2 // 1 = best, 0 = worst
	var row entity.StateDistribution
	for i := range row {
		row[i] = favorability*cycleGoodRow[i] + (1-favorability)*cycleBadRow[i]
	}
	return row
}

// likelihoodFor resolves the likelihood row for one evidence variable,
// given its observed category from the mapping layer.
func likelihoodFor(variable, category string, cpts map[string]entity.CPT) entity.StateDistribution {
	if override, ok := cpts[variable]; ok {
		return override.Likelihood(category)
	}
	switch variable {
	case "sleep_performance":
		return sleepPerformanceCPT.Likelihood(category)
	case "restorative_sleep":
		return restorativeSleepCPT.Likelihood(category)
	case "hrv_trend":
		return hrvTrendCPT.Likelihood(category)
	case "subjective_fatigue", "muscle_soreness", "subjective_stress", "subjective_sleep":
		return subjectiveCPT.Likelihood(category)
	case "wellbeing_trend":
		return wellbeingCPT.Likelihood(category)
	case "nutrition":
		return nutritionCPT.Likelihood(category)
	case "gi_symptoms":
		return giSymptomsCPT.Likelihood(category)
	case "is_sick":
		return isSickCPT.Likelihood(category)
	case "is_injured":
		return isInjuredCPT.Likelihood(category)
	default:
		return entity.StateDistribution{1e-6, 1e-6, 1e-6, 1e-6, 1e-6, 1e-6}
	}
}

// ComputePosterior fuses the evidence map into prior in canonical order
// applying the soreness x stress interaction term when both are
// present, and returns the posterior plus one UpdateStep per applied
// variable. weights may be nil to use EvidenceWeights; overrideCPTs may be
// nil/partial (personalization loader output).
func ComputePosterior(prior entity.StateDistribution, ev Evidence, p *entity.DailyPayload, weights map[string]float64, overrideCPTs map[string]entity.CPT) (entity.StateDistribution, []entity.UpdateStep) {
	if weights == nil {
		weights = EvidenceWeights
	}
	posterior := prior
	var history []entity.UpdateStep

	for _, variable := range canonicalEvidenceOrder {
		category, present := ev[variable]
		if !present {
			continue
		}
		if variable == "menstrual_cycle" {
			if !p.Cycle.HasCycleInfo {
				continue
			}
			row := cycleLikelihood(p.Cycle.Day, p.Cycle.CycleLength)
			posterior = multiplyLikelihood(posterior, row, weightFor(weights, variable))
			history = append(history, entity.UpdateStep{Step: "evidence:" + variable, ProbsAfter: posterior})
			continue
		}
		row := likelihoodFor(variable, category, overrideCPTs)
		posterior = multiplyLikelihood(posterior, row, weightFor(weights, variable))
		history = append(history, entity.UpdateStep{Step: "evidence:" + variable, ProbsAfter: posterior})
	}

	if soreness, ok1 := ev["muscle_soreness"]; ok1 {
		if stress, ok2 := ev["subjective_stress"]; ok2 {
			key := soreness + "|" + stress
			if row, ok := interactionCPT[key]; ok {
				posterior = multiplyLikelihood(posterior, row, 1.0)
				history = append(history, entity.UpdateStep{Step: "evidence:interaction_soreness_stress", ProbsAfter: posterior})
			}
		}
	}

	return posterior, history
}

func weightFor(weights map[string]float64, variable string) float64 {
	if w, ok := weights[variable]; ok {
		return w
	}
	return 1.0
}
