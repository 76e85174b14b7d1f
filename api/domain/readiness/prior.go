package readiness

import "vitametron/api/domain/entity"

// highLoadLabels is the set of training-load labels counted by the
// consecutive-high-load penalty.
var highLoadLabels = map[string]bool{"high": true, "very_high": true}

// todayLoadLabel prefers an AU-derived label over a caller-supplied
// categorical one: if an AU value for today is available, derive the label
// from it (bucketed by LabelToAU) and use that single label; the
// caller-supplied categorical label is only used when no AU is available,
// so the two inputs are never double-counted.
func todayLoadLabel(p *entity.DailyPayload) (string, bool) {
	if len(p.RecentTrainingAU) > 0 {
		return labelFromAU(p.RecentTrainingAU[len(p.RecentTrainingAU)-1]), true
	}
	if p.HasTrainingLoad {
		return p.TrainingLoad, true
	}
	return "", false
}

// labelFromAU buckets a raw AU value into the nearest training-load label,
// using the midpoints between LabelToAU's reference values as boundaries.
func labelFromAU(au float64) string {
	switch {
	case au < 100:
		return "rest"
	case au < 275:
		return "low"
	case au < 425:
		return "medium"
	case au < 600:
		return "high"
	default:
		return "very_high"
	}
}

// applyTrainingLoadCPT folds today's training-load label into the prior.
func applyTrainingLoadCPT(prior entity.StateDistribution, label string, ok bool) entity.StateDistribution {
	if !ok {
		return prior
	}
	row := TrainingLoadCPT.Likelihood(label)
	for i := range prior {
		prior[i] *= row[i]
	}
	prior.Normalize()
	return prior
}

// applyConsecutiveLoadPenalty shifts mass toward NFOR after a run of
// high/very_high training days.
func applyConsecutiveLoadPenalty(prior entity.StateDistribution, recentLoads []string) entity.StateDistribution {
	from := []entity.State{entity.Peak, entity.WellAdapted, entity.FOR, entity.AcuteFatigue}
	to := []entity.State{entity.NFOR}

	if n := len(recentLoads); n >= 8 {
		if countHigh(recentLoads[n-8:]) >= 6 {
			return shiftMass(prior, from, to, 0.60)
		}
	}
	if n := len(recentLoads); n >= 4 {
		if countHigh(recentLoads[n-4:]) >= 3 {
			return shiftMass(prior, from, to, 0.50)
		}
	}
	return prior
}

func countHigh(loads []string) int {
	n := 0
	for _, l := range loads {
		if highLoadLabels[l] {
			n++
		}
	}
	return n
}

// adaptationBand classifies chronic load (C28) into the ACWR adjustment's
// low/mid/high bands.
func adaptationBand(c28 float64) string {
	switch {
	case c28 < 1200:
		return "low"
	case c28 <= 2500:
		return "mid"
	default:
		return "high"
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func lastN(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return vals
	}
	return vals[len(vals)-n:]
}

// applyACWRAdjustment rewards or penalizes the prior based on the acute:
// chronic workload ratio. Requires >=7 AU entries; otherwise a no-op.
func applyACWRAdjustment(prior entity.StateDistribution, au []float64) entity.StateDistribution {
	if len(au) < 7 {
		return prior
	}

	c28 := mean(lastN(au, 28))
	if c28 <= 0 {
		return prior
	}
	a7 := mean(lastN(au, 7))
	a3 := mean(lastN(au, 3))
	r := a7 / c28
	band := adaptationBand(c28)

	rewardFrom := []entity.State{entity.NFOR, entity.AcuteFatigue}
	rewardTo := []entity.State{entity.WellAdapted, entity.Peak}
	penaltyFrom := []entity.State{entity.Peak, entity.WellAdapted, entity.FOR}
	penaltyTo := []entity.State{entity.AcuteFatigue, entity.NFOR}

	switch {
	case r <= 0.9:
		base := 0.01
		if r <= 0.8 {
			base = 0.02
		}
		mult := 1.0
		if band == "high" {
			mult = 1.2
		}
		return shiftMass(prior, rewardFrom, rewardTo, base*mult)
	case r >= 1.15:
		var base float64
		switch {
		case r < 1.30:
			base = 0.02
		case r < 1.50:
			base = 0.04
		default:
			base = 0.06
		}
		var mult float64
		switch band {
		case "low":
			mult = 1.5
		case "mid":
			mult = 1.0
		default:
			mult = 0.5
		}
		pct := base * mult
		if c28 > 0 && a3/c28 >= 1.30 {
			pct += 0.01
		}
		return shiftMass(prior, penaltyFrom, penaltyTo, pct)
	default:
		return prior
	}
}

// journalSteps is the fixed set of yesterday-scoped booleans the engine
// recognizes; any other key in Journal.Extra is ignored here but preserved
// upstream in the stored payload.
var journalSteps = []struct {
	name string
	get  func(entity.Journal) bool
}{
	{"alcohol_consumed", func(j entity.Journal) bool { return j.AlcoholConsumed }},
	{"late_caffeine", func(j entity.Journal) bool { return j.LateCaffeine }},
	{"screen_before_bed", func(j entity.Journal) bool { return j.ScreenBeforeBed }},
	{"late_meal", func(j entity.Journal) bool { return j.LateMeal }},
}

// applyYesterdayJournal folds in yesterday's short-term lifestyle effects.
func applyYesterdayJournal(prior entity.StateDistribution, yesterday entity.Journal) entity.StateDistribution {
	for _, step := range journalSteps {
		if !step.get(yesterday) {
			continue
		}
		row := journalCPT.Likelihood(step.name)
		prior = multiplyLikelihood(prior, row, journalWeight)
	}
	return prior
}

// ComputePrior runs the full prior-assembly pipeline: baseline transition,
// training load, consecutive-load penalty, ACWR adjustment, and yesterday's
// journal effects, normalizing after each step. It returns the resulting
// prior plus one UpdateStep per non-trivial stage for DailyResult.UpdateHistory.
func ComputePrior(previous entity.StateDistribution, p *entity.DailyPayload) (entity.StateDistribution, []entity.UpdateStep) {
	var history []entity.UpdateStep

	prior := applyTransition(previous)
	history = append(history, entity.UpdateStep{Step: "baseline_transition", ProbsAfter: prior})

	if label, ok := todayLoadLabel(p); ok {
		prior = applyTrainingLoadCPT(prior, label, ok)
		history = append(history, entity.UpdateStep{Step: "training_load_cpt", ProbsAfter: prior})
	}

	before := prior
	prior = applyConsecutiveLoadPenalty(prior, p.RecentTrainingLoads)
	if prior != before {
		history = append(history, entity.UpdateStep{Step: "consecutive_load_penalty", ProbsAfter: prior})
	}

	before = prior
	prior = applyACWRAdjustment(prior, p.RecentTrainingAU)
	if prior != before {
		history = append(history, entity.UpdateStep{Step: "acwr_adjustment", ProbsAfter: prior})
	}

	before = prior
	prior = applyYesterdayJournal(prior, p.YesterdayJournal)
	if prior != before {
		history = append(history, entity.UpdateStep{Step: "yesterday_journal", ProbsAfter: prior})
	}

	return prior, history
}
