// Package readiness is the pure, stateless computational core of the
// athletic-readiness inference engine: mapping, baselines, prior/posterior
// fusion, consumption, and the fixed CPT tables they all read. Nothing in
// this package performs I/O or blocks; every function is a total function
// of its arguments.
package readiness

import "vitametron/api/domain/entity"

// sd is a terse constructor for a StateDistribution literal in the canonical
// [Peak, W-A, FOR, AF, NFOR, OTS] order used throughout the reference tables.
func sd(peak, wa, for_, af, nfor, ots float64) entity.StateDistribution {
	return entity.StateDistribution{peak, wa, for_, af, nfor, ots}
}

// TransitionRow returns T[from], the un-normalized weight row of the
// baseline day-to-day transition matrix.
func TransitionRow(from entity.State) entity.StateDistribution {
	switch from {
	case entity.Peak:
		return sd(0.80, 0.10, 0.05, 1e-6, 1e-6, 1e-6)
	case entity.WellAdapted:
		return sd(0.60, 0.35, 0.05, 1e-6, 1e-6, 1e-6)
	case entity.FOR:
		return sd(0.05, 0.40, 0.30, 0.10, 0.10, 0.05)
	case entity.AcuteFatigue:
		return sd(0.20, 0.70, 0.10, 1e-6, 1e-6, 1e-6)
	case entity.NFOR:
		return sd(0.01, 0.05, 0.10, 0.05, 0.70, 0.09)
	case entity.OTS:
		return sd(0.01, 0.04, 0.10, 0.05, 0.30, 0.50)
	default:
		return sd(1e-6, 1e-6, 1e-6, 1e-6, 1e-6, 1e-6)
	}
}

// TrainingLoadCPT maps a training-load label to its likelihood row.
var TrainingLoadCPT = entity.CPT{
	"very_high": sd(0.01, 0.05, 0.40, 0.50, 0.04, 1e-6),
	"high":      sd(0.05, 0.15, 0.50, 0.25, 0.05, 1e-6),
	"medium":    sd(0.10, 0.60, 0.20, 0.08, 0.02, 1e-6),
	"low":       sd(0.20, 0.70, 0.05, 0.04, 0.01, 1e-6),
	"rest":      sd(0.30, 0.60, 0.05, 0.03, 0.02, 1e-6),
}

// LabelToAU is the fixed label->AU bucket map used both to derive a training
// label from an AU value (consecutive-load tracking) and by the consumption
// calculator's priority-3 fallback.
var LabelToAU = map[string]float64{
	"rest":      0,
	"low":       200,
	"medium":    350,
	"high":      500,
	"very_high": 700,
}

// subjectiveCPT is shared by subjective_fatigue, muscle_soreness,
// subjective_stress and subjective_sleep: all four Hooper-derived variables
// share the same low/medium/high domain and the same semantic shape, so one
// table serves all of them (see the dynamic-dispatch-by-string-key design
// note: one table + one weight per variable name).
var subjectiveCPT = entity.CPT{
	"low":    sd(0.30, 0.40, 0.18, 0.08, 0.03, 0.01),
	"medium": sd(0.12, 0.33, 0.28, 0.17, 0.07, 0.03),
	"high":   sd(0.02, 0.08, 0.20, 0.33, 0.25, 0.12),
}

var sleepPerformanceCPT = entity.CPT{
	"good":   sd(0.35, 0.40, 0.15, 0.06, 0.03, 0.01),
	"medium": sd(0.10, 0.30, 0.30, 0.20, 0.08, 0.02),
	"poor":   sd(0.02, 0.08, 0.20, 0.35, 0.25, 0.10),
}

var restorativeSleepCPT = entity.CPT{
	"high":   sd(0.35, 0.40, 0.15, 0.06, 0.03, 0.01),
	"medium": sd(0.12, 0.33, 0.28, 0.18, 0.07, 0.02),
	"low":    sd(0.02, 0.08, 0.22, 0.33, 0.25, 0.10),
}

var hrvTrendCPT = entity.CPT{
	"rising":              sd(0.40, 0.40, 0.12, 0.05, 0.02, 0.01),
	"stable":              sd(0.15, 0.40, 0.25, 0.12, 0.06, 0.02),
	"slight_decline":      sd(0.05, 0.20, 0.30, 0.25, 0.15, 0.05),
	"significant_decline": sd(0.01, 0.05, 0.14, 0.30, 0.30, 0.20),
}

// isSickCPT is applied as a single sick-state CPT whenever journal.is_sick
// is true, collapsing mass away from Peak/Well-adapted.
var isSickCPT = entity.CPT{
	"true": sd(1e-6, 0.01, 0.09, 0.30, 0.35, 0.25),
}

// isInjuredCPT is applied only when journal.is_injured is true.
var isInjuredCPT = entity.CPT{
	"true": sd(0.02, 0.10, 0.25, 0.33, 0.22, 0.08),
}

// wellbeingCPT maps a WHO-5 percentage band to a likelihood row, a
// supplemental evidence variable fed by the wellbeing assessment.
var wellbeingCPT = entity.CPT{
	"low":    sd(0.03, 0.10, 0.22, 0.32, 0.23, 0.10),
	"medium": sd(0.12, 0.33, 0.28, 0.17, 0.07, 0.03),
	"high":   sd(0.33, 0.40, 0.17, 0.06, 0.03, 0.01),
}

// nutritionCPT maps a self-reported nutrition-quality band to a likelihood
// row, an optional evidence variable.
var nutritionCPT = entity.CPT{
	"good":   sd(0.30, 0.40, 0.18, 0.08, 0.03, 0.01),
	"medium": sd(0.14, 0.35, 0.27, 0.16, 0.06, 0.02),
	"poor":   sd(0.04, 0.14, 0.25, 0.30, 0.20, 0.07),
}

// giSymptomsCPT maps a self-reported GI-distress band to a likelihood row,
// an optional evidence variable.
var giSymptomsCPT = entity.CPT{
	"none":   sd(0.30, 0.40, 0.18, 0.08, 0.03, 0.01),
	"mild":   sd(0.12, 0.32, 0.28, 0.18, 0.08, 0.02),
	"severe": sd(0.02, 0.08, 0.20, 0.35, 0.25, 0.10),
}

// interactionCPT is the optional soreness x stress synergy term, applied
// whenever both evidence variables are present in the same day's pool.
var interactionCPT = map[string]entity.StateDistribution{
	"low|low":       sd(0.30, 0.40, 0.18, 0.08, 0.03, 0.01),
	"low|medium":    sd(0.18, 0.35, 0.25, 0.14, 0.06, 0.02),
	"low|high":      sd(0.08, 0.22, 0.30, 0.25, 0.12, 0.03),
	"medium|low":    sd(0.18, 0.35, 0.25, 0.14, 0.06, 0.02),
	"medium|medium": sd(0.10, 0.28, 0.30, 0.20, 0.09, 0.03),
	"medium|high":   sd(0.04, 0.14, 0.24, 0.32, 0.20, 0.06),
	"high|low":      sd(0.08, 0.22, 0.30, 0.25, 0.12, 0.03),
	"high|medium":   sd(0.04, 0.14, 0.24, 0.32, 0.20, 0.06),
	"high|high":     sd(0.01, 0.04, 0.12, 0.28, 0.35, 0.20),
}

// journalCPT holds the four yesterday-scoped short-term lifestyle effects,
// each weighted <= 1.0 via journalWeight.
var journalCPT = entity.CPT{
	"alcohol_consumed":  sd(0.10, 0.30, 0.28, 0.20, 0.09, 0.03),
	"late_caffeine":     sd(0.12, 0.33, 0.27, 0.18, 0.08, 0.02),
	"screen_before_bed": sd(0.12, 0.32, 0.28, 0.18, 0.08, 0.02),
	"late_meal":         sd(0.13, 0.33, 0.27, 0.17, 0.07, 0.03),
}

// journalWeight is the shared exponent weight <= 1.0 applied to each
// short-term journal CPT in the prior engine.
const journalWeight = 0.30

// EvidenceWeights are the default per-variable posterior fusion weights,
// overridable per user by the personalization loader.
var EvidenceWeights = map[string]float64{
	"hrv_trend":          1.00,
	"restorative_sleep":  0.95,
	"sleep_performance":  0.90,
	"subjective_fatigue": 0.75,
	"subjective_stress":  0.70,
	"muscle_soreness":    0.65,
	"subjective_sleep":   0.60,
	"is_sick":            1.00,
	"is_injured":         0.80,
	"nutrition":          0.60,
	"gi_symptoms":        0.50,
	"wellbeing_trend":    0.45,
	"menstrual_cycle":    0.80,
}

// canonicalEvidenceOrder is the fixed order evidence updates apply in so
// that test oracles (and two requests for the same user/date) are stable.
var canonicalEvidenceOrder = []string{
	"hrv_trend",
	"restorative_sleep",
	"sleep_performance",
	"subjective_fatigue",
	"subjective_stress",
	"muscle_soreness",
	"subjective_sleep",
	"wellbeing_trend",
	"is_sick",
	"is_injured",
	"nutrition",
	"gi_symptoms",
	"menstrual_cycle",
}
