package readiness

import (
	"math"

	"vitametron/api/domain/entity"
)

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Evidence is the {variable -> category} map emitted by Map, consumed
// directly by the posterior engine in canonicalEvidenceOrder.
type Evidence map[string]string

// Map converts a DailyPayload (plus a resolved Baseline, which may be nil
// when none is available) into the evidence map the posterior engine
// fuses. Variables that cannot be derived are simply omitted rather than
// raising an error.
func Map(p *entity.DailyPayload, baseline *entity.Baseline) Evidence {
	ev := make(Evidence)

	if p.HasSleepData && p.TotalSleepMinutes > 0 {
		if cat, ok := mapSleepPerformance(p, baseline); ok {
			ev["sleep_performance"] = cat
		}
		if cat, ok := mapRestorativeSleep(p, baseline); ok {
			ev["restorative_sleep"] = cat
		}
	}

	if cat, ok := mapHRVTrend(p, baseline); ok {
		ev["hrv_trend"] = cat
	}

	ev["subjective_fatigue"] = hooperBand(p.Hooper.Fatigue)
	ev["muscle_soreness"] = hooperBand(p.Hooper.Soreness)
	ev["subjective_stress"] = hooperBand(p.Hooper.Stress)
	ev["subjective_sleep"] = hooperBand(p.Hooper.Sleep)

	if p.HasWellbeingPercentage {
		ev["wellbeing_trend"] = wellbeingBand(p.WellbeingPercentage)
	}

	if p.TodayJournal.IsSick {
		ev["is_sick"] = "true"
	}
	if p.TodayJournal.IsInjured {
		ev["is_injured"] = "true"
	}
	if p.TodayJournal.HasNutritionQuality {
		ev["nutrition"] = p.TodayJournal.NutritionQuality
	}
	if p.TodayJournal.HasGISymptoms {
		ev["gi_symptoms"] = p.TodayJournal.GISymptoms
	}
	if p.Cycle.HasCycleInfo {
		ev["menstrual_cycle"] = "continuous" // resolved to a likelihood curve, not a discrete category
	}

	return ev
}

// hooperBand applies the discrete 1-2/3-4/5-7 Hooper banding.
func hooperBand(score int) string {
	switch {
	case score <= 2:
		return "low"
	case score <= 4:
		return "medium"
	default:
		return "high"
	}
}

// wellbeingBand buckets a WHO-5 Percentage (0-100) into the supplemental
// wellbeing_trend evidence variable.
func wellbeingBand(pct int) string {
	switch {
	case pct < 40:
		return "low"
	case pct <= 70:
		return "medium"
	default:
		return "high"
	}
}

func sleepHours(p *entity.DailyPayload) float64 {
	return p.TotalSleepMinutes / 60.0
}

func mapSleepPerformance(p *entity.DailyPayload, b *entity.Baseline) (string, bool) {
	hours := sleepHours(p)
	eff := 0.0
	if p.InBedMinutes > 0 {
		eff = p.TotalSleepMinutes / p.InBedMinutes
	}

	var goodHours, medHours, goodEff, medEff float64
	if mu, ok := resolvedSleepBaselineHours(p, b); ok {
		goodHours = clamp(mu+1.0, 7.0, 9.0)
		medHours = clamp(mu-0.5, 6.0, 8.0)
	} else {
		goodHours, medHours = 7.0, 6.0
	}
	if muEff, ok := resolvedSleepBaselineEff(p, b); ok {
		goodEff = math.Max(0.85, muEff-0.05)
		medEff = math.Max(0.75, muEff-0.10)
	} else {
		goodEff, medEff = 0.85, 0.75
	}

	switch {
	case hours >= goodHours && eff >= goodEff:
		return "good", true
	case hours >= medHours && eff >= medEff:
		return "medium", true
	default:
		return "poor", true
	}
}

func resolvedSleepBaselineHours(p *entity.DailyPayload, b *entity.Baseline) (float64, bool) {
	if p.SleepBaselineHours != nil {
		return *p.SleepBaselineHours, true
	}
	if b != nil && b.Source != entity.BaselineFallback && b.SleepHoursMean > 0 {
		return b.SleepHoursMean, true
	}
	return 0, false
}

func resolvedSleepBaselineEff(p *entity.DailyPayload, b *entity.Baseline) (float64, bool) {
	if p.SleepBaselineEff != nil {
		return *p.SleepBaselineEff, true
	}
	if b != nil && b.Source != entity.BaselineFallback && b.SleepEfficiencyMean > 0 {
		return b.SleepEfficiencyMean, true
	}
	return 0, false
}

func mapRestorativeSleep(p *entity.DailyPayload, b *entity.Baseline) (string, bool) {
	ratio := p.RestorativeRatio
	if !p.HasRestorativeRatio {
		if p.TotalSleepMinutes <= 0 {
			return "", false
		}
		ratio = (p.DeepSleepMinutes + p.REMSleepMinutes) / p.TotalSleepMinutes
	}

	var high, med float64
	if mu, ok := resolvedRestBaseline(p, b); ok {
		high = math.Min(0.55, math.Max(0.35, mu+0.10))
		med = math.Max(0.25, mu-0.05)
	} else {
		high, med = 0.35, 0.25
	}

	switch {
	case ratio >= high:
		return "high", true
	case ratio >= med:
		return "medium", true
	default:
		return "low", true
	}
}

func resolvedRestBaseline(p *entity.DailyPayload, b *entity.Baseline) (float64, bool) {
	if p.RestBaselineRatio != nil {
		return *p.RestBaselineRatio, true
	}
	if b != nil && b.Source != entity.BaselineFallback && b.RestorativeRatioMean > 0 {
		return b.RestorativeRatioMean, true
	}
	return 0, false
}

func mapHRVTrend(p *entity.DailyPayload, b *entity.Baseline) (string, bool) {
	mu, hasMu := resolvedHRVMu(p, b)
	sigma, hasSigma := resolvedHRVSD(p, b)

	if p.HasHRVToday && hasMu && hasSigma && sigma > 0 {
		z := (p.HRVRMSSDToday - mu) / sigma
		switch {
		case z >= 0.5:
			return "rising", true
		case z > -0.5:
			return "stable", true
		case z > -1.5:
			return "slight_decline", true
		default:
			return "significant_decline", true
		}
	}

	if p.HasHRV3DayAvg && p.HasHRV7DayAvg && p.HRVRMSSD7DayAvg > 0 {
		delta := (p.HRVRMSSD3DayAvg - p.HRVRMSSD7DayAvg) / p.HRVRMSSD7DayAvg
		switch {
		case delta >= 0.03:
			return "rising", true
		case delta > -0.03:
			return "stable", true
		case delta > -0.08:
			return "slight_decline", true
		default:
			return "significant_decline", true
		}
	}

	return "", false
}

func resolvedHRVMu(p *entity.DailyPayload, b *entity.Baseline) (float64, bool) {
	if p.HRVBaselineMu != nil {
		return *p.HRVBaselineMu, true
	}
	if b != nil && b.HRVRMSSDMean > 0 {
		return b.HRVRMSSDMean, true
	}
	return 0, false
}

func resolvedHRVSD(p *entity.DailyPayload, b *entity.Baseline) (float64, bool) {
	if p.HRVBaselineSD != nil {
		return *p.HRVBaselineSD, true
	}
	if b != nil && b.HRVRMSSDSD > 0 {
		return b.HRVRMSSDSD, true
	}
	return 0, false
}
