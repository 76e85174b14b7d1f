package readiness

import "vitametron/api/domain/entity"

const (
	perSessionCap = 40.0
	perDayCap     = 60.0
)

// sessionAU resolves the priority order: explicit au, then rpe*duration,
// then the label->AU map, else 0.
func sessionAU(s entity.ConsumptionSession) float64 {
	if s.HasAU && s.AU > 0 {
		return s.AU
	}
	if s.HasRPE && s.HasDuration {
		return s.RPE * s.DurationMinutes
	}
	if s.HasLabel {
		if au, ok := LabelToAU[s.Label]; ok {
			return au
		}
	}
	return 0
}

// deductionForAU is g(AU): a non-decreasing, saturating piecewise-linear
// function, flat at 40 for AU beyond the 900 near-asymptote.
func deductionForAU(au float64) float64 {
	switch {
	case au <= 0:
		return 0
	case au <= 150:
		return lerp(au, 0, 150, 0, 5)
	case au <= 300:
		return lerp(au, 150, 300, 5, 12)
	case au <= 500:
		return lerp(au, 300, 500, 12, 25)
	case au <= 900:
		return lerp(au, 500, 900, 25, 40)
	default:
		return 40
	}
}

func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// ComputeConsumption is the within-day consumption entry point: per-session AU, per-session
// deduction capped at 40, summed and capped at 60, then subtracted from the
// immutable base_score. Re-running on the same session list is idempotent.
func ComputeConsumption(baseScore int, sessions []entity.ConsumptionSession) entity.ConsumptionResult {
	return ComputeConsumptionWithParams(baseScore, sessions, entity.ConsumptionParams{})
}

// ComputeConsumptionWithParams is ComputeConsumption with the per-session and
// per-day caps overridable by params (nil fields keep the package default).
func ComputeConsumptionWithParams(baseScore int, sessions []entity.ConsumptionSession, params entity.ConsumptionParams) entity.ConsumptionResult {
	sessionCap := perSessionCap
	if params.PerSessionCap != nil {
		sessionCap = *params.PerSessionCap
	}
	dayCap := perDayCap
	if params.PerDayCap != nil {
		dayCap = *params.PerDayCap
	}

	var result entity.ConsumptionResult
	total := 0.0
	var caps []string

	for _, s := range sessions {
		au := sessionAU(s)
		delta := deductionForAU(au)
		if delta > sessionCap {
			delta = sessionCap
			caps = append(caps, "per_session")
		}
		result.Sessions = append(result.Sessions, entity.SessionConsumption{AUUsed: au, DeltaConsumption: delta})
		total += delta
	}

	if total > dayCap {
		total = dayCap
		caps = append(caps, "per_day")
	}

	result.ConsumptionScore = total
	result.CapsApplied = caps
	display := baseScore - int(total+0.5)
	if display < 0 {
		display = 0
	}
	result.DisplayReadiness = display
	return result
}
