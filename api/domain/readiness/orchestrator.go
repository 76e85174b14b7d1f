package readiness

import "vitametron/api/domain/entity"

// Compute is the single pipeline entry point: raw payload ->
// mapping (+baseline injection) -> prior assembly -> evidence fusion ->
// final posterior -> score + next-day seed. It is total: any payload that
// passes Validate yields a DailyResult, with soft failures (missing
// evidence, missing baseline) degrading gracefully rather than erroring.
func Compute(p *entity.DailyPayload, baseline *entity.Baseline, personalized *entity.PersonalizedCPT) (*entity.DailyResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	previous := entity.DefaultPreviousStateProbs()
	if p.PreviousStateProbs != nil {
		previous = *p.PreviousStateProbs
		previous.Normalize()
	}

	ev := Map(p, baseline)

	prior, priorHistory := ComputePrior(previous, p)

	cpts := ResolveEmissionCPTs(personalized)
	weights := ResolveWeights()
	posterior, evidenceHistory := ComputePosterior(prior, ev, p, weights, cpts)

	history := append(priorHistory, evidenceHistory...)

	return &entity.DailyResult{
		UserID:                 p.UserID,
		Date:                   p.Date,
		FinalScore:             posterior.Score(),
		Diagnosis:              posterior.Diagnosis(),
		Prior:                  prior,
		Posterior:              posterior,
		EvidencePool:           ev,
		UpdateHistory:          history,
		NextPreviousStateProbs: posterior,
	}, nil
}
