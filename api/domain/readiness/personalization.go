package readiness

import "vitametron/api/domain/entity"

// ResolveEmissionCPTs returns the per-user emission CPT overrides to use for
// this request, falling through to the global defaults for any variable the
// personalized record doesn't cover. A nil personalized record (no
// override loaded, or a PersonalizationLoadError upstream) yields an empty
// map, which ComputePosterior treats as "use defaults" for every variable.
func ResolveEmissionCPTs(personalized *entity.PersonalizedCPT) map[string]entity.CPT {
	if personalized == nil || personalized.Emission == nil {
		return nil
	}
	return personalized.Emission
}

// ResolveWeights returns per-variable posterior weights, defaulting to
// EvidenceWeights for anything not explicitly overridden. Personalization
// only ever overrides emission CPTs in the storage contract, so this is
// currently a pass-through kept for symmetry and future per-user weight
// tuning.
func ResolveWeights() map[string]float64 {
	return EvidenceWeights
}
