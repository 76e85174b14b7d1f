package application

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"vitametron/api/domain/entity"
	"vitametron/api/domain/port"
	"vitametron/api/domain/readiness"
)

type ComputeReadinessUseCase struct {
	baselineRepo     port.BaselineRepository
	personalizedRepo port.PersonalizedCPTRepository
	resultRepo       port.DailyResultRepository
	events           port.EventPublisher
}

func NewComputeReadinessUseCase(
	baselineRepo port.BaselineRepository,
	personalizedRepo port.PersonalizedCPTRepository,
	resultRepo port.DailyResultRepository,
	events port.EventPublisher,
) *ComputeReadinessUseCase {
	return &ComputeReadinessUseCase{
		baselineRepo:     baselineRepo,
		personalizedRepo: personalizedRepo,
		resultRepo:       resultRepo,
		events:           events,
	}
}

// Compute runs the full inference pipeline for a single day's payload,
// resolving the caller's baseline/personalized CPTs from storage unless
// the payload carries explicit overrides, then persists the result so the
// next day's request can carry forward NextPreviousStateProbs.
func (uc *ComputeReadinessUseCase) Compute(ctx context.Context, p *entity.DailyPayload) (*entity.DailyResult, error) {
	if p.PreviousStateProbs == nil {
		if prev, err := uc.resultRepo.GetByDate(ctx, p.UserID, p.Date.AddDate(0, 0, -1)); err == nil && prev != nil {
			probs := prev.NextPreviousStateProbs
			p.PreviousStateProbs = &probs
		}
	}

	// Baseline and personalization lookups are soft dependencies:
	// a store error degrades to "no baseline"/"use defaults" rather than
	// failing the request.
	baseline, err := uc.baselineRepo.Get(ctx, p.UserID)
	if err != nil {
		log.Printf("baseline lookup failed for user=%s, falling back to fixed thresholds: %v", p.UserID, err)
		baseline = nil
	}

	personalized, err := uc.personalizedRepo.Get(ctx, p.UserID)
	if err != nil {
		log.Printf("personalized CPT lookup failed for user=%s, falling back to defaults: %v", p.UserID, err)
		personalized = nil
	}

	result, err := readiness.Compute(p, baseline, personalized)
	if err != nil {
		return nil, err
	}
	result.ComputedAt = time.Now().UTC()
	result.VersionID = uuid.New().String()

	// Persistence failure: the computed result is still returned to the
	// caller even if the write fails; no partial state is written.
	if err := uc.resultRepo.Upsert(ctx, result); err != nil {
		log.Printf("failed to persist daily result for user=%s date=%s: %v", p.UserID, p.Date.Format("2006-01-02"), err)
		return result, err
	}

	if uc.events != nil {
		uc.events.Publish("readiness_computed", result)
	}

	return result, nil
}

func (uc *ComputeReadinessUseCase) GetByDate(ctx context.Context, userID string, date time.Time) (*entity.DailyResult, error) {
	result, err := uc.resultRepo.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, entity.ErrNotFound
	}
	return result, nil
}

func (uc *ComputeReadinessUseCase) ListRange(ctx context.Context, userID string, from, to time.Time) ([]entity.DailyResult, error) {
	return uc.resultRepo.ListRange(ctx, userID, from, to)
}
