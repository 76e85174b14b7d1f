package application

import (
	"context"
	"time"

	"vitametron/api/domain/entity"
	"vitametron/api/domain/port"
	"vitametron/api/domain/readiness"
)

// ComputeConsumptionUseCase applies the intraday training-consumption
// model against a day's already-computed base readiness score.
type ComputeConsumptionUseCase struct {
	resultRepo port.DailyResultRepository
}

func NewComputeConsumptionUseCase(resultRepo port.DailyResultRepository) *ComputeConsumptionUseCase {
	return &ComputeConsumptionUseCase{resultRepo: resultRepo}
}

// Compute applies the consumption model against baseScore if supplied;
// otherwise it falls back to the day's already-computed, persisted result.
func (uc *ComputeConsumptionUseCase) Compute(ctx context.Context, userID string, date time.Time, sessions []entity.ConsumptionSession, baseScore *int, params entity.ConsumptionParams) (*entity.ConsumptionResult, error) {
	score := 0
	if baseScore != nil {
		score = *baseScore
	} else {
		result, err := uc.resultRepo.GetByDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, entity.ErrNotFound
		}
		score = result.FinalScore
	}

	consumption := readiness.ComputeConsumptionWithParams(score, sessions, params)
	return &consumption, nil
}
