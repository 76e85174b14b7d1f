package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitametron/api/domain/entity"
	"vitametron/api/mocks"
)

func readinessPayload(userID string, date time.Time) *entity.DailyPayload {
	return &entity.DailyPayload{
		UserID: userID,
		Date:   date,
		Gender: "male",
		Hooper: entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3},
	}
}

func TestComputeReadiness_BaselineLookupErrorFallsBackToDefaults(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	var upserted *entity.DailyResult

	uc := NewComputeReadinessUseCase(
		&mocks.MockBaselineRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.Baseline, error) {
				return nil, errors.New("connection refused")
			},
		},
		&mocks.MockPersonalizedCPTRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.PersonalizedCPT, error) {
				return nil, nil
			},
		},
		&mocks.MockDailyResultRepository{
			GetByDateFunc: func(_ context.Context, _ string, _ time.Time) (*entity.DailyResult, error) {
				return nil, nil
			},
			UpsertFunc: func(_ context.Context, r *entity.DailyResult) error {
				upserted = r
				return nil
			},
		},
		&mocks.MockEventPublisher{},
	)

	result, err := uc.Compute(context.Background(), readinessPayload("u1", date))
	if err != nil {
		t.Fatalf("Compute returned error despite a soft baseline failure: %v", err)
	}
	if result == nil {
		t.Fatal("Compute returned nil result")
	}
	if upserted == nil {
		t.Fatal("expected result to be persisted")
	}
}

func TestComputeReadiness_PersonalizationLookupErrorFallsBackToDefaults(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)

	uc := NewComputeReadinessUseCase(
		&mocks.MockBaselineRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.Baseline, error) {
				return nil, nil
			},
		},
		&mocks.MockPersonalizedCPTRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.PersonalizedCPT, error) {
				return nil, errors.New("cache read failed")
			},
		},
		&mocks.MockDailyResultRepository{
			GetByDateFunc: func(_ context.Context, _ string, _ time.Time) (*entity.DailyResult, error) {
				return nil, nil
			},
			UpsertFunc: func(_ context.Context, _ *entity.DailyResult) error {
				return nil
			},
		},
		nil,
	)

	result, err := uc.Compute(context.Background(), readinessPayload("u1", date))
	if err != nil {
		t.Fatalf("Compute returned error despite a soft personalization failure: %v", err)
	}
	if result == nil {
		t.Fatal("Compute returned nil result")
	}
}

func TestComputeReadiness_PersistenceErrorStillReturnsResult(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)

	uc := NewComputeReadinessUseCase(
		&mocks.MockBaselineRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.Baseline, error) { return nil, nil },
		},
		&mocks.MockPersonalizedCPTRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.PersonalizedCPT, error) { return nil, nil },
		},
		&mocks.MockDailyResultRepository{
			GetByDateFunc: func(_ context.Context, _ string, _ time.Time) (*entity.DailyResult, error) {
				return nil, nil
			},
			UpsertFunc: func(_ context.Context, _ *entity.DailyResult) error {
				return errors.New("write timeout")
			},
		},
		&mocks.MockEventPublisher{},
	)

	result, err := uc.Compute(context.Background(), readinessPayload("u1", date))
	if err == nil {
		t.Fatal("expected the persistence error to be surfaced to the caller")
	}
	if result == nil {
		t.Fatal("expected a full DailyResult even when persistence fails")
	}
}

func TestComputeReadiness_InvalidPayloadNeverPersisted(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	var upsertCalled bool

	uc := NewComputeReadinessUseCase(
		&mocks.MockBaselineRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.Baseline, error) { return nil, nil },
		},
		&mocks.MockPersonalizedCPTRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.PersonalizedCPT, error) { return nil, nil },
		},
		&mocks.MockDailyResultRepository{
			GetByDateFunc: func(_ context.Context, _ string, _ time.Time) (*entity.DailyResult, error) {
				return nil, nil
			},
			UpsertFunc: func(_ context.Context, _ *entity.DailyResult) error {
				upsertCalled = true
				return nil
			},
		},
		nil,
	)

	payload := readinessPayload("", date) // missing user_id -> InvalidPayload
	result, err := uc.Compute(context.Background(), payload)
	if err == nil {
		t.Fatal("expected InvalidPayload error for missing user_id")
	}
	var invalid *entity.InvalidPayloadError
	if !errors.As(err, &invalid) {
		t.Errorf("expected *entity.InvalidPayloadError, got %T", err)
	}
	if result != nil {
		t.Error("expected nil result for an invalid payload")
	}
	if upsertCalled {
		t.Error("invalid payload must never be persisted")
	}
}

func TestComputeReadiness_CarriesYesterdaysSeedForward(t *testing.T) {
	today := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	seed := entity.StateDistribution{Peak: 0.05, WellAdapted: 0.25, FOR: 0.40, AcuteFatigue: 0.20, NFOR: 0.08, OTS: 0.02}

	uc := NewComputeReadinessUseCase(
		&mocks.MockBaselineRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.Baseline, error) { return nil, nil },
		},
		&mocks.MockPersonalizedCPTRepository{
			GetFunc: func(_ context.Context, _ string) (*entity.PersonalizedCPT, error) { return nil, nil },
		},
		&mocks.MockDailyResultRepository{
			GetByDateFunc: func(_ context.Context, _ string, date time.Time) (*entity.DailyResult, error) {
				if date.Equal(yesterday) {
					return &entity.DailyResult{NextPreviousStateProbs: seed}, nil
				}
				return nil, nil
			},
			UpsertFunc: func(_ context.Context, _ *entity.DailyResult) error { return nil },
		},
		nil,
	)

	payload := readinessPayload("u1", today)
	result, err := uc.Compute(context.Background(), payload)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if payload.PreviousStateProbs == nil {
		t.Fatal("expected PreviousStateProbs to be populated from yesterday's stored result")
	}
	if result.FinalScore < 0 || result.FinalScore > 100 {
		t.Errorf("final_score out of range: %d", result.FinalScore)
	}
}
