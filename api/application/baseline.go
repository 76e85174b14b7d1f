package application

import (
	"context"
	"time"

	"vitametron/api/domain/entity"
	"vitametron/api/domain/port"
	"vitametron/api/domain/readiness"
)

const (
	fullWindowDays   = 30
	recentWindowDays = 7
)

// BaselineUseCase computes and refreshes a user's personal sleep/HRV
// baseline and decides, on each sync, whether enough new data has
// accumulated to warrant an incremental or full recompute.
type BaselineUseCase struct {
	baselineRepo port.BaselineRepository
	summaryRepo  port.DailySummaryRepository
	events       port.EventPublisher
}

func NewBaselineUseCase(baselineRepo port.BaselineRepository, summaryRepo port.DailySummaryRepository, events port.EventPublisher) *BaselineUseCase {
	return &BaselineUseCase{baselineRepo: baselineRepo, summaryRepo: summaryRepo, events: events}
}

// loadHistory bridges the synced DailySummary log into the readiness-shaped
// history the baseline calculator consumes, looking back days from now.
func (uc *BaselineUseCase) loadHistory(ctx context.Context, now time.Time, days int) ([]entity.SleepHistoryRecord, []entity.HRVRecord, error) {
	if uc.summaryRepo == nil {
		return nil, nil, nil
	}
	summaries, err := uc.summaryRepo.ListRange(ctx, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, nil, err
	}
	sleep := make([]entity.SleepHistoryRecord, 0, len(summaries))
	hrv := make([]entity.HRVRecord, 0, len(summaries))
	for _, s := range summaries {
		if r, ok := entity.SleepHistoryFromSummary(s); ok {
			sleep = append(sleep, r)
		}
		if r, ok := entity.HRVRecordFromSummary(s); ok {
			hrv = append(hrv, r)
		}
	}
	return sleep, hrv, nil
}

func (uc *BaselineUseCase) Get(ctx context.Context, userID string) (*entity.Baseline, error) {
	b, err := uc.baselineRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, entity.ErrNotFound
	}
	return b, nil
}

// Bootstrap computes an initial baseline from a user's historical sleep
// and HRV records, falling back to a cold-start profile when there is
// not yet enough data.
func (uc *BaselineUseCase) Bootstrap(ctx context.Context, userID string, sleep []entity.SleepHistoryRecord, hrv []entity.HRVRecord, profile entity.UserProfile) (*entity.Baseline, error) {
	b := readiness.ComputeBaseline(userID, sleep, hrv, profile)
	if err := uc.baselineRepo.Save(ctx, &b); err != nil {
		return nil, err
	}
	if uc.events != nil {
		uc.events.Publish("baseline_updated", &b)
	}
	return &b, nil
}

// GetOrCompute returns the user's stored baseline, loading the synced
// history and computing/persisting one on a cache miss (cold start).
func (uc *BaselineUseCase) GetOrCompute(ctx context.Context, userID string, profile entity.UserProfile, now time.Time) (*entity.Baseline, error) {
	existing, err := uc.baselineRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	sleep, hrv, err := uc.loadHistory(ctx, now, fullWindowDays)
	if err != nil {
		return nil, err
	}
	return uc.Bootstrap(ctx, userID, sleep, hrv, profile)
}

// Update recomputes a user's baseline from an explicitly supplied sleep/HRV
// history and persists it, preserving the incremental-refresh timestamp so
// the next scheduled sync still sees a consistent refresh cadence.
func (uc *BaselineUseCase) Update(ctx context.Context, userID string, sleep []entity.SleepHistoryRecord, hrv []entity.HRVRecord, profile entity.UserProfile, now time.Time) (*entity.Baseline, error) {
	existing, err := uc.baselineRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	b := readiness.ComputeBaseline(userID, sleep, hrv, profile)
	if existing != nil {
		b.LastIncrementalAt = existing.LastIncrementalAt
	}
	b.LastFullAt = now
	if err := uc.baselineRepo.Save(ctx, &b); err != nil {
		return nil, err
	}
	if uc.events != nil {
		uc.events.Publish("baseline_updated", &b)
	}
	return &b, nil
}

// Refresh loads the synced history and decides, based on the current
// baseline's age and the number of new days available, whether to leave the
// baseline alone, blend in recent data incrementally, or fully recompute it.
// This is the bridge invoked after each biometrics sync.
func (uc *BaselineUseCase) Refresh(ctx context.Context, userID string, profile entity.UserProfile, now time.Time) (*entity.Baseline, error) {
	current, err := uc.baselineRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		allSleep, allHRV, err := uc.loadHistory(ctx, now, fullWindowDays)
		if err != nil {
			return nil, err
		}
		return uc.Bootstrap(ctx, userID, allSleep, allHRV, profile)
	}

	recentSleep, recentHRV, err := uc.loadHistory(ctx, now, recentWindowDays)
	if err != nil {
		return nil, err
	}
	policy := readiness.DecideRefresh(*current, now, len(recentSleep))
	var updated entity.Baseline
	switch policy {
	case readiness.NoRefresh:
		return current, nil
	case readiness.IncrementalRefresh:
		updated = readiness.IncrementalUpdate(*current, recentSleep, recentHRV, now)
	case readiness.FullRefresh:
		allSleep, allHRV, err := uc.loadHistory(ctx, now, fullWindowDays)
		if err != nil {
			return nil, err
		}
		updated = readiness.FullUpdate(userID, allSleep, allHRV, profile, now)
	}

	if err := uc.baselineRepo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	if uc.events != nil {
		uc.events.Publish("baseline_updated", &updated)
	}
	return &updated, nil
}
