package port

import (
	"context"
	"time"

	"vitametron/api/domain/entity"
)

// BaselineRepository persists each user's rolling sleep/HRV baseline,
// the reference point the readiness engine's mapping stage measures
// today's evidence against.
type BaselineRepository interface {
	Get(ctx context.Context, userID string) (*entity.Baseline, error)
	Save(ctx context.Context, b *entity.Baseline) error
}

// PersonalizedCPTRepository persists per-user emission tables, learned
// over time as an alternative to the population-default CPTs in cpt.go.
type PersonalizedCPTRepository interface {
	Get(ctx context.Context, userID string) (*entity.PersonalizedCPT, error)
	Save(ctx context.Context, cpt *entity.PersonalizedCPT) error
}

// DailyResultRepository persists each day's computed readiness result,
// including the posterior distribution carried forward as tomorrow's
// previous_state_probs.
type DailyResultRepository interface {
	Upsert(ctx context.Context, result *entity.DailyResult) error
	GetByDate(ctx context.Context, userID string, date time.Time) (*entity.DailyResult, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]entity.DailyResult, error)
}

// EventPublisher broadcasts domain events to in-process subscribers,
// e.g. notifying a cache layer that a user's baseline changed.
type EventPublisher interface {
	Publish(event string, payload interface{})
}
