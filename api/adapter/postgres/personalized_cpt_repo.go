package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitametron/api/domain/entity"
)

type PersonalizedCPTRepo struct {
	pool *pgxpool.Pool
}

func NewPersonalizedCPTRepo(pool *pgxpool.Pool) *PersonalizedCPTRepo {
	return &PersonalizedCPTRepo{pool: pool}
}

func (r *PersonalizedCPTRepo) Get(ctx context.Context, userID string) (*entity.PersonalizedCPT, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT user_id, model_type, emission, version_id, updated_at
		 FROM personalized_cpts WHERE user_id = $1`, userID)

	var cpt entity.PersonalizedCPT
	var emissionJSON []byte
	err := row.Scan(&cpt.UserID, &cpt.ModelType, &emissionJSON, &cpt.VersionID, &cpt.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if emissionJSON != nil {
		if err := json.Unmarshal(emissionJSON, &cpt.Emission); err != nil {
			return nil, fmt.Errorf("unmarshal emission: %w", err)
		}
	}
	return &cpt, nil
}

func (r *PersonalizedCPTRepo) Save(ctx context.Context, cpt *entity.PersonalizedCPT) error {
	emissionJSON, err := json.Marshal(cpt.Emission)
	if err != nil {
		return fmt.Errorf("marshal emission: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO personalized_cpts (user_id, model_type, emission, version_id, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id) DO UPDATE SET
			model_type=$2, emission=$3, version_id=$4, updated_at=$5`,
		cpt.UserID, cpt.ModelType, emissionJSON, cpt.VersionID, cpt.UpdatedAt)
	return err
}
