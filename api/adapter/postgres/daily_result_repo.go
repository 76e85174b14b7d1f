package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitametron/api/domain/entity"
)

type DailyResultRepo struct {
	pool *pgxpool.Pool
}

func NewDailyResultRepo(pool *pgxpool.Pool) *DailyResultRepo {
	return &DailyResultRepo{pool: pool}
}

func (r *DailyResultRepo) Upsert(ctx context.Context, result *entity.DailyResult) error {
	evidenceJSON, err := json.Marshal(result.EvidencePool)
	if err != nil {
		return fmt.Errorf("marshal evidence_pool: %w", err)
	}
	historyJSON, err := json.Marshal(result.UpdateHistory)
	if err != nil {
		return fmt.Errorf("marshal update_history: %w", err)
	}
	priorJSON, err := json.Marshal(result.Prior)
	if err != nil {
		return fmt.Errorf("marshal prior: %w", err)
	}
	posteriorJSON, err := json.Marshal(result.Posterior)
	if err != nil {
		return fmt.Errorf("marshal posterior: %w", err)
	}
	nextJSON, err := json.Marshal(result.NextPreviousStateProbs)
	if err != nil {
		return fmt.Errorf("marshal next_previous_state_probs: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO daily_results (
			user_id, date, final_score, diagnosis, prior, posterior,
			evidence_pool, update_history, next_previous_state_probs, version_id, computed_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			final_score=$3, diagnosis=$4, prior=$5, posterior=$6,
			evidence_pool=$7, update_history=$8, next_previous_state_probs=$9, version_id=$10, computed_at=$11`,
		result.UserID, result.Date, result.FinalScore, result.Diagnosis.String(), priorJSON, posteriorJSON,
		evidenceJSON, historyJSON, nextJSON, result.VersionID, result.ComputedAt)
	return err
}

func (r *DailyResultRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*entity.DailyResult, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT user_id, date, final_score, diagnosis, prior, posterior,
			evidence_pool, update_history, next_previous_state_probs, version_id, computed_at
		 FROM daily_results WHERE user_id = $1 AND date = $2`, userID, date)

	result, err := scanDailyResult(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return result, err
}

func (r *DailyResultRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]entity.DailyResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, date, final_score, diagnosis, prior, posterior,
			evidence_pool, update_history, next_previous_state_probs, version_id, computed_at
		 FROM daily_results WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date ASC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.DailyResult
	for rows.Next() {
		result, err := scanDailyResultRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, rows.Err()
}

func scanDailyResult(row pgx.Row) (*entity.DailyResult, error) {
	var result entity.DailyResult
	var diagnosis string
	var priorJSON, posteriorJSON, evidenceJSON, historyJSON, nextJSON []byte
	err := row.Scan(&result.UserID, &result.Date, &result.FinalScore, &diagnosis, &priorJSON, &posteriorJSON,
		&evidenceJSON, &historyJSON, &nextJSON, &result.VersionID, &result.ComputedAt)
	if err != nil {
		return nil, err
	}
	return unmarshalDailyResult(&result, diagnosis, priorJSON, posteriorJSON, evidenceJSON, historyJSON, nextJSON)
}

func scanDailyResultRows(rows pgx.Rows) (*entity.DailyResult, error) {
	var result entity.DailyResult
	var diagnosis string
	var priorJSON, posteriorJSON, evidenceJSON, historyJSON, nextJSON []byte
	err := rows.Scan(&result.UserID, &result.Date, &result.FinalScore, &diagnosis, &priorJSON, &posteriorJSON,
		&evidenceJSON, &historyJSON, &nextJSON, &result.VersionID, &result.ComputedAt)
	if err != nil {
		return nil, err
	}
	return unmarshalDailyResult(&result, diagnosis, priorJSON, posteriorJSON, evidenceJSON, historyJSON, nextJSON)
}

func unmarshalDailyResult(result *entity.DailyResult, diagnosis string, priorJSON, posteriorJSON, evidenceJSON, historyJSON, nextJSON []byte) (*entity.DailyResult, error) {
	for _, s := range entity.States {
		if s.String() == diagnosis {
			result.Diagnosis = s
			break
		}
	}
	if err := json.Unmarshal(priorJSON, &result.Prior); err != nil {
		return nil, fmt.Errorf("unmarshal prior: %w", err)
	}
	if err := json.Unmarshal(posteriorJSON, &result.Posterior); err != nil {
		return nil, fmt.Errorf("unmarshal posterior: %w", err)
	}
	if evidenceJSON != nil {
		if err := json.Unmarshal(evidenceJSON, &result.EvidencePool); err != nil {
			return nil, fmt.Errorf("unmarshal evidence_pool: %w", err)
		}
	}
	if historyJSON != nil {
		if err := json.Unmarshal(historyJSON, &result.UpdateHistory); err != nil {
			return nil, fmt.Errorf("unmarshal update_history: %w", err)
		}
	}
	if err := json.Unmarshal(nextJSON, &result.NextPreviousStateProbs); err != nil {
		return nil, fmt.Errorf("unmarshal next_previous_state_probs: %w", err)
	}
	return result, nil
}
