package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vitametron/api/domain/entity"
)

type ConditionRepo struct {
	pool *pgxpool.Pool
}

func NewConditionRepo(pool *pgxpool.Pool) *ConditionRepo {
	return &ConditionRepo{pool: pool}
}

func (r *ConditionRepo) Create(ctx context.Context, log *entity.ConditionLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO condition_logs (
			logged_at, fatigue, soreness, stress, sleep,
			alcohol_consumed, late_caffeine, screen_before_bed, late_meal, is_sick, is_injured,
			note, tags
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		log.LoggedAt, log.Fatigue, log.Soreness, log.Stress, log.Sleep,
		log.AlcoholConsumed, log.LateCaffeine, log.ScreenBeforeBed, log.LateMeal, log.IsSick, log.IsInjured,
		log.Note, log.Tags)
	return err
}

func (r *ConditionRepo) GetByID(ctx context.Context, id int64) (*entity.ConditionLog, error) {
	var l entity.ConditionLog
	err := r.pool.QueryRow(ctx,
		`SELECT id, logged_at, fatigue, soreness, stress, sleep,
		        alcohol_consumed, late_caffeine, screen_before_bed, late_meal, is_sick, is_injured,
		        note, tags, created_at
		 FROM condition_logs WHERE id = $1`, id).
		Scan(&l.ID, &l.LoggedAt, &l.Fatigue, &l.Soreness, &l.Stress, &l.Sleep,
			&l.AlcoholConsumed, &l.LateCaffeine, &l.ScreenBeforeBed, &l.LateMeal, &l.IsSick, &l.IsInjured,
			&l.Note, &l.Tags, &l.CreatedAt)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	return &l, nil
}

func (r *ConditionRepo) List(ctx context.Context, filter entity.ConditionFilter) (*entity.ConditionListResult, error) {
	query := `SELECT id, logged_at, fatigue, soreness, stress, sleep,
	                 alcohol_consumed, late_caffeine, screen_before_bed, late_meal, is_sick, is_injured,
	                 note, tags, created_at, COUNT(*) OVER() AS total
	          FROM condition_logs`
	var args []interface{}
	argIdx := 1

	where := ""
	if !filter.From.IsZero() && !filter.To.IsZero() {
		where += fmt.Sprintf(" logged_at BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, filter.From, filter.To)
		argIdx += 2
	}
	if filter.Tag != "" {
		if where != "" {
			where += " AND"
		}
		where += fmt.Sprintf(" tags @> ARRAY[$%d]::text[]", argIdx)
		args = append(args, filter.Tag)
		argIdx++
	}
	if where != "" {
		query += " WHERE" + where
	}

	sortField := "logged_at"
	switch filter.SortField {
	case "fatigue", "soreness", "stress", "sleep", "created_at":
		sortField = filter.SortField
	}
	sortDir := "DESC"
	if filter.SortDir == "asc" || filter.SortDir == "ASC" {
		sortDir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortField, sortDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []entity.ConditionLog
	var total int
	for rows.Next() {
		var l entity.ConditionLog
		if err := rows.Scan(&l.ID, &l.LoggedAt, &l.Fatigue, &l.Soreness, &l.Stress, &l.Sleep,
			&l.AlcoholConsumed, &l.LateCaffeine, &l.ScreenBeforeBed, &l.LateMeal, &l.IsSick, &l.IsInjured,
			&l.Note, &l.Tags, &l.CreatedAt, &total); err != nil {
			return nil, err
		}
		if l.Tags == nil {
			l.Tags = []string{}
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &entity.ConditionListResult{Items: logs, Total: total}, nil
}

func (r *ConditionRepo) Update(ctx context.Context, log *entity.ConditionLog) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE condition_logs SET
			fatigue=$2, soreness=$3, stress=$4, sleep=$5,
			alcohol_consumed=$6, late_caffeine=$7, screen_before_bed=$8, late_meal=$9, is_sick=$10, is_injured=$11,
			note=$12, tags=$13, logged_at=$14
		 WHERE id=$1`,
		log.ID, log.Fatigue, log.Soreness, log.Stress, log.Sleep,
		log.AlcoholConsumed, log.LateCaffeine, log.ScreenBeforeBed, log.LateMeal, log.IsSick, log.IsInjured,
		log.Note, log.Tags, log.LoggedAt)
	return err
}

func (r *ConditionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM condition_logs WHERE id = $1`, id)
	return err
}

func (r *ConditionRepo) GetTags(ctx context.Context) ([]entity.TagCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT unnest(tags) AS tag, COUNT(*) AS count FROM condition_logs GROUP BY tag ORDER BY count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []entity.TagCount
	for rows.Next() {
		var tc entity.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

func (r *ConditionRepo) GetSummary(ctx context.Context, from, to time.Time) (*entity.ConditionSummary, error) {
	var s entity.ConditionSummary
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(AVG(fatigue), 0), COALESCE(MIN(fatigue), 0), COALESCE(MAX(fatigue), 0),
		        COALESCE(AVG(soreness), 0), COALESCE(MIN(soreness), 0), COALESCE(MAX(soreness), 0),
		        COALESCE(AVG(stress), 0), COALESCE(MIN(stress), 0), COALESCE(MAX(stress), 0),
		        COALESCE(AVG(sleep), 0), COALESCE(MIN(sleep), 0), COALESCE(MAX(sleep), 0)
		 FROM condition_logs WHERE logged_at BETWEEN $1 AND $2`, from, to).
		Scan(&s.TotalCount,
			&s.FatigueAvg, &s.FatigueMin, &s.FatigueMax,
			&s.SorenessAvg, &s.SorenessMin, &s.SorenessMax,
			&s.StressAvg, &s.StressMin, &s.StressMax,
			&s.SleepAvg, &s.SleepMin, &s.SleepMax)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
