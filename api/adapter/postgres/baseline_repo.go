package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitametron/api/domain/entity"
)

type BaselineRepo struct {
	pool *pgxpool.Pool
}

func NewBaselineRepo(pool *pgxpool.Pool) *BaselineRepo {
	return &BaselineRepo{pool: pool}
}

func (r *BaselineRepo) Get(ctx context.Context, userID string) (*entity.Baseline, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT user_id, sleep_hours_mean, sleep_efficiency_mean, restorative_ratio_mean,
			hrv_rmssd_mean, hrv_rmssd_sd, data_quality, source,
			sleep_sample_count, hrv_sample_count, last_incremental_at, last_full_at, version_id
		 FROM user_baselines WHERE user_id = $1`, userID)

	var b entity.Baseline
	err := row.Scan(&b.UserID, &b.SleepHoursMean, &b.SleepEfficiencyMean, &b.RestorativeRatioMean,
		&b.HRVRMSSDMean, &b.HRVRMSSDSD, &b.DataQuality, &b.Source,
		&b.SleepSampleCount, &b.HRVSampleCount, &b.LastIncrementalAt, &b.LastFullAt, &b.VersionID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BaselineRepo) Save(ctx context.Context, b *entity.Baseline) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_baselines (
			user_id, sleep_hours_mean, sleep_efficiency_mean, restorative_ratio_mean,
			hrv_rmssd_mean, hrv_rmssd_sd, data_quality, source,
			sleep_sample_count, hrv_sample_count, last_incremental_at, last_full_at, version_id
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 ON CONFLICT (user_id) DO UPDATE SET
			sleep_hours_mean=$2, sleep_efficiency_mean=$3, restorative_ratio_mean=$4,
			hrv_rmssd_mean=$5, hrv_rmssd_sd=$6, data_quality=$7, source=$8,
			sleep_sample_count=$9, hrv_sample_count=$10, last_incremental_at=$11, last_full_at=$12, version_id=$13`,
		b.UserID, b.SleepHoursMean, b.SleepEfficiencyMean, b.RestorativeRatioMean,
		b.HRVRMSSDMean, b.HRVRMSSDSD, b.DataQuality, b.Source,
		b.SleepSampleCount, b.HRVSampleCount, b.LastIncrementalAt, b.LastFullAt, b.VersionID)
	return err
}
