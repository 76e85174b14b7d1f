package readiness

import (
	"math"
	"testing"
	"time"

	"vitametron/api/domain/entity"
)

func sleepRecords(n int, hours float64, startDate time.Time) []entity.SleepHistoryRecord {
	recs := make([]entity.SleepHistoryRecord, n)
	for i := 0; i < n; i++ {
		recs[i] = entity.SleepHistoryRecord{
			Date:             startDate.AddDate(0, 0, i),
			TotalSleepHours:  hours,
			Efficiency:       0.88,
			RestorativeRatio: 0.35,
			HasRestorative:   true,
		}
	}
	return recs
}

func hrvRecords(n int, rmssd float64, startDate time.Time) []entity.HRVRecord {
	recs := make([]entity.HRVRecord, n)
	for i := 0; i < n; i++ {
		recs[i] = entity.HRVRecord{Date: startDate.AddDate(0, 0, i), RMSSD: rmssd}
	}
	return recs
}

func TestComputeBaseline_InsufficientDataYieldsDefault(t *testing.T) {
	start := mustDate("2026-06-01")
	b := ComputeBaseline("u1", sleepRecords(5, 7.5, start), hrvRecords(3, 55, start), entity.UserProfile{})
	if b.Source != entity.BaselineDefault {
		t.Errorf("Source = %v, want default", b.Source)
	}
}

func TestComputeBaseline_SufficientCleanDataYieldsPersonal(t *testing.T) {
	start := mustDate("2026-06-01")
	b := ComputeBaseline("u1", sleepRecords(35, 7.5, start), hrvRecords(45, 55, start), entity.UserProfile{})
	if b.Source != entity.BaselinePersonal {
		t.Errorf("Source = %v, want personal", b.Source)
	}
	if b.SleepHoursMean < 7.3 || b.SleepHoursMean > 7.7 {
		t.Errorf("SleepHoursMean = %v, want within [7.3,7.7]", b.SleepHoursMean)
	}
	if b.DataQuality < 0.7 {
		t.Errorf("DataQuality = %v, want >= 0.7", b.DataQuality)
	}
}

func TestComputeBaseline_OutlierDoesNotMoveTrimmedMeanMuch(t *testing.T) {
	start := mustDate("2026-06-01")
	clean := sleepRecords(35, 7.5, start)
	withOutlier := append(append([]entity.SleepHistoryRecord(nil), clean[:34]...), entity.SleepHistoryRecord{
		Date: start.AddDate(0, 0, 34), TotalSleepHours: 2, Efficiency: 0.88, RestorativeRatio: 0.35, HasRestorative: true,
	})

	base := ComputeBaseline("u1", clean, hrvRecords(45, 55, start), entity.UserProfile{})
	outlier := ComputeBaseline("u1", withOutlier, hrvRecords(45, 55, start), entity.UserProfile{})

	if math.Abs(base.SleepHoursMean-outlier.SleepHoursMean) > 0.1 {
		t.Errorf("single extreme outlier moved sleep mean by %v, want <= 0.1", math.Abs(base.SleepHoursMean-outlier.SleepHoursMean))
	}
}

func TestComputeBaseline_HRVSDFlooredAt5(t *testing.T) {
	start := mustDate("2026-06-01")
	// identical RMSSD values -> sd would compute to 0 without the floor.
	b := ComputeBaseline("u1", sleepRecords(35, 7.5, start), hrvRecords(45, 55, start), entity.UserProfile{})
	if b.HRVRMSSDSD < 5.0 {
		t.Errorf("HRVRMSSDSD = %v, want >= 5.0", b.HRVRMSSDSD)
	}
}

func TestUpgradeEligible(t *testing.T) {
	eligible := entity.Baseline{Source: entity.BaselineDefault, SleepSampleCount: 31, HRVSampleCount: 41, DataQuality: 0.8}
	if !UpgradeEligible(eligible) {
		t.Errorf("expected eligible baseline to upgrade")
	}
	notEnough := entity.Baseline{Source: entity.BaselineDefault, SleepSampleCount: 10, HRVSampleCount: 41, DataQuality: 0.8}
	if UpgradeEligible(notEnough) {
		t.Errorf("expected insufficient sleep samples to block upgrade")
	}
}

func TestIncrementalUpdate_BlendsRecentWindowNotCohortDefault(t *testing.T) {
	start := mustDate("2026-07-01")
	old := entity.Baseline{UserID: "u1", SleepHoursMean: 6.5, SleepEfficiencyMean: 0.80, RestorativeRatioMean: 0.30, HRVRMSSDMean: 45, HRVRMSSDSD: 7, Source: entity.BaselinePersonal}

	// A short 7-day window consistently well above the old mean: a genuine
	// recompute should pull the blend up toward it, not toward the 7.5h/40ms
	// cohort defaults a ComputeBaseline-gated recompute would fall back to.
	recentSleep := sleepRecords(7, 8.5, start)
	recentHRV := hrvRecords(7, 65, start)

	updated := IncrementalUpdate(old, recentSleep, recentHRV, start.AddDate(0, 0, 7))

	wantSleep := 0.7*6.5 + 0.3*8.5
	if math.Abs(updated.SleepHoursMean-wantSleep) > 0.01 {
		t.Errorf("SleepHoursMean = %v, want %v (blended against the recent window, not a cohort default)", updated.SleepHoursMean, wantSleep)
	}
	wantHRV := 0.7*45 + 0.3*65
	if math.Abs(updated.HRVRMSSDMean-wantHRV) > 0.01 {
		t.Errorf("HRVRMSSDMean = %v, want %v", updated.HRVRMSSDMean, wantHRV)
	}
	if updated.HRVRMSSDSD < 5.0 {
		t.Errorf("HRVRMSSDSD = %v, want >= 5.0 floor", updated.HRVRMSSDSD)
	}
}

func TestDecideRefresh(t *testing.T) {
	now := mustDate("2026-07-29")
	b := entity.Baseline{LastFullAt: now.AddDate(0, 0, -40), LastIncrementalAt: now.AddDate(0, 0, -1), DataQuality: 0.9}
	if DecideRefresh(b, now, 10) != FullRefresh {
		t.Errorf("expected FullRefresh when 30+ days since last full update")
	}

	b2 := entity.Baseline{LastFullAt: now.AddDate(0, 0, -5), LastIncrementalAt: now.AddDate(0, 0, -10), DataQuality: 0.9}
	if DecideRefresh(b2, now, 10) != IncrementalRefresh {
		t.Errorf("expected IncrementalRefresh when 7+ days since last incremental update")
	}

	b3 := entity.Baseline{LastFullAt: now.AddDate(0, 0, -5), LastIncrementalAt: now.AddDate(0, 0, -10), DataQuality: 0.9}
	if DecideRefresh(b3, now, 2) != NoRefresh {
		t.Errorf("expected NoRefresh when fewer than 5 new days are available")
	}
}
