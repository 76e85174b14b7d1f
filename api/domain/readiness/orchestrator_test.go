package readiness

import (
	"math"
	"testing"
	"time"

	"vitametron/api/domain/entity"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func basePayload() *entity.DailyPayload {
	return &entity.DailyPayload{
		UserID: "u1",
		Date:   mustDate("2026-07-29"),
		Gender: "male",
		Hooper: entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3},
	}
}

func sumDistribution(d entity.StateDistribution) float64 {
	sum := 0.0
	for _, p := range d {
		sum += p
	}
	return sum
}

func TestCompute_NormalizesAndSumsToOne(t *testing.T) {
	p := basePayload()
	p.HasSleepData = true
	p.TotalSleepMinutes = 450
	p.InBedMinutes = 500
	p.DeepSleepMinutes = 90
	p.REMSleepMinutes = 80
	p.HasHRVToday = true
	p.HRVRMSSDToday = 60
	hrvMu, hrvSD := 58.0, 6.0
	p.HRVBaselineMu = &hrvMu
	p.HRVBaselineSD = &hrvSD

	result, err := Compute(p, nil, nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if math.Abs(sumDistribution(result.Posterior)-1.0) > 1e-6 {
		t.Errorf("posterior sums to %v, want ~1.0", sumDistribution(result.Posterior))
	}
	if result.FinalScore < 0 || result.FinalScore > 100 {
		t.Errorf("final_score = %d, out of [0,100]", result.FinalScore)
	}
}

func TestCompute_InvalidPayloadRejected(t *testing.T) {
	p := basePayload()
	p.UserID = ""
	if _, err := Compute(p, nil, nil); err == nil {
		t.Errorf("expected InvalidPayload error for empty user_id")
	}
}

func TestCompute_HooperOutOfRangeRejected(t *testing.T) {
	p := basePayload()
	p.Hooper.Fatigue = 9
	if _, err := Compute(p, nil, nil); err == nil {
		t.Errorf("expected InvalidPayload error for hooper.fatigue=9")
	}
}

// Baseline healthy day.
func TestScenarioA_BaselineHealthyDay(t *testing.T) {
	previous := entity.StateDistribution{entity.Peak: 0.10, entity.WellAdapted: 0.50, entity.FOR: 0.30, entity.AcuteFatigue: 0.10, entity.NFOR: 0, entity.OTS: 0}
	p := basePayload()
	p.PreviousStateProbs = &previous
	p.HasTrainingLoad = true
	p.TrainingLoad = "medium"
	au := make([]float64, 0, 28)
	for i := 0; i < 21; i++ {
		au = append(au, 350)
	}
	for i := 0; i < 7; i++ {
		au = append(au, 500)
	}
	p.RecentTrainingAU = au
	p.Hooper = entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3}
	p.HasSleepData = true
	p.TotalSleepMinutes = 450 // 7.5h
	p.InBedMinutes = 500      // eff 0.90
	p.RestorativeRatio = 0.38
	p.HasRestorativeRatio = true
	p.HasHRVToday = true
	p.HRVRMSSDToday = 60
	mu, sdv := 58.0, 6.0
	p.HRVBaselineMu = &mu
	p.HRVBaselineSD = &sdv

	result, err := Compute(p, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if result.FinalScore < 60 || result.FinalScore > 95 {
		t.Errorf("Scenario A: final_score = %d, want within a broad healthy-day band", result.FinalScore)
	}
}

// Scenario D - sick override collapses mass on Peak.
func TestScenarioD_SickOverride(t *testing.T) {
	previous := entity.StateDistribution{entity.Peak: 0.10, entity.WellAdapted: 0.50, entity.FOR: 0.30, entity.AcuteFatigue: 0.10, entity.NFOR: 0, entity.OTS: 0}
	p := basePayload()
	p.PreviousStateProbs = &previous
	p.HasTrainingLoad = true
	p.TrainingLoad = "medium"
	p.TodayJournal.IsSick = true
	p.Hooper = entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3}

	result, err := Compute(p, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if result.Posterior[entity.Peak] >= 0.02 {
		t.Errorf("Scenario D: mass on Peak = %v, want < 0.02", result.Posterior[entity.Peak])
	}
	if result.FinalScore > 50 {
		t.Errorf("Scenario D: final_score = %d, want <= 50", result.FinalScore)
	}
}

// Scenario E - insufficient data still returns a total result.
func TestScenarioE_InsufficientDataStillReturnsResult(t *testing.T) {
	p := basePayload()
	result, err := Compute(p, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if result.FinalScore < 0 || result.FinalScore > 100 {
		t.Errorf("final_score out of range: %d", result.FinalScore)
	}
}

func TestCompute_IdempotentOnSamePayload(t *testing.T) {
	p := basePayload()
	p.HasTrainingLoad = true
	p.TrainingLoad = "high"

	r1, err1 := Compute(p, nil, nil)
	r2, err2 := Compute(p, nil, nil)
	if err1 != nil || err2 != nil {
		t.Fatalf("Compute errors: %v, %v", err1, err2)
	}
	if r1.Posterior != r2.Posterior {
		t.Errorf("Compute is not idempotent: %v != %v", r1.Posterior, r2.Posterior)
	}
	if r1.FinalScore != r2.FinalScore {
		t.Errorf("final_score differs across identical runs: %d != %d", r1.FinalScore, r2.FinalScore)
	}
}

func TestCompute_TrainingLoadMonotonicallyShiftsMassOffPeak(t *testing.T) {
	labels := []string{"rest", "low", "medium", "high", "very_high"}
	var peakMass []float64
	for _, label := range labels {
		p := basePayload()
		p.HasTrainingLoad = true
		p.TrainingLoad = label
		result, err := Compute(p, nil, nil)
		if err != nil {
			t.Fatalf("Compute error for %s: %v", label, err)
		}
		peakMass = append(peakMass, result.Posterior[entity.Peak])
	}
	for i := 1; i < len(peakMass); i++ {
		if peakMass[i] > peakMass[i-1]+1e-9 {
			t.Errorf("Peak mass not monotonically non-increasing across %v: %v", labels, peakMass)
		}
	}
}

func TestCompute_HooperFatigueMonotonicallyReducesScore(t *testing.T) {
	var scores []int
	for fatigue := 1; fatigue <= 7; fatigue++ {
		p := basePayload()
		p.Hooper.Fatigue = fatigue
		result, err := Compute(p, nil, nil)
		if err != nil {
			t.Fatalf("Compute error: %v", err)
		}
		scores = append(scores, result.FinalScore)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			t.Errorf("score increased from fatigue=%d to %d: %v", i, i+1, scores)
		}
	}
}

func TestCompute_HRVAboveBaselineRaisesScoreOverBelow(t *testing.T) {
	lowP := basePayload()
	lowP.HasHRVToday = true
	lowP.HRVRMSSDToday = 46 // z ~= -2
	mu, sdv := 58.0, 6.0
	lowP.HRVBaselineMu = &mu
	lowP.HRVBaselineSD = &sdv

	highP := basePayload()
	highP.HasHRVToday = true
	highP.HRVRMSSDToday = 70 // z ~= +2
	highP.HRVBaselineMu = &mu
	highP.HRVBaselineSD = &sdv

	lowResult, err := Compute(lowP, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	highResult, err := Compute(highP, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if highResult.FinalScore <= lowResult.FinalScore {
		t.Errorf("high HRV score %d not greater than low HRV score %d", highResult.FinalScore, lowResult.FinalScore)
	}
}

func TestCompute_NeutralEvidenceDoesNotSwingPosterior(t *testing.T) {
	without := basePayload()
	without.HasWellbeingPercentage = false

	with := basePayload()
	with.HasWellbeingPercentage = true
	with.WellbeingPercentage = 55 // maps to "medium", a neutral-ish band

	r1, err := Compute(without, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	r2, err := Compute(with, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	for s := range r1.Posterior {
		if math.Abs(r1.Posterior[s]-r2.Posterior[s]) > 0.1 {
			t.Errorf("neutral wellbeing evidence swung state %d by more than 0.1: %v vs %v", s, r1.Posterior[s], r2.Posterior[s])
		}
	}
}
