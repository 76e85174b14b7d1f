// Command replay runs a set of literal fixture scenarios against the live
// engine and prints a table of scenario, score, expected range, diagnosis
// and pass/fail, exiting non-zero if any scenario fails, so a reviewer can
// sanity-check the CPT tables without standing up the HTTP service.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"vitametron/api/domain/entity"
	"vitametron/api/domain/readiness"
)

type scenario struct {
	name    string
	build   func() *entity.DailyPayload
	wantLow int
	wantHi  int
}

func previousProbs(peak, wa, for_, af, nfor, ots float64) *entity.StateDistribution {
	d := entity.StateDistribution{peak, wa, for_, af, nfor, ots}
	return &d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "A-baseline-healthy-day",
			build: func() *entity.DailyPayload {
				p := &entity.DailyPayload{
					UserID: "scenario-a", Date: day("2026-07-29"), Gender: "female",
					PreviousStateProbs: previousProbs(0.10, 0.50, 0.30, 0.10, 0, 0),
					HasTrainingLoad:    true, TrainingLoad: "medium",
					Hooper:              entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3},
					HasSleepData:        true,
					TotalSleepMinutes:   450, InBedMinutes: 500,
					RestorativeRatio:    0.38, HasRestorativeRatio: true,
					HasHRVToday: true, HRVRMSSDToday: 60,
				}
				mu, sd := 58.0, 6.0
				p.HRVBaselineMu, p.HRVBaselineSD = &mu, &sd
				au := make([]float64, 0, 28)
				for i := 0; i < 21; i++ {
					au = append(au, 350)
				}
				for i := 0; i < 7; i++ {
					au = append(au, 500)
				}
				p.RecentTrainingAU = au
				return p
			},
			wantLow: 72, wantHi: 82,
		},
		{
			name: "B-post-heavy-block-fatigue",
			build: func() *entity.DailyPayload {
				p := &entity.DailyPayload{
					UserID: "scenario-b", Date: day("2026-07-29"), Gender: "male",
					PreviousStateProbs: previousProbs(0.05, 0.30, 0.40, 0.20, 0.05, 0),
					HasTrainingLoad:    true, TrainingLoad: "high",
					RecentTrainingLoads: []string{"high", "high", "high", "high", "very_high", "high", "high", "high"},
					Hooper:              entity.HooperScores{Fatigue: 5, Soreness: 5, Stress: 4, Sleep: 4},
					HasSleepData:        true,
					TotalSleepMinutes:   372, InBedMinutes: 477,
					RestorativeRatio:    0.22, HasRestorativeRatio: true,
					HasHRVToday: true, HRVRMSSDToday: 42,
					YesterdayJournal: entity.Journal{LateMeal: true},
				}
				mu, sd := 58.0, 6.0
				p.HRVBaselineMu, p.HRVBaselineSD = &mu, &sd
				return p
			},
			wantLow: 35, wantHi: 50,
		},
		{
			name: "C-acwr-reward",
			build: func() *entity.DailyPayload {
				p := &entity.DailyPayload{
					UserID: "scenario-c", Date: day("2026-07-29"), Gender: "male",
					Hooper:            entity.HooperScores{Fatigue: 2, Soreness: 2, Stress: 2, Sleep: 2},
					HasSleepData:      true,
					TotalSleepMinutes: 480, InBedMinutes: 522,
					RestorativeRatio: 0.40, HasRestorativeRatio: true,
					HasHRVToday: true, HRVRMSSDToday: 64,
				}
				mu, sd := 58.0, 6.0
				p.HRVBaselineMu, p.HRVBaselineSD = &mu, &sd
				au := make([]float64, 0, 35)
				for i := 0; i < 28; i++ {
					au = append(au, 500)
				}
				for i := 0; i < 7; i++ {
					au = append(au, 200)
				}
				p.RecentTrainingAU = au
				return p
			},
			wantLow: 85, wantHi: 95,
		},
		{
			name: "D-sick-override",
			build: func() *entity.DailyPayload {
				p := &entity.DailyPayload{
					UserID: "scenario-d", Date: day("2026-07-29"), Gender: "female",
					PreviousStateProbs: previousProbs(0.10, 0.50, 0.30, 0.10, 0, 0),
					HasTrainingLoad:    true, TrainingLoad: "medium",
					Hooper:              entity.HooperScores{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3},
					HasSleepData:        true,
					TotalSleepMinutes:   450, InBedMinutes: 500,
					RestorativeRatio:    0.38, HasRestorativeRatio: true,
					HasHRVToday: true, HRVRMSSDToday: 60,
					TodayJournal: entity.Journal{IsSick: true},
				}
				mu, sd := 58.0, 6.0
				p.HRVBaselineMu, p.HRVBaselineSD = &mu, &sd
				return p
			},
			wantLow: 0, wantHi: 50,
		},
		{
			name: "E-insufficient-data-new-user",
			build: func() *entity.DailyPayload {
				return &entity.DailyPayload{
					UserID: "scenario-e", Date: day("2026-07-29"), Gender: "male",
					Hooper: entity.HooperScores{Fatigue: 4, Soreness: 4, Stress: 4, Sleep: 4},
				}
			},
			wantLow: 0, wantHi: 100,
		},
	}
}

func main() {
	only := flag.String("scenario", "", "run only the named scenario (default: all)")
	flag.Parse()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "scenario\tscore\trange\tdiagnosis\tpass")
	fmt.Fprintln(w, "--------\t-----\t-----\t---------\t----")

	failed := 0
	for _, sc := range scenarios() {
		if *only != "" && sc.name != *only {
			continue
		}
		result, err := readiness.Compute(sc.build(), nil, nil)
		if err != nil {
			fmt.Fprintf(w, "%s\terror\t-\t%v\tFAIL\n", sc.name, err)
			failed++
			continue
		}
		pass := result.FinalScore >= sc.wantLow && result.FinalScore <= sc.wantHi
		status := "ok"
		if !pass {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%d\t[%d,%d]\t%s\t%s\n", sc.name, result.FinalScore, sc.wantLow, sc.wantHi, result.Diagnosis, status)
	}
	w.Flush()

	if failed > 0 {
		os.Exit(1)
	}
}
