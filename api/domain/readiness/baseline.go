package readiness

import (
	"math"
	"sort"
	"time"

	"vitametron/api/domain/entity"
)

const (
	minSleepRecords = 15
	minHRVRecords   = 10
)

// defaultSleepMeans and defaultHRVProfiles are the cold-start cohort means of the
// default-profile table.
var defaultSleepMeans = map[string]float64{
	"short_sleeper":  6.5,
	"normal_sleeper": 7.5,
	"long_sleeper":   8.5,
}

type hrvProfile struct{ mu, sd float64 }

var defaultHRVProfiles = map[string]hrvProfile{
	"high_hrv":   {55, 10},
	"normal_hrv": {40, 8},
	"low_hrv":    {28, 6},
}

// fallbackBaseline is the fixed cohort-mean baseline returned when the
// calculator hits an internal error.
func fallbackBaseline(userID string) entity.Baseline {
	return entity.Baseline{
		UserID:               userID,
		SleepHoursMean:       7.5,
		SleepEfficiencyMean:  0.85,
		RestorativeRatioMean: 0.35,
		HRVRMSSDMean:         40,
		HRVRMSSDSD:           8,
		DataQuality:          0.3,
		Source:               entity.BaselineFallback,
	}
}

// defaultBaseline builds the cold-start baseline from a two-question
// profile. An empty/unknown profile falls back to normal_sleeper/normal_hrv.
func defaultBaseline(userID string, profile entity.UserProfile) entity.Baseline {
	sleepMu, ok := defaultSleepMeans[profile.SleepNeed]
	if !ok {
		sleepMu = defaultSleepMeans["normal_sleeper"]
	}
	hrv, ok := defaultHRVProfiles[profile.HRVAge]
	if !ok {
		hrv = defaultHRVProfiles["normal_hrv"]
	}
	return entity.Baseline{
		UserID:               userID,
		SleepHoursMean:       sleepMu,
		SleepEfficiencyMean:  0.85,
		RestorativeRatioMean: 0.35,
		HRVRMSSDMean:         hrv.mu,
		HRVRMSSDSD:           hrv.sd,
		DataQuality:          0.5,
		Source:               entity.BaselineDefault,
	}
}

// iqrFilter keeps values within [Q1-1.5*IQR, Q3+1.5*IQR].
func iqrFilter(values []float64) []float64 {
	if len(values) < 4 {
		return values
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := percentile(sorted, 0.25)
	q3 := percentile(sorted, 0.75)
	iqr := q3 - q1
	lo := q1 - 1.5*iqr
	hi := q3 + 1.5*iqr

	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

// percentile uses linear interpolation over an already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// trimmedMean drops the lowest and highest 10% ("trimmed mean"
// in the glossary).
func trimmedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	trim := int(float64(len(sorted)) * 0.10)
	kept := sorted[trim : len(sorted)-trim]
	if len(kept) == 0 {
		kept = sorted
	}
	sum := 0.0
	for _, v := range kept {
		sum += v
	}
	return sum / float64(len(kept))
}

func sampleStdDev(values []float64, meanV float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - meanV
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// robustField applies the full IQR-filter + trimmed-mean pipeline to one
// series, returning (mean, ok). ok is false if fewer than 10 values survive
// filtering, in which case the caller should keep the existing default.
func robustField(values []float64) (float64, bool) {
	filtered := iqrFilter(values)
	if len(filtered) < 10 {
		return 0, false
	}
	return trimmedMean(filtered), true
}

// dateUniformity scores how evenly dates are spread across their span,
// a crude proxy for "uniformity of date distribution" in the data-quality
// formula: 1.0 when records cover most of their own span, lower when
// clustered into a few days.
func dateUniformity(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}
	sorted := append([]time.Time(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	span := sorted[len(sorted)-1].Sub(sorted[0]).Hours() / 24
	if span <= 0 {
		return 1.0
	}
	uniq := map[string]bool{}
	for _, d := range dates {
		uniq[d.Format("2006-01-02")] = true
	}
	return clamp(float64(len(uniq))/(span+1), 0, 1)
}

// ComputeBaseline is the Baseline Calculator. It never fails hard:
// insufficient data yields a default baseline, and internal errors yield
// the fixed fallback.
func ComputeBaseline(userID string, sleep []entity.SleepHistoryRecord, hrv []entity.HRVRecord, profile entity.UserProfile) entity.Baseline {
	var validSleep []entity.SleepHistoryRecord
	for _, r := range sleep {
		if r.InRange() {
			validSleep = append(validSleep, r)
		}
	}
	var validHRV []entity.HRVRecord
	for _, r := range hrv {
		if r.InRange() {
			validHRV = append(validHRV, r)
		}
	}

	if len(validSleep) < minSleepRecords || len(validHRV) < minHRVRecords {
		b := defaultBaseline(userID, profile)
		b.SleepSampleCount = len(validSleep)
		b.HRVSampleCount = len(validHRV)
		return b
	}

	hours := make([]float64, len(validSleep))
	effs := make([]float64, 0, len(validSleep))
	var restValues []float64
	var dates []time.Time
	for i, r := range validSleep {
		hours[i] = r.TotalSleepHours
		if r.Efficiency > 0 {
			effs = append(effs, r.Efficiency)
		}
		if r.HasRestorative {
			restValues = append(restValues, r.RestorativeRatio)
		}
		dates = append(dates, r.Date)
	}

	rmssd := make([]float64, len(validHRV))
	for i, r := range validHRV {
		rmssd[i] = r.RMSSD
	}

	b := entity.Baseline{UserID: userID, Source: entity.BaselinePersonal}

	if mu, ok := robustField(hours); ok {
		b.SleepHoursMean = mu
	} else {
		b.SleepHoursMean = defaultSleepMeans["normal_sleeper"]
	}
	if mu, ok := robustField(effs); ok {
		b.SleepEfficiencyMean = mu
	} else {
		b.SleepEfficiencyMean = 0.85
	}
	if mu, ok := robustField(restValues); ok {
		b.RestorativeRatioMean = mu
	} else {
		b.RestorativeRatioMean = 0.35
	}

	filteredRMSSD := iqrFilter(rmssd)
	if len(filteredRMSSD) >= 10 {
		trim := int(float64(len(filteredRMSSD)) * 0.10)
		sorted := append([]float64(nil), filteredRMSSD...)
		sort.Float64s(sorted)
		kept := sorted[trim : len(sorted)-trim]
		if len(kept) == 0 {
			kept = sorted
		}
		b.HRVRMSSDMean = trimmedMean(kept)
		b.HRVRMSSDSD = sampleStdDev(kept, b.HRVRMSSDMean)
	} else {
		profile := defaultHRVProfiles["normal_hrv"]
		b.HRVRMSSDMean = profile.mu
		b.HRVRMSSDSD = profile.sd
	}
	b.ClampHRVSD()

	b.SleepSampleCount = len(validSleep)
	b.HRVSampleCount = len(validHRV)
	b.DataQuality = dataQualityScore(len(validSleep), len(restValues), len(validSleep), dates, true)
	if b.DataQuality < 0.3 {
		fb := fallbackBaseline(userID)
		fb.SleepSampleCount = b.SleepSampleCount
		fb.HRVSampleCount = b.HRVSampleCount
		return fb
	}

	return b
}

// dataQualityScore weighs sample size, restorative-data completeness,
// date-distribution uniformity and success: 0.4*min(n/30,1) + 0.3*restorative
// completeness + 0.2*date uniformity + 0.1*success flag.
func dataQualityScore(sleepN, restorativeN, totalN int, dates []time.Time, success bool) float64 {
	sizeScore := math.Min(float64(sleepN)/30.0, 1.0)
	completeness := 0.0
	if totalN > 0 {
		completeness = float64(restorativeN) / float64(totalN)
	}
	uniformity := dateUniformity(dates)
	successFlag := 0.0
	if success {
		successFlag = 1.0
	}
	return 0.4*sizeScore + 0.3*completeness + 0.2*uniformity + 0.1*successFlag
}

// UpgradeEligible reports whether a default-source user has accumulated
// enough history to move to a personal baseline.
func UpgradeEligible(b entity.Baseline) bool {
	return b.Source == entity.BaselineDefault &&
		b.SleepSampleCount >= 30 &&
		b.HRVSampleCount >= 40 &&
		b.DataQuality >= 0.7
}

// RefreshPolicy reports which update (if any) is due.
type RefreshPolicy int

const (
	NoRefresh RefreshPolicy = iota
	IncrementalRefresh
	FullRefresh
)

// DecideRefresh applies the refresh policy: smart preference for full when both
// are due, incremental otherwise.
func DecideRefresh(b entity.Baseline, now time.Time, newDays int) RefreshPolicy {
	fullDue := now.Sub(b.LastFullAt).Hours() >= 30*24
	incrementalDue := now.Sub(b.LastIncrementalAt).Hours() >= 7*24 || b.DataQuality < 0.7

	if fullDue {
		return FullRefresh
	}
	if incrementalDue && newDays >= 5 {
		return IncrementalRefresh
	}
	return NoRefresh
}

// recentFieldMean computes the trimmed mean of a short recent window without
// ComputeBaseline's >=10-post-filter-values gate: a 7-day incremental window
// can never clear that gate by construction, and the blend still needs "the
// newly computed field using only the recent 7 days". Falls back to fallback
// when the window has no usable values at all.
func recentFieldMean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	filtered := iqrFilter(values)
	if len(filtered) == 0 {
		filtered = values
	}
	return trimmedMean(filtered)
}

// IncrementalUpdate blends the old baseline 0.7/0.3 with a fresh 7-day
// computation, recomputing sigma from the blended window.
func IncrementalUpdate(old entity.Baseline, recentSleep []entity.SleepHistoryRecord, recentHRV []entity.HRVRecord, now time.Time) entity.Baseline {
	var hours, effs, rest, rmssd []float64
	for _, r := range recentSleep {
		if !r.InRange() {
			continue
		}
		hours = append(hours, r.TotalSleepHours)
		if r.Efficiency > 0 {
			effs = append(effs, r.Efficiency)
		}
		if r.HasRestorative {
			rest = append(rest, r.RestorativeRatio)
		}
	}
	for _, r := range recentHRV {
		if r.InRange() {
			rmssd = append(rmssd, r.RMSSD)
		}
	}

	freshSleepHours := recentFieldMean(hours, old.SleepHoursMean)
	freshSleepEff := recentFieldMean(effs, old.SleepEfficiencyMean)
	freshRest := recentFieldMean(rest, old.RestorativeRatioMean)
	freshHRVMean := recentFieldMean(rmssd, old.HRVRMSSDMean)

	blended := old
	blended.SleepHoursMean = 0.7*old.SleepHoursMean + 0.3*freshSleepHours
	blended.SleepEfficiencyMean = 0.7*old.SleepEfficiencyMean + 0.3*freshSleepEff
	blended.RestorativeRatioMean = 0.7*old.RestorativeRatioMean + 0.3*freshRest
	blended.HRVRMSSDMean = 0.7*old.HRVRMSSDMean + 0.3*freshHRVMean
	if len(rmssd) >= 2 {
		freshSD := sampleStdDev(rmssd, freshHRVMean)
		blended.HRVRMSSDSD = 0.7*old.HRVRMSSDSD + 0.3*freshSD
	}
	blended.ClampHRVSD()
	blended.LastIncrementalAt = now
	blended.SleepSampleCount += len(hours)
	blended.HRVSampleCount += len(rmssd)
	return blended
}

// FullUpdate reruns the calculator over the full 30-day window.
func FullUpdate(userID string, sleep []entity.SleepHistoryRecord, hrv []entity.HRVRecord, profile entity.UserProfile, now time.Time) entity.Baseline {
	b := ComputeBaseline(userID, sleep, hrv, profile)
	b.LastFullAt = now
	b.LastIncrementalAt = now
	return b
}
