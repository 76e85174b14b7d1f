package entity

import (
	"errors"
	"fmt"
	"time"
)

// ConditionLog is the daily subjective questionnaire: Hooper 1..7 scores
// plus the short-term lifestyle journal booleans the readiness engine's
// mapping layer consumes.
type ConditionLog struct {
	ID       int64
	LoggedAt time.Time

	Fatigue  int // Hooper 1-7
	Soreness int // Hooper 1-7
	Stress   int // Hooper 1-7
	Sleep    int // Hooper 1-7

	AlcoholConsumed bool
	LateCaffeine    bool
	ScreenBeforeBed bool
	LateMeal        bool
	IsSick          bool
	IsInjured       bool

	Note      string
	Tags      []string
	CreatedAt time.Time
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type ConditionFilter struct {
	From      time.Time
	To        time.Time
	Tag       string
	Limit     int
	Offset    int
	SortField string
	SortDir   string
}

type ConditionListResult struct {
	Items []ConditionLog `json:"items"`
	Total int            `json:"total"`
}

type ConditionSummary struct {
	TotalCount  int     `json:"total_count"`
	FatigueAvg  float64 `json:"fatigue_avg"`
	FatigueMin  int     `json:"fatigue_min"`
	FatigueMax  int     `json:"fatigue_max"`
	SorenessAvg float64 `json:"soreness_avg"`
	SorenessMin int     `json:"soreness_min"`
	SorenessMax int     `json:"soreness_max"`
	StressAvg   float64 `json:"stress_avg"`
	StressMin   int     `json:"stress_min"`
	StressMax   int     `json:"stress_max"`
	SleepAvg    float64 `json:"sleep_avg"`
	SleepMin    int     `json:"sleep_min"`
	SleepMax    int     `json:"sleep_max"`
}

func (c *ConditionLog) Validate() error {
	if err := validateHooperField("fatigue", c.Fatigue); err != nil {
		return err
	}
	if err := validateHooperField("soreness", c.Soreness); err != nil {
		return err
	}
	if err := validateHooperField("stress", c.Stress); err != nil {
		return err
	}
	if err := validateHooperField("sleep", c.Sleep); err != nil {
		return err
	}
	if len(c.Note) > 1000 {
		return errors.New("note must be 1000 characters or less")
	}
	if len(c.Tags) > 10 {
		return errors.New("tags must be 10 or fewer")
	}
	for _, tag := range c.Tags {
		if len(tag) > 50 {
			return fmt.Errorf("tag must be 50 characters or less, got %q", tag)
		}
	}
	return nil
}

func validateHooperField(name string, v int) error {
	if v < 1 || v > 7 {
		return fmt.Errorf("%s must be between 1 and 7, got %d", name, v)
	}
	return nil
}

// ToJournal extracts the short-term lifestyle booleans the readiness
// engine's prior/mapping stages consume.
func (c ConditionLog) ToJournal() Journal {
	return Journal{
		AlcoholConsumed: c.AlcoholConsumed,
		LateCaffeine:    c.LateCaffeine,
		ScreenBeforeBed: c.ScreenBeforeBed,
		LateMeal:        c.LateMeal,
		IsSick:          c.IsSick,
		IsInjured:       c.IsInjured,
	}
}

// ToHooper extracts the Hooper questionnaire for the mapping layer.
func (c ConditionLog) ToHooper() HooperScores {
	return HooperScores{Fatigue: c.Fatigue, Soreness: c.Soreness, Stress: c.Stress, Sleep: c.Sleep}
}
