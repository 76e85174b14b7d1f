package entity

import (
	"testing"
	"time"
)

func TestConditionLog_Validate_OK(t *testing.T) {
	tests := []struct {
		name string
		log  ConditionLog
	}{
		{"all low", ConditionLog{Fatigue: 1, Soreness: 1, Stress: 1, Sleep: 1, LoggedAt: time.Now()}},
		{"all high", ConditionLog{Fatigue: 7, Soreness: 7, Stress: 7, Sleep: 7, LoggedAt: time.Now()}},
		{"with journal", ConditionLog{
			Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3,
			AlcoholConsumed: true, LateMeal: true,
			LoggedAt: time.Now(),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.log.Validate(); err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConditionLog_Validate_Error(t *testing.T) {
	longNote := make([]byte, 1001)
	for i := range longNote {
		longNote[i] = 'a'
	}

	manyTags := make([]string, 11)
	for i := range manyTags {
		manyTags[i] = "tag"
	}

	longTag := make([]byte, 51)
	for i := range longTag {
		longTag[i] = 'a'
	}

	valid := ConditionLog{Fatigue: 3, Soreness: 3, Stress: 3, Sleep: 3}

	tests := []struct {
		name string
		log  ConditionLog
	}{
		{"fatigue 0", func() ConditionLog { l := valid; l.Fatigue = 0; return l }()},
		{"fatigue 8", func() ConditionLog { l := valid; l.Fatigue = 8; return l }()},
		{"soreness out of range", func() ConditionLog { l := valid; l.Soreness = 0; return l }()},
		{"stress out of range", func() ConditionLog { l := valid; l.Stress = 8; return l }()},
		{"sleep out of range", func() ConditionLog { l := valid; l.Sleep = -1; return l }()},
		{"note too long", func() ConditionLog { l := valid; l.Note = string(longNote); return l }()},
		{"too many tags", func() ConditionLog { l := valid; l.Tags = manyTags; return l }()},
		{"tag too long", func() ConditionLog { l := valid; l.Tags = []string{string(longTag)}; return l }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.log.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestConditionLog_ToJournalAndHooper(t *testing.T) {
	log := ConditionLog{
		Fatigue: 4, Soreness: 5, Stress: 2, Sleep: 3,
		IsSick: true, LateCaffeine: true,
	}
	j := log.ToJournal()
	if !j.IsSick || !j.LateCaffeine || j.IsInjured {
		t.Errorf("ToJournal() = %+v, unexpected booleans", j)
	}
	h := log.ToHooper()
	if h.Fatigue != 4 || h.Soreness != 5 || h.Stress != 2 || h.Sleep != 3 {
		t.Errorf("ToHooper() = %+v, want {4,5,2,3}", h)
	}
}
