package entity

import "time"

// HeartRateSample is a single intraday heart-rate reading.
type HeartRateSample struct {
	Time       time.Time `json:"time"`
	BPM        int       `json:"bpm"`
	Confidence int       `json:"confidence"`
}
