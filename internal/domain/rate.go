package domain

import (
	"time"
)

// RateTable holds the rates of one base currency as of the last successful fetch.
type RateTable struct {
	Base  string
	Date  string
	Rates map[string]float64
}

func (t RateTable) IsEmpty() bool {
	return len(t.Rates) == 0
}

// Rate returns 0 for codes missing from the table.
func (t RateTable) Rate(code string) float64 {
	return t.Rates[code]
}

type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusLoaded  LoadStatus = "loaded"
	StatusFailed  LoadStatus = "failed"
)

type LoadState struct {
	Status   LoadStatus
	LoadedAt time.Time // only for StatusLoaded
	Reason   string    // only for StatusFailed
}

func (s LoadState) IsLoading() bool {
	return s.Status == StatusLoading
}
