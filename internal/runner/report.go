package runner

import (
	"io/fs"
	"time"

	"github.com/pokerlog/handreplay/internal/fileutil"
)

// Share is one player's cut of a settled pot as it appears in the report.
type Share struct {
	Player string `json:"player"`
	Amount int    `json:"amount"`
	Hand   string `json:"hand,omitempty"`
}

// Result is the outcome of replaying one hand. Err is set when the hand
// could not be replayed; the settlement fields are zero in that case.
type Result struct {
	HandID       string   `json:"hand_id"`
	Steps        int      `json:"steps"`
	Confidence   string   `json:"confidence,omitempty"`
	Winners      []Share  `json:"winners,omitempty"`
	HeroCategory string   `json:"hero_category,omitempty"`
	HeroNet      int      `json:"hero_net"`
	Warnings     []string `json:"warnings,omitempty"`
	Err          string   `json:"error,omitempty"`
}

// Summary aggregates a batch run for the report file.
type Summary struct {
	Hands    int           `json:"hands"`
	Failures int           `json:"failures"`
	Steps    int           `json:"steps"`
	Warnings int           `json:"warnings"`
	HeroNet  int           `json:"hero_net"`
	Duration time.Duration `json:"duration_ns"`

	// Confidence counts hands by settlement grade.
	Confidence map[string]int `json:"confidence"`

	Results []Result `json:"results"`
}

func newSummary() *Summary {
	return &Summary{Confidence: make(map[string]int)}
}

func (s *Summary) add(r Result) {
	s.Hands++
	s.Results = append(s.Results, r)
	if r.Err != "" {
		s.Failures++
		return
	}
	s.Steps += r.Steps
	s.Warnings += len(r.Warnings)
	s.HeroNet += r.HeroNet
	s.Confidence[r.Confidence]++
}

// WriteReport writes the summary as JSON, atomically so a crash mid-write
// never leaves a truncated report behind.
func (s *Summary) WriteReport(filename string, perm fs.FileMode) error {
	return fileutil.WriteJSONAtomic(filename, s, perm)
}
