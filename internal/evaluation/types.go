package evaluation

import (
	"time"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// FieldDepartment marks a case scored against the triage classifier instead
// of a field extractor.
const FieldDepartment = "department"

// ValidFields returns every field a golden case may target.
func ValidFields() []string {
	fields := make([]string, 0, len(entities.Fields)+1)
	for _, f := range entities.Fields {
		fields = append(fields, string(f))
	}
	return append(fields, FieldDepartment)
}

// GoldenCase is one labelled transcript with its expected value.
type GoldenCase struct {
	ID         string            `json:"id"`
	Field      string            `json:"field"`
	Transcript string            `json:"transcript"`
	Expected   string            `json:"expected"`
	Language   entities.Language `json:"language"`
	Emergency  bool              `json:"emergency,omitempty"`
}

// CaseResult is the outcome of one golden case.
type CaseResult struct {
	CaseID       string
	Field        string
	Got          string
	Ranked       []string // departments in triage order; empty for extraction cases
	Match        bool
	Reciprocal   float64
	FallbackUsed bool
	Latency      time.Duration
}

// Summary holds aggregate accuracy across a run.
type Summary struct {
	Total      int
	Matched    int
	Accuracy   float64
	Fallbacks  int
	AvgLatency time.Duration
	ByField    map[string]*FieldSummary
	Failures   []CaseResult
}

// FieldSummary holds accuracy for one field.
type FieldSummary struct {
	Count    int
	Matched  int
	Accuracy float64
	MRR      float64 // department cases only
}
