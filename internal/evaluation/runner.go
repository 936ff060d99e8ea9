package evaluation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// triageDepth is the most departments a triage decision lists.
const triageDepth = 2

// FieldExtractor is satisfied by services.ExtractionService.
type FieldExtractor interface {
	Extract(ctx context.Context, field entities.Field, transcript string, lang entities.Language) (entities.ExtractionResult, error)
}

// Classifier is satisfied by services.TriageService.
type Classifier interface {
	Classify(ctx context.Context, symptoms string, emergency bool) entities.TriageDecision
}

// Runner scores the extractors and the classifier against golden cases.
type Runner struct {
	extractor  FieldExtractor
	classifier Classifier
}

func NewRunner(extractor FieldExtractor, classifier Classifier) *Runner {
	return &Runner{extractor: extractor, classifier: classifier}
}

// Run evaluates every case. Cases that cannot be scored are logged and
// counted as misses.
func (r *Runner) Run(ctx context.Context, cases []GoldenCase) *Summary {
	summary := &Summary{
		Total:   len(cases),
		ByField: make(map[string]*FieldSummary),
	}

	for _, gc := range cases {
		if ctx.Err() != nil {
			break
		}
		res := r.runCase(ctx, gc)
		r.updateSummary(summary, res)
	}

	r.finalizeSummary(summary)
	return summary
}

func (r *Runner) runCase(ctx context.Context, gc GoldenCase) CaseResult {
	start := time.Now()
	res := CaseResult{CaseID: gc.ID, Field: gc.Field}

	if gc.Field == FieldDepartment {
		decision := r.classifier.Classify(ctx, gc.Transcript, gc.Emergency)
		for _, d := range decision.Departments {
			res.Ranked = append(res.Ranked, d.Name)
		}
		res.Got = decision.PrimaryEntry().Name
		res.Reciprocal = ReciprocalRank(gc.Expected, res.Ranked, triageDepth)
		res.FallbackUsed = decision.Source == entities.TriageSourceKeywords
	} else {
		lang := entities.LanguageOrDefault(string(gc.Language))
		out, err := r.extractor.Extract(ctx, entities.Field(gc.Field), gc.Transcript, lang)
		if err != nil {
			log.Warn().Err(err).Str("case", gc.ID).Msg("case could not be evaluated")
		}
		res.Got = out.Value
		res.FallbackUsed = out.FallbackUsed
	}

	res.Match = Matches(gc.Expected, res.Got)
	res.Latency = time.Since(start)
	return res
}

func (r *Runner) updateSummary(s *Summary, res CaseResult) {
	s.AvgLatency += res.Latency
	if res.FallbackUsed {
		s.Fallbacks++
	}
	if res.Match {
		s.Matched++
	} else {
		s.Failures = append(s.Failures, res)
	}

	fs, ok := s.ByField[res.Field]
	if !ok {
		fs = &FieldSummary{}
		s.ByField[res.Field] = fs
	}
	fs.Count++
	fs.MRR += res.Reciprocal
	if res.Match {
		fs.Matched++
	}
}

func (r *Runner) finalizeSummary(s *Summary) {
	if s.Total > 0 {
		s.Accuracy = float64(s.Matched) / float64(s.Total)
		s.AvgLatency /= time.Duration(s.Total)
	}

	for _, fs := range s.ByField {
		if fs.Count > 0 {
			n := float64(fs.Count)
			fs.Accuracy = float64(fs.Matched) / n
			fs.MRR /= n
		}
	}
}
