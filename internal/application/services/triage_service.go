package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

const maxTriageDepartments = 2

// TriageService routes symptom text to clinical departments.
type TriageService struct {
	reasoning Reasoner
	catalog   *entities.Catalog
}

// NewTriageService creates a triage service over the default catalog.
func NewTriageService(reasoning Reasoner) *TriageService {
	return NewTriageServiceWithCatalog(reasoning, entities.DefaultCatalog)
}

// NewTriageServiceWithCatalog creates a triage service over catalog.
func NewTriageServiceWithCatalog(reasoning Reasoner, catalog *entities.Catalog) *TriageService {
	return &TriageService{reasoning: reasoning, catalog: catalog}
}

// Classify decides the department(s) and priority for symptoms.
// Emergency keywords always win; the reasoning service is never consulted
// for them.
func (s *TriageService) Classify(ctx context.Context, symptoms string, emergency bool) entities.TriageDecision {
	if !emergency {
		_, emergency = entities.MatchEmergencyKeyword(symptoms)
	}
	if emergency {
		return s.emergencyDecision()
	}

	source := entities.TriageSourceReasoning
	names, err := s.askReasoning(ctx, symptoms)
	if err != nil {
		log.Warn().Err(err).Msg("triage falling back to keyword scoring")
	}
	if len(names) == 0 {
		source = entities.TriageSourceKeywords
		names = []string{s.ScoreKeywords(symptoms)}
	}

	entries := make([]entities.DepartmentEntry, 0, len(names))
	for _, name := range names {
		if d, ok := s.catalog.Get(name); ok {
			entries = append(entries, d.Entry())
		}
	}
	if len(entries) == 0 {
		entries = []entities.DepartmentEntry{s.generalMedicine().Entry()}
	}

	return entities.TriageDecision{
		Primary:     entries[0].Name,
		Emergency:   false,
		Priority:    entities.PriorityNormal,
		Departments: entries,
		Source:      source,
	}
}

func (s *TriageService) emergencyDecision() entities.TriageDecision {
	entry := s.catalog.MustGet(entities.DepartmentEmergency).Entry()
	return entities.TriageDecision{
		Primary:     entry.Name,
		Emergency:   true,
		Priority:    entities.PriorityHigh,
		Departments: []entities.DepartmentEntry{entry},
		Source:      entities.TriageSourceEmergency,
	}
}

func (s *TriageService) generalMedicine() entities.Department {
	return s.catalog.MustGet(entities.DepartmentGeneralMedicine)
}

// askReasoning returns the valid catalog names in the reply, in reply order.
func (s *TriageService) askReasoning(ctx context.Context, symptoms string) ([]string, error) {
	prompt := TriageInstruction(symptoms, s.catalog.RoutableNames())
	reply, err := s.reasoning.Complete(ctx, prompt, symptoms, triageMaxTokens)
	if err != nil {
		return nil, err
	}

	names := s.ParseDepartments(reply)
	if len(names) == 0 {
		log.Debug().Str("reply", reply).Msg("triage reply named no known department")
	}
	return names, nil
}

// ParseDepartments keeps routable catalog names from a comma-separated
// reply: matched case-insensitively, de-duplicated, at most two.
func (s *TriageService) ParseDepartments(reply string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(reply, ",") {
		part = strings.Trim(strings.TrimSpace(part), ".\"'")
		d, ok := s.catalog.Get(part)
		if !ok || d.Name == entities.DepartmentEmergency {
			continue
		}
		if _, dup := seen[d.Name]; dup {
			continue
		}
		seen[d.Name] = struct{}{}
		names = append(names, d.Name)
		if len(names) == maxTriageDepartments {
			break
		}
	}
	return names
}

// ScoreKeywords picks the routable department whose keyword phrases best
// cover the text. Each matching phrase scores its word count; ties go to the
// earlier department and an all-zero score yields General Medicine.
func (s *TriageService) ScoreKeywords(symptoms string) string {
	lower := strings.ToLower(symptoms)
	best, bestScore := entities.DepartmentGeneralMedicine, 0
	for _, d := range s.catalog.Routable() {
		score := 0
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				score += len(strings.Fields(kw))
			}
		}
		if score > bestScore {
			best, bestScore = d.Name, score
		}
	}
	return best
}
