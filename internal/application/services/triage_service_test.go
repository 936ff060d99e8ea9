package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

const triageRule = "hospital triage doctor"

func TestTriageService_EmergencyWins(t *testing.T) {
	tests := []struct {
		name      string
		symptoms  string
		emergency bool
	}{
		{"chest pain keyword", "chest pain, sweating", false},
		{"mixed case keyword", "Patient had an ACCIDENT on the road", false},
		{"severe pain", "severe pain in stomach", false},
		{"caller flag", "mild cough", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := (&fakeProvider{}).on(triageRule, "Cardiology")
			svc := services.NewTriageService(newReasoner(provider))

			decision := svc.Classify(context.Background(), tt.symptoms, tt.emergency)

			assert.Equal(t, entities.DepartmentEmergency, decision.Primary)
			assert.True(t, decision.Emergency)
			assert.Equal(t, entities.PriorityHigh, decision.Priority)
			require.Len(t, decision.Departments, 1)
			assert.Equal(t, 0, decision.Departments[0].Floor)
			assert.Equal(t, "Ground Floor", decision.Departments[0].FloorWord)
			assert.Equal(t, entities.TriageSourceEmergency, decision.Source)
			assert.Zero(t, provider.callCount(), "emergency must not consult reasoning")
		})
	}
}

func TestTriageService_ReasoningReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"single", "Orthopedics", []string{"Orthopedics"}},
		{"two", "General Medicine, Orthopedics", []string{"General Medicine", "Orthopedics"}},
		{"capped at two", "Neurology, Cardiology, Pediatrics", []string{"Neurology", "Cardiology"}},
		{"case and punctuation", "cardiology.", []string{"Cardiology"}},
		{"duplicates", "Gynecology, gynecology", []string{"Gynecology"}},
		{"unknown names skipped", "Dermatology, Pediatrics", []string{"Pediatrics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := (&fakeProvider{}).on(triageRule, tt.reply)
			svc := services.NewTriageService(newReasoner(provider))

			decision := svc.Classify(context.Background(), "some symptoms", false)

			var got []string
			for _, d := range decision.Departments {
				got = append(got, d.Name)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want[0], decision.Primary)
			assert.False(t, decision.Emergency)
			assert.Equal(t, entities.PriorityNormal, decision.Priority)
			assert.Equal(t, entities.TriageSourceReasoning, decision.Source)
		})
	}
}

func TestTriageService_PromptCarriesSymptoms(t *testing.T) {
	provider := (&fakeProvider{}).on(triageRule, "General Medicine")
	svc := services.NewTriageService(newReasoner(provider))

	svc.Classify(context.Background(), "fever, body pain", false)

	require.Equal(t, 1, provider.callCount())
	req := provider.calls[0]
	assert.Contains(t, req.System, `"fever, body pain"`)
	assert.Contains(t, req.System, "Cardiology, Neurology, Orthopedics, Pediatrics, Gynecology, General Medicine")
	assert.NotContains(t, req.System, "Available departments: Emergency")
	assert.Equal(t, 150, req.MaxTokens)
}

func TestTriageService_KeywordFallback(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		symptoms string
		want     string
	}{
		{"reply names emergency only", "Emergency", "knee pain and back pain", entities.DepartmentOrthopedics},
		{"reply names nothing known", "Dermatology", "fever and body pain", entities.DepartmentGeneralMedicine},
		{"empty reply", "", "baby has rash", entities.DepartmentPediatrics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := (&fakeProvider{}).on(triageRule, tt.reply)
			svc := services.NewTriageService(newReasoner(provider))

			decision := svc.Classify(context.Background(), tt.symptoms, false)
			assert.Equal(t, tt.want, decision.Primary)
			require.Len(t, decision.Departments, 1)
			assert.Equal(t, entities.TriageSourceKeywords, decision.Source)
		})
	}
}

func TestTriageService_ServiceDownIsDeterministic(t *testing.T) {
	svc := services.NewTriageService(newReasoner(downProvider()))

	first := svc.Classify(context.Background(), "leg pain", false)
	second := svc.Classify(context.Background(), "leg pain", false)

	assert.Equal(t, entities.DepartmentOrthopedics, first.Primary)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.Departments[0].Floor)
	assert.Equal(t, "Dr. Anil Verma", first.Departments[0].Doctor)
}

func TestTriageService_ScoreKeywords(t *testing.T) {
	svc := services.NewTriageService(newReasoner(downProvider()))

	tests := []struct {
		symptoms string
		want     string
	}{
		{"fever and body pain", entities.DepartmentGeneralMedicine},
		{"knee pain and back pain", entities.DepartmentOrthopedics},
		{"irregular periods", entities.DepartmentGynecology},
		{"migraine and dizziness", entities.DepartmentNeurology},
		{"heart and brain", entities.DepartmentCardiology},
		{"nothing relevant", entities.DepartmentGeneralMedicine},
		{"", entities.DepartmentGeneralMedicine},
	}

	for _, tt := range tests {
		t.Run(tt.symptoms, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ScoreKeywords(tt.symptoms))
		})
	}
}

func TestTriageService_ParseDepartments(t *testing.T) {
	svc := services.NewTriageService(nil)

	assert.Equal(t, []string{"General Medicine", "Orthopedics"},
		svc.ParseDepartments(`"General Medicine", Orthopedics, Cardiology`))
	assert.Empty(t, svc.ParseDepartments("Emergency, Emergency"))
	assert.Empty(t, svc.ParseDepartments(""))
	assert.Equal(t, []string{"Neurology"}, svc.ParseDepartments("Emergency, neurology, NEUROLOGY"))
}

func TestTriageService_AlwaysOneOrTwoDepartments(t *testing.T) {
	replies := []string{"", "x", "Cardiology", "Cardiology, Neurology, Orthopedics", "Emergency", ",,,"}
	symptoms := []string{"", "fever", "chest pain", "pregnancy and knee pain"}

	for _, reply := range replies {
		provider := (&fakeProvider{}).on(triageRule, reply)
		svc := services.NewTriageService(newReasoner(provider))
		for _, s := range symptoms {
			decision := svc.Classify(context.Background(), s, false)
			assert.GreaterOrEqual(t, len(decision.Departments), 1)
			assert.LessOrEqual(t, len(decision.Departments), 2)
			assert.Equal(t, decision.Departments[0].Name, decision.Primary)
			if decision.Emergency {
				assert.Equal(t, entities.PriorityHigh, decision.Priority)
			} else {
				assert.Equal(t, entities.PriorityNormal, decision.Priority)
			}
		}
	}
}
