package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/internal/domain/repositories"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
)

// Classifier decides the department for symptom text
type Classifier interface {
	Classify(ctx context.Context, symptoms string, emergency bool) entities.TriageDecision
}

// Notifier sends patient SMS messages
type Notifier interface {
	Notify(ctx context.Context, msg entities.Notification) bool
}

// RegistrationService turns a completed intake into a queued patient.
type RegistrationService struct {
	repo     repositories.PatientRepository
	tokens   providers.TokenSequencer
	triage   Classifier
	notifier Notifier
	events   providers.EventBus
	now      func() time.Time
}

// NewRegistrationService creates a registration service. events may be nil.
func NewRegistrationService(
	repo repositories.PatientRepository,
	tokens providers.TokenSequencer,
	triage Classifier,
	notifier Notifier,
	events providers.EventBus,
) *RegistrationService {
	return &RegistrationService{
		repo:     repo,
		tokens:   tokens,
		triage:   triage,
		notifier: notifier,
		events:   events,
		now:      time.Now,
	}
}

// Register classifies, stores and notifies a patient.
func (s *RegistrationService) Register(ctx context.Context, req *entities.IntakeRequest) (*entities.RegistrationResult, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("intake request is required")
	}

	emergency := req.Emergency
	if _, hit := entities.MatchEmergencyKeyword(req.Symptoms); hit {
		emergency = true
	}

	decision := s.triage.Classify(ctx, req.Symptoms, emergency)
	primary := decision.PrimaryEntry()
	lang := entities.LanguageOrDefault(string(req.Language))
	now := s.now()

	token, err := s.tokens.Next(ctx, now)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to allocate token", err)
	}

	patient := &entities.Patient{
		RegistrationNumber: RegistrationNumber(now),
		Name:               req.Name,
		Age:                req.Age,
		Mobile:             req.Mobile,
		Symptoms:           req.Symptoms,
		Days:               req.Days,
		Department:         primary.Name,
		FloorNumber:        primary.Floor,
		FloorWord:          primary.FloorWord,
		Emergency:          decision.Emergency,
		Priority:           decision.Priority,
		Doctor:             primary.Doctor,
		Language:           lang,
		VisitTime:          now,
		TokenNumber:        token,
		Status:             entities.PatientStatusWaiting,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.NewInternalError("failed to save patient", err)
	}

	log.Info().
		Str("registration_number", patient.RegistrationNumber).
		Int("token", token).
		Str("department", patient.Department).
		Bool("emergency", patient.Emergency).
		Msg("patient registered")

	s.notifier.Notify(ctx, entities.Notification{
		Type:       entities.NotificationRegistration,
		Mobile:     patient.Mobile,
		Token:      token,
		Department: patient.Department,
		Floor:      patient.FloorNumber,
		Language:   lang,
	})
	publishQueueEvent(ctx, s.events, entities.QueueEventRegistered, patient, now)

	return &entities.RegistrationResult{
		Department:         primary.Name,
		Floor:              primary.Floor,
		FloorWord:          primary.FloorWord,
		Doctor:             primary.Doctor,
		Keywords:           symptomKeywords(req.Symptoms),
		Days:               req.Days,
		Priority:           decision.Priority,
		RegistrationNumber: patient.RegistrationNumber,
		Emergency:          decision.Emergency,
		TokenNumber:        token,
		AllDepartments:     decision.Departments,
	}, nil
}

// RegistrationNumber formats VBT-YYYYMMDD-XXX with three random hex digits.
func RegistrationNumber(day time.Time) string {
	return fmt.Sprintf("VBT-%s-%s", day.Format("20060102"), strings.ToUpper(uuid.New().String()[:3]))
}

func symptomKeywords(symptoms string) []string {
	keywords := splitTerms(symptoms)
	if keywords == nil {
		return []string{}
	}
	return keywords
}

func publishQueueEvent(ctx context.Context, bus providers.EventBus, typ entities.QueueEventType, p *entities.Patient, at time.Time) {
	if bus == nil {
		return
	}
	event := &entities.QueueEvent{
		ID:          uuid.New().String(),
		Type:        typ,
		PatientID:   p.ID,
		TokenNumber: p.TokenNumber,
		Department:  p.Department,
		Emergency:   p.Emergency,
		Timestamp:   at.UTC(),
	}
	if err := bus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
		log.Warn().Err(err).Str("type", string(typ)).Msg("failed to publish queue event")
	}
}
