package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/internal/domain/repositories"
)

// RecentPatientsLimit caps the patient listing.
const RecentPatientsLimit = 100

// QueueService backs the doctor-facing queue dashboard.
type QueueService struct {
	repo     repositories.PatientRepository
	notifier Notifier
	events   providers.EventBus
	now      func() time.Time
}

// NewQueueService creates a queue service. events may be nil.
func NewQueueService(repo repositories.PatientRepository, notifier Notifier, events providers.EventBus) *QueueService {
	return &QueueService{repo: repo, notifier: notifier, events: events, now: time.Now}
}

// Today returns today's patients ordered by token.
func (s *QueueService) Today(ctx context.Context) ([]*entities.Patient, error) {
	return s.repo.ListByDay(ctx, s.now())
}

// Recent returns the latest registrations, newest first.
func (s *QueueService) Recent(ctx context.Context) ([]*entities.Patient, error) {
	return s.repo.ListRecent(ctx, RecentPatientsLimit)
}

// Call marks a patient as called and sends the "called" SMS. It reports
// whether the SMS was sent.
func (s *QueueService) Call(ctx context.Context, id int64) (bool, error) {
	patient, err := s.transition(ctx, id, entities.PatientStatusCalled)
	if err != nil {
		return false, err
	}

	sent := s.notifier.Notify(ctx, entities.Notification{
		Type:       entities.NotificationCalled,
		Mobile:     patient.Mobile,
		Token:      patient.TokenNumber,
		Department: patient.Department,
		Floor:      patient.FloorNumber,
		Language:   patient.Language,
	})
	publishQueueEvent(ctx, s.events, entities.QueueEventCalled, patient, s.now())
	return sent, nil
}

// Seen marks a patient's visit as complete.
func (s *QueueService) Seen(ctx context.Context, id int64) error {
	patient, err := s.transition(ctx, id, entities.PatientStatusSeen)
	if err != nil {
		return err
	}
	publishQueueEvent(ctx, s.events, entities.QueueEventSeen, patient, s.now())
	return nil
}

// Stats summarises today's queue.
func (s *QueueService) Stats(ctx context.Context) (*entities.QueueStats, error) {
	return s.repo.Stats(ctx, s.now())
}

func (s *QueueService) transition(ctx context.Context, id int64, status entities.PatientStatus) (*entities.Patient, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("patient_id", id).Str("status", string(status)).Msg("queue status changed")
	return patient, nil
}
