package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

func queuedPatient(id int64, status entities.PatientStatus) *entities.Patient {
	return &entities.Patient{
		ID:          id,
		Name:        "Ravi Kumar",
		Mobile:      "9876543210",
		Department:  entities.DepartmentCardiology,
		FloorNumber: 2,
		Language:    entities.LanguageEnglish,
		TokenNumber: 5,
		Status:      status,
	}
}

func TestQueueService_Call(t *testing.T) {
	repo := new(MockPatientRepository)
	sender := &recordingSender{configured: true}
	bus := &recordingBus{}
	svc := services.NewQueueService(repo, services.NewNotificationService(sender), bus)

	repo.On("UpdateStatus", mock.Anything, int64(9), entities.PatientStatusCalled).Return(nil)
	repo.On("GetByID", mock.Anything, int64(9)).Return(queuedPatient(9, entities.PatientStatusCalled), nil)

	sent, err := svc.Call(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, sent)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "VoiceByte: Token 5 called! Please come to Cardiology, Floor 2.", sender.sent[0].message)
	require.Len(t, bus.events, 1)
	assert.Equal(t, entities.QueueEventCalled, bus.events[0].Type)
	repo.AssertExpectations(t)
}

func TestQueueService_CallWithoutGateway(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := services.NewQueueService(repo, services.NewNotificationService(&recordingSender{}), nil)

	repo.On("UpdateStatus", mock.Anything, int64(3), entities.PatientStatusCalled).Return(nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(queuedPatient(3, entities.PatientStatusCalled), nil)

	sent, err := svc.Call(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestQueueService_CallUnknownPatient(t *testing.T) {
	repo := new(MockPatientRepository)
	sender := &recordingSender{configured: true}
	svc := services.NewQueueService(repo, services.NewNotificationService(sender), nil)

	repo.On("UpdateStatus", mock.Anything, int64(99), entities.PatientStatusCalled).Return(errors.New("not found"))

	_, err := svc.Call(context.Background(), 99)
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQueueService_Seen(t *testing.T) {
	repo := new(MockPatientRepository)
	sender := &recordingSender{configured: true}
	bus := &recordingBus{}
	svc := services.NewQueueService(repo, services.NewNotificationService(sender), bus)

	repo.On("UpdateStatus", mock.Anything, int64(2), entities.PatientStatusSeen).Return(nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(queuedPatient(2, entities.PatientStatusSeen), nil)

	require.NoError(t, svc.Seen(context.Background(), 2))
	assert.Empty(t, sender.sent, "seen sends no SMS")
	require.Len(t, bus.events, 1)
	assert.Equal(t, entities.QueueEventSeen, bus.events[0].Type)
}

func TestQueueService_Listings(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := services.NewQueueService(repo, services.NewNotificationService(nil), nil)

	today := []*entities.Patient{queuedPatient(1, entities.PatientStatusWaiting)}
	repo.On("ListByDay", mock.Anything, mock.AnythingOfType("time.Time")).Return(today, nil)
	repo.On("ListRecent", mock.Anything, services.RecentPatientsLimit).Return([]*entities.Patient{}, nil)
	repo.On("Stats", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(&entities.QueueStats{Total: 1, Waiting: 1, TopDepartment: entities.DepartmentCardiology}, nil)

	got, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, today, got)

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recent)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Waiting)
	assert.Equal(t, entities.DepartmentCardiology, stats.TopDepartment)

	repo.AssertExpectations(t)
}
