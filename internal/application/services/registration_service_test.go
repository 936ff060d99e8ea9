package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
)

var registrationNumberPattern = regexp.MustCompile(`^VBT-\d{8}-[0-9A-F]{3}$`)

type registrationFixture struct {
	repo   *MockPatientRepository
	tokens *MockTokenSequencer
	sender *recordingSender
	bus    *recordingBus
	svc    *services.RegistrationService
}

func newRegistrationFixture(triageReply string) *registrationFixture {
	f := &registrationFixture{
		repo:   new(MockPatientRepository),
		tokens: new(MockTokenSequencer),
		sender: &recordingSender{configured: true},
		bus:    &recordingBus{},
	}
	provider := (&fakeProvider{}).on(triageRule, triageReply)
	f.svc = services.NewRegistrationService(
		f.repo,
		f.tokens,
		services.NewTriageService(newReasoner(provider)),
		services.NewNotificationService(f.sender),
		f.bus,
	)
	return f
}

func TestRegistrationService_Register(t *testing.T) {
	f := newRegistrationFixture("Orthopedics")

	f.tokens.On("Next", mock.Anything, mock.AnythingOfType("time.Time")).Return(4, nil)
	var saved *entities.Patient
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Patient")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entities.Patient)
			saved.ID = 41
		}).
		Return(nil)

	res, err := f.svc.Register(context.Background(), &entities.IntakeRequest{
		Name:     "Ravi Kumar",
		Age:      "45",
		Mobile:   "9876543210",
		Symptoms: "leg pain",
		Days:     "2 days",
		Language: entities.LanguageTelugu,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.DepartmentOrthopedics, res.Department)
	assert.Equal(t, 1, res.Floor)
	assert.Equal(t, "First Floor", res.FloorWord)
	assert.Equal(t, "Dr. Anil Verma", res.Doctor)
	assert.Equal(t, []string{"leg pain"}, res.Keywords)
	assert.Equal(t, entities.PriorityNormal, res.Priority)
	assert.False(t, res.Emergency)
	assert.Equal(t, 4, res.TokenNumber)
	assert.Regexp(t, registrationNumberPattern, res.RegistrationNumber)
	require.Len(t, res.AllDepartments, 1)

	require.NotNil(t, saved)
	assert.Equal(t, entities.PatientStatusWaiting, saved.Status)
	assert.Equal(t, entities.LanguageTelugu, saved.Language)
	assert.Equal(t, res.RegistrationNumber, saved.RegistrationNumber)

	require.Len(t, f.sender.sent, 1)
	assert.Contains(t, f.sender.sent[0].message, "Token 4")
	assert.Contains(t, f.sender.sent[0].message, "pilavabadevvaraku")

	require.Len(t, f.bus.events, 1)
	assert.Equal(t, entities.QueueEventRegistered, f.bus.events[0].Type)
	assert.Equal(t, int64(41), f.bus.events[0].PatientID)

	f.repo.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestRegistrationService_EmergencySymptoms(t *testing.T) {
	f := newRegistrationFixture("General Medicine")

	f.tokens.On("Next", mock.Anything, mock.Anything).Return(1, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Patient) bool {
		return p.Emergency && p.Priority == entities.PriorityHigh && p.FloorNumber == 0
	})).Return(nil)

	res, err := f.svc.Register(context.Background(), &entities.IntakeRequest{
		Name:     "Patient",
		Mobile:   entities.MobileNotProvided,
		Symptoms: "chest pain, sweating",
		Language: entities.Language("Klingon"),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.DepartmentEmergency, res.Department)
	assert.True(t, res.Emergency)
	assert.Equal(t, entities.PriorityHigh, res.Priority)
	assert.Equal(t, []string{"chest pain", "sweating"}, res.Keywords)
	assert.Empty(t, f.sender.sent, "no SMS without a mobile number")
	f.repo.AssertExpectations(t)
}

func TestRegistrationService_Errors(t *testing.T) {
	t.Run("nil request", func(t *testing.T) {
		f := newRegistrationFixture("")
		_, err := f.svc.Register(context.Background(), nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("token allocation", func(t *testing.T) {
		f := newRegistrationFixture("Cardiology")
		f.tokens.On("Next", mock.Anything, mock.Anything).Return(0, errors.New("redis down"))

		_, err := f.svc.Register(context.Background(), &entities.IntakeRequest{Symptoms: "palpitation"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newRegistrationFixture("Cardiology")
		f.tokens.On("Next", mock.Anything, mock.Anything).Return(2, nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.svc.Register(context.Background(), &entities.IntakeRequest{Symptoms: "palpitation"})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		assert.Empty(t, f.sender.sent)
		assert.Empty(t, f.bus.events)
	})
}

func TestRegistrationService_EmptySymptomsKeywords(t *testing.T) {
	f := newRegistrationFixture("General Medicine")
	f.tokens.On("Next", mock.Anything, mock.Anything).Return(1, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.Register(context.Background(), &entities.IntakeRequest{})
	require.NoError(t, err)
	assert.NotNil(t, res.Keywords)
	assert.Empty(t, res.Keywords)
}

func TestRegistrationNumber(t *testing.T) {
	day := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	got := services.RegistrationNumber(day)
	assert.Regexp(t, `^VBT-20240309-[0-9A-F]{3}$`, got)
}
