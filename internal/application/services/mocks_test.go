package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/pkg/retry"
)

// Mocks

// fakeProvider answers by the first rule whose key appears in the system
// prompt. Unmatched prompts fail.
type fakeProvider struct {
	mu    sync.Mutex
	rules []fakeRule
	calls []providers.CompletionRequest
}

type fakeRule struct {
	systemContains string
	reply          string
	err            error
}

func (f *fakeProvider) on(systemContains, reply string) *fakeProvider {
	f.rules = append(f.rules, fakeRule{systemContains: systemContains, reply: reply})
	return f
}

func (f *fakeProvider) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	for _, r := range f.rules {
		if strings.Contains(req.System, r.systemContains) {
			return r.reply, r.err
		}
	}
	return "", errors.New("503 service unavailable")
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// downProvider always fails.
func downProvider() *fakeProvider {
	return &fakeProvider{}
}

func testPolicy() retry.Config {
	cfg := retry.ReasoningPolicy(time.Second)
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

func newReasoner(p providers.ReasoningProvider) *services.ReasoningService {
	return services.NewReasoningService(p, testPolicy())
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id int64) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) UpdateStatus(ctx context.Context, id int64, status entities.PatientStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPatientRepository) ListByDay(ctx context.Context, day time.Time) ([]*entities.Patient, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Patient, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) CountByDay(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *MockPatientRepository) Stats(ctx context.Context, day time.Time) (*entities.QueueStats, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.QueueStats), args.Error(1)
}

type MockTokenSequencer struct {
	mock.Mock
}

func (m *MockTokenSequencer) Next(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type recordingSender struct {
	configured bool
	err        error
	sent       []sentSMS
}

type sentSMS struct {
	mobile  string
	message string
}

func (s *recordingSender) Send(ctx context.Context, mobile, message string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentSMS{mobile: mobile, message: message})
	return nil
}

func (s *recordingSender) IsConfigured() bool { return s.configured }

type recordingBus struct {
	mu     sync.Mutex
	events []*entities.QueueEvent
}

func (b *recordingBus) Publish(ctx context.Context, channel string, event *entities.QueueEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error) {
	return nil, errors.New("not supported")
}

func (b *recordingBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *recordingBus) Close() error { return nil }
