package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// PatientRepository defines the interface for patient registry operations
type PatientRepository interface {
	// Create stores a patient and sets its ID
	Create(ctx context.Context, patient *entities.Patient) error

	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id int64) (*entities.Patient, error)

	// UpdateStatus changes a patient's queue status
	UpdateStatus(ctx context.Context, id int64, status entities.PatientStatus) error

	// ListByDay returns one day's patients ordered by token number
	ListByDay(ctx context.Context, day time.Time) ([]*entities.Patient, error)

	// ListRecent returns the newest patients first
	ListRecent(ctx context.Context, limit int) ([]*entities.Patient, error)

	// CountByDay returns how many patients registered on a day
	CountByDay(ctx context.Context, day time.Time) (int, error)

	// Stats summarises one day's queue
	Stats(ctx context.Context, day time.Time) (*entities.QueueStats, error)
}
