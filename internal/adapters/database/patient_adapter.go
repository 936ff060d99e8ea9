package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
	"github.com/zatekoja/voicebyte/internal/domain/repositories"
	"github.com/zatekoja/voicebyte/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
)

//go:embed schema.sql
var schema string

const patientsTable = "patients"

// NoTopDepartment is reported when a day has no registrations.
const NoTopDepartment = "None"

var patientColumns = []interface{}{
	"id", "registration_number", "name", "age", "mobile", "symptoms_keywords",
	"days_suffering", "department", "floor_number", "floor_word", "emergency",
	"priority", "doctor", "language", "visit_time", "token_number", "status",
}

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	dbx    *sqlx.DB
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) *PatientAdapter {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		dbx:    sqlx.NewDb(client.DB(), "postgres"),
	}
}

var _ repositories.PatientRepository = (*PatientAdapter)(nil)

// Migrate creates the patients table if it does not exist.
func (a *PatientAdapter) Migrate(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, schema); err != nil {
		return apperrors.NewInternalError("failed to apply schema", err)
	}
	return nil
}

// Create stores a patient and sets its ID
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	record := goqu.Record{
		"registration_number": patient.RegistrationNumber,
		"name":                patient.Name,
		"age":                 patient.Age,
		"mobile":              patient.Mobile,
		"symptoms_keywords":   patient.Symptoms,
		"days_suffering":      patient.Days,
		"department":          patient.Department,
		"floor_number":        patient.FloorNumber,
		"floor_word":          patient.FloorWord,
		"emergency":           patient.Emergency,
		"priority":            string(patient.Priority),
		"doctor":              patient.Doctor,
		"language":            string(patient.Language),
		"visit_time":          patient.VisitTime,
		"token_number":        patient.TokenNumber,
		"status":              string(patient.Status),
	}

	query, args, err := a.db.Insert(patientsTable).Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&patient.ID); err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}
	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id int64) (*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From(patientsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient := &entities.Patient{}
	err = a.dbx.GetContext(ctx, patient, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}
	return patient, nil
}

// UpdateStatus changes a patient's queue status
func (a *PatientAdapter) UpdateStatus(ctx context.Context, id int64, status entities.PatientStatus) error {
	query, args, err := a.db.Update(patientsTable).
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %d not found", id))
	}
	return nil
}

// ListByDay returns one day's patients ordered by token number
func (a *PatientAdapter) ListByDay(ctx context.Context, day time.Time) ([]*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From(patientsTable).
		Where(onDay(day)).
		Order(goqu.I("token_number").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.list(ctx, query, args)
}

// ListRecent returns the newest patients first
func (a *PatientAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From(patientsTable).
		Order(goqu.I("id").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.list(ctx, query, args)
}

func (a *PatientAdapter) list(ctx context.Context, query string, args []interface{}) ([]*entities.Patient, error) {
	patients := []*entities.Patient{}
	if err := a.dbx.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	return patients, nil
}

// CountByDay returns how many patients registered on a day
func (a *PatientAdapter) CountByDay(ctx context.Context, day time.Time) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT(goqu.Star())).
		From(patientsTable).
		Where(onDay(day)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var n int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewInternalError("failed to count patients", err)
	}
	return n, nil
}

// Stats summarises one day's queue. Waiting is derived from the other
// counts so the four figures always add up.
func (a *PatientAdapter) Stats(ctx context.Context, day time.Time) (*entities.QueueStats, error) {
	query, args, err := a.db.Select(
		goqu.COUNT(goqu.Star()),
		goqu.L("COUNT(*) FILTER (WHERE emergency)"),
		goqu.L("COUNT(*) FILTER (WHERE status = ?)", string(entities.PatientStatusSeen)),
		goqu.L("COUNT(*) FILTER (WHERE status = ?)", string(entities.PatientStatusCalled)),
	).From(patientsTable).Where(onDay(day)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build stats query", err)
	}

	stats := &entities.QueueStats{}
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&stats.Total, &stats.Emergencies, &stats.Seen, &stats.Called,
	); err != nil {
		return nil, apperrors.NewInternalError("failed to get queue stats", err)
	}
	stats.Waiting = stats.Total - stats.Seen - stats.Called

	topQuery, topArgs, err := a.db.Select("department").
		From(patientsTable).
		Where(onDay(day)).
		GroupBy("department").
		Order(goqu.COUNT(goqu.Star()).Desc(), goqu.I("department").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build top department query", err)
	}

	err = a.client.DB().QueryRowContext(ctx, topQuery, topArgs...).Scan(&stats.TopDepartment)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stats.TopDepartment = NoTopDepartment
	case err != nil:
		return nil, apperrors.NewInternalError("failed to get top department", err)
	}
	return stats, nil
}

// onDay matches visit times within day's local calendar date.
func onDay(day time.Time) goqu.Expression {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return goqu.And(
		goqu.C("visit_time").Gte(start),
		goqu.C("visit_time").Lt(start.AddDate(0, 0, 1)),
	)
}
