package core

import (
	"context"

	"patient-companion/pkg"
)

// Gateway is the persistence surface the core components consume. The
// production implementation lives in internal/db; tests substitute a fake.
//
// Phone-number normalization is owned entirely by the implementation: core
// components pass caller identifiers through untouched and may rely on both
// "1555" and "+1555" addressing the same records.
type Gateway interface {
	// EnsureCaller atomically finds or creates the caller for a phone
	// number. created reports whether a new record was written; a freshly
	// created caller carries pkg.PlaceholderName.
	EnsureCaller(ctx context.Context, phoneNumber string) (pkg.Caller, bool, error)

	// FindCaller returns the most recently written caller record for the
	// number, or ErrNotFound.
	FindCaller(ctx context.Context, phoneNumber string) (*pkg.Caller, error)

	// RenameCaller updates the stored name for every record matching the
	// number. ErrNotFound when the number has never been seen.
	RenameCaller(ctx context.Context, phoneNumber, name string) error

	// SaveSymptom appends a report. Reports are never updated or deleted.
	SaveSymptom(ctx context.Context, report pkg.SymptomReport) error

	// LatestSymptom returns the most recent report for a number, or the
	// most recent report overall when the number is empty. ErrNotFound when
	// nothing is on record.
	LatestSymptom(ctx context.Context, phoneNumber string) (*pkg.SymptomReport, error)

	// SymptomHistory returns up to limit reports for a number, most recent
	// first. limit <= 0 means no limit.
	SymptomHistory(ctx context.Context, phoneNumber string, limit int64) ([]pkg.SymptomReport, error)

	SaveTemperature(ctx context.Context, reading pkg.TemperatureReading) error
	SaveAppointment(ctx context.Context, appt pkg.Appointment) error
}
