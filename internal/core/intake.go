package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"patient-companion/pkg"
)

// Intake validates and records reported symptoms, temperatures and
// appointment requests, and evaluates the single-level recurrence rule that
// escalates the conversation script.
type Intake struct {
	gw  Gateway
	log *slog.Logger
}

// NewIntake constructs an Intake over the given gateway.
func NewIntake(gw Gateway, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{gw: gw, log: logger}
}

// RecordSymptom persists one symptom report and checks whether the agent
// should escalate. Escalation fires only when the text contains the cough
// keyword and the immediately preceding report for the same caller did too;
// a first-ever report never escalates. A failed recurrence lookup degrades
// to a plain success: the report is already durable at that point and the
// check is advisory.
func (i *Intake) RecordSymptom(ctx context.Context, symptom, phoneNumber string) (pkg.IntakeResult, error) {
	if strings.TrimSpace(symptom) == "" {
		return pkg.IntakeResult{}, fmt.Errorf("empty symptom: %w", ErrValidation)
	}
	report := pkg.SymptomReport{
		Symptom:     symptom,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
	if err := i.gw.SaveSymptom(ctx, report); err != nil {
		return pkg.IntakeResult{}, fmt.Errorf("save symptom: %w", err)
	}
	if strings.TrimSpace(phoneNumber) == "" || !containsKeyword(symptom) {
		return pkg.IntakeResult{}, nil
	}
	recurring, err := i.isRecurring(ctx, phoneNumber)
	if err != nil {
		i.log.Warn("recurrence check failed", "error", err)
		return pkg.IntakeResult{}, nil
	}
	if !recurring {
		return pkg.IntakeResult{}, nil
	}
	return pkg.IntakeResult{Escalate: true, Advisory: EscalationAdvisory}, nil
}

// isRecurring looks at the caller's history most-recent-first, skips the
// entry just written and reports whether the next one also contains the
// keyword.
func (i *Intake) isRecurring(ctx context.Context, phoneNumber string) (bool, error) {
	history, err := i.gw.SymptomHistory(ctx, phoneNumber, 2)
	if err != nil {
		return false, fmt.Errorf("symptom history: %w", err)
	}
	if len(history) < 2 {
		return false, nil
	}
	return containsKeyword(history[1].Symptom), nil
}

func containsKeyword(symptom string) bool {
	return strings.Contains(strings.ToLower(symptom), escalationKeyword)
}

// RecordTemperature persists one temperature reading. A zero value means
// the field was missing from the payload.
func (i *Intake) RecordTemperature(ctx context.Context, value float64, phoneNumber string) error {
	if value == 0 {
		return fmt.Errorf("missing temperature value: %w", ErrValidation)
	}
	reading := pkg.TemperatureReading{
		Value:       value,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
	if err := i.gw.SaveTemperature(ctx, reading); err != nil {
		return fmt.Errorf("save temperature: %w", err)
	}
	return nil
}

// ScheduleAppointment persists a free-text scheduling request.
func (i *Intake) ScheduleAppointment(ctx context.Context, note, phoneNumber string) error {
	if strings.TrimSpace(note) == "" {
		return fmt.Errorf("empty appointment note: %w", ErrValidation)
	}
	appt := pkg.Appointment{
		Note:        note,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
	if err := i.gw.SaveAppointment(ctx, appt); err != nil {
		return fmt.Errorf("save appointment: %w", err)
	}
	return nil
}
