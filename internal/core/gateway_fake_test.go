package core_test

import (
	"context"
	"time"

	"patient-companion/internal/core"
	"patient-companion/internal/db"
	"patient-companion/pkg"
)

// fakeGateway is an in-memory core.Gateway. It normalizes phone numbers
// with the same rule as the production gateway so tests exercise the real
// identity-key behavior.
type fakeGateway struct {
	callers      map[string]pkg.Caller
	symptoms     []pkg.SymptomReport // append order, oldest first
	temperatures []pkg.TemperatureReading
	appointments []pkg.Appointment

	ensureErr  error
	saveErr    error
	historyErr error

	historyCalls int
}

var _ core.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{callers: map[string]pkg.Caller{}}
}

func (f *fakeGateway) EnsureCaller(_ context.Context, phoneNumber string) (pkg.Caller, bool, error) {
	if f.ensureErr != nil {
		return pkg.Caller{}, false, f.ensureErr
	}
	key := db.NormalizePhone(phoneNumber)
	if c, ok := f.callers[key]; ok {
		return c, false, nil
	}
	c := pkg.Caller{PhoneNumber: key, Name: pkg.PlaceholderName, CreatedAt: time.Now().UTC()}
	f.callers[key] = c
	return c, true, nil
}

func (f *fakeGateway) FindCaller(_ context.Context, phoneNumber string) (*pkg.Caller, error) {
	if c, ok := f.callers[db.NormalizePhone(phoneNumber)]; ok {
		return &c, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeGateway) RenameCaller(_ context.Context, phoneNumber, name string) error {
	key := db.NormalizePhone(phoneNumber)
	c, ok := f.callers[key]
	if !ok {
		return core.ErrNotFound
	}
	c.Name = name
	f.callers[key] = c
	return nil
}

func (f *fakeGateway) SaveSymptom(_ context.Context, report pkg.SymptomReport) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	report.PhoneNumber = db.NormalizePhone(report.PhoneNumber)
	f.symptoms = append(f.symptoms, report)
	return nil
}

func (f *fakeGateway) LatestSymptom(_ context.Context, phoneNumber string) (*pkg.SymptomReport, error) {
	key := db.NormalizePhone(phoneNumber)
	for i := len(f.symptoms) - 1; i >= 0; i-- {
		if key == "" || f.symptoms[i].PhoneNumber == key {
			report := f.symptoms[i]
			return &report, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeGateway) SymptomHistory(_ context.Context, phoneNumber string, limit int64) ([]pkg.SymptomReport, error) {
	f.historyCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	key := db.NormalizePhone(phoneNumber)
	var history []pkg.SymptomReport
	for i := len(f.symptoms) - 1; i >= 0; i-- {
		if f.symptoms[i].PhoneNumber == key {
			history = append(history, f.symptoms[i])
			if limit > 0 && int64(len(history)) == limit {
				break
			}
		}
	}
	return history, nil
}

func (f *fakeGateway) SaveTemperature(_ context.Context, reading pkg.TemperatureReading) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	reading.PhoneNumber = db.NormalizePhone(reading.PhoneNumber)
	f.temperatures = append(f.temperatures, reading)
	return nil
}

func (f *fakeGateway) SaveAppointment(_ context.Context, appt pkg.Appointment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	appt.PhoneNumber = db.NormalizePhone(appt.PhoneNumber)
	f.appointments = append(f.appointments, appt)
	return nil
}
