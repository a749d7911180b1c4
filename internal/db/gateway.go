package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patient-companion/internal/core"
	"patient-companion/pkg"
)

// Collection names inside the patient companion database.
const (
	CallersCollection      = "callers"
	SymptomsCollection     = "symptoms"
	TemperaturesCollection = "temperatures"
	AppointmentsCollection = "appointments"
)

// Gateway implements core.Gateway over a MongoDB database. Every operation
// is an independent insert or point lookup; there are no cross-collection
// transactions. The caller owns the client lifecycle.
type Gateway struct {
	callers      *mongo.Collection
	symptoms     *mongo.Collection
	temperatures *mongo.Collection
	appointments *mongo.Collection
	log          *slog.Logger
}

// NewGateway constructs a Gateway from an existing database handle.
func NewGateway(database *mongo.Database, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		callers:      database.Collection(CallersCollection),
		symptoms:     database.Collection(SymptomsCollection),
		temperatures: database.Collection(TemperaturesCollection),
		appointments: database.Collection(AppointmentsCollection),
		log:          logger,
	}
}

// NormalizePhone is the single normalization rule for caller identifiers:
// trim surrounding whitespace and ensure a leading "+". It is applied to
// every phone argument at this boundary and nowhere else.
func NormalizePhone(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "+") {
		p = "+" + p
	}
	return p
}

// storeErr wraps a driver failure so callers can classify it with
// errors.Is(err, core.ErrPersistence) while the original cause stays in the
// message for the logs.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, core.ErrPersistence)
}

// EnsureCaller atomically finds or creates the caller record for a phone
// number. The upsert is keyed on the normalized number, so two concurrent
// first contacts cannot both insert. When legacy duplicates exist the most
// recently created record wins.
func (g *Gateway) EnsureCaller(ctx context.Context, phoneNumber string) (pkg.Caller, bool, error) {
	key := NormalizePhone(phoneNumber)
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"phone_number": key,
		"name":         pkg.PlaceholderName,
		"created_at":   now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	res := g.callers.FindOneAndUpdate(ctx, bson.M{"phone_number": key}, update, opts)

	var caller pkg.Caller
	err := res.Decode(&caller)
	switch {
	case err == nil:
		return caller, false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		// No prior document: the upsert inserted one.
		g.log.Info("caller created", "phone_number", key)
		return pkg.Caller{PhoneNumber: key, Name: pkg.PlaceholderName, CreatedAt: now}, true, nil
	default:
		return pkg.Caller{}, false, storeErr("ensure caller", err)
	}
}

// FindCaller returns the most recently written record for a number.
func (g *Gateway) FindCaller(ctx context.Context, phoneNumber string) (*pkg.Caller, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var caller pkg.Caller
	err := g.callers.FindOne(ctx, bson.M{"phone_number": NormalizePhone(phoneNumber)}, opts).Decode(&caller)
	switch {
	case err == nil:
		return &caller, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, core.ErrNotFound
	default:
		return nil, storeErr("find caller", err)
	}
}

// RenameCaller updates the stored name on every record for the number, so a
// legacy duplicate cannot resurface the old name later.
func (g *Gateway) RenameCaller(ctx context.Context, phoneNumber, name string) error {
	res, err := g.callers.UpdateMany(ctx,
		bson.M{"phone_number": NormalizePhone(phoneNumber)},
		bson.M{"$set": bson.M{"name": name}},
	)
	if err != nil {
		return storeErr("rename caller", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

// SaveSymptom appends one report to the symptoms collection.
func (g *Gateway) SaveSymptom(ctx context.Context, report pkg.SymptomReport) error {
	report.PhoneNumber = NormalizePhone(report.PhoneNumber)
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if _, err := g.symptoms.InsertOne(ctx, report); err != nil {
		return storeErr("save symptom", err)
	}
	return nil
}

// LatestSymptom returns the most recent report for a number, or the most
// recent report overall when the number is empty.
func (g *Gateway) LatestSymptom(ctx context.Context, phoneNumber string) (*pkg.SymptomReport, error) {
	filter := bson.M{}
	if key := NormalizePhone(phoneNumber); key != "" {
		filter["phone_number"] = key
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var report pkg.SymptomReport
	err := g.symptoms.FindOne(ctx, filter, opts).Decode(&report)
	switch {
	case err == nil:
		return &report, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, core.ErrNotFound
	default:
		return nil, storeErr("latest symptom", err)
	}
}

// SymptomHistory returns up to limit reports for a number, most recent
// first.
func (g *Gateway) SymptomHistory(ctx context.Context, phoneNumber string, limit int64) ([]pkg.SymptomReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := g.symptoms.Find(ctx, bson.M{"phone_number": NormalizePhone(phoneNumber)}, opts)
	if err != nil {
		return nil, storeErr("symptom history", err)
	}
	defer cursor.Close(ctx)
	var history []pkg.SymptomReport
	if err := cursor.All(ctx, &history); err != nil {
		return nil, storeErr("symptom history", err)
	}
	return history, nil
}

// SaveTemperature appends one reading to the temperatures collection.
func (g *Gateway) SaveTemperature(ctx context.Context, reading pkg.TemperatureReading) error {
	reading.PhoneNumber = NormalizePhone(reading.PhoneNumber)
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now().UTC()
	}
	if _, err := g.temperatures.InsertOne(ctx, reading); err != nil {
		return storeErr("save temperature", err)
	}
	return nil
}

// SaveAppointment appends one scheduling request to the appointments
// collection.
func (g *Gateway) SaveAppointment(ctx context.Context, appt pkg.Appointment) error {
	appt.PhoneNumber = NormalizePhone(appt.PhoneNumber)
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}
	if _, err := g.appointments.InsertOne(ctx, appt); err != nil {
		return storeErr("save appointment", err)
	}
	return nil
}
