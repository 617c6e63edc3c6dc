package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sindauto/agendamento/internal/models"
	"github.com/sindauto/agendamento/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingHistory is the append-only list of confirmed bookings
type BookingHistory interface {
	Append(ctx context.Context, record models.BookingRecord) error
	// FindLatestByCPF returns the newest record of a normalized CPF, or models.ErrBookingNotFound
	FindLatestByCPF(ctx context.Context, cpf string) (*models.BookingRecord, error)
	// ListBetween returns records with start <= date < end, ordered by date then time
	ListBetween(ctx context.Context, start, end string) ([]models.BookingRecord, error)
}

// MongoBookingHistory stores the history in a MongoDB collection
type MongoBookingHistory struct {
	collection *mongo.Collection
}

// NewMongoBookingHistory creates a history backed by collection
func NewMongoBookingHistory(collection *mongo.Collection) *MongoBookingHistory {
	return &MongoBookingHistory{collection: collection}
}

// Append inserts record. Records are never updated afterwards.
func (h *MongoBookingHistory) Append(ctx context.Context, record models.BookingRecord) error {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "insert", h.collection.Name())
	defer cleanup()

	if _, err := h.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to append booking record: %w", err)
	}
	return nil
}

// FindLatestByCPF implements BookingHistory
func (h *MongoBookingHistory) FindLatestByCPF(ctx context.Context, cpf string) (*models.BookingRecord, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find_one", h.collection.Name())
	defer cleanup()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var record models.BookingRecord
	err := h.collection.FindOne(ctx, bson.M{"cpf": cpf}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking record: %w", err)
	}
	return &record, nil
}

// ListBetween implements BookingHistory
func (h *MongoBookingHistory) ListBetween(ctx context.Context, start, end string) ([]models.BookingRecord, error) {
	ctx, _, cleanup := utils.TraceDatabaseOperation(ctx, "find", h.collection.Name())
	defer cleanup()

	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cursor, err := h.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.BookingRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode booking records: %w", err)
	}
	return records, nil
}

// MemoryBookingHistory keeps the history in process memory. It backs local
// development without MongoDB and the tests.
type MemoryBookingHistory struct {
	mu      sync.RWMutex
	records []models.BookingRecord
}

// NewMemoryBookingHistory creates an empty in-memory history
func NewMemoryBookingHistory() *MemoryBookingHistory {
	return &MemoryBookingHistory{}
}

// Append implements BookingHistory
func (h *MemoryBookingHistory) Append(_ context.Context, record models.BookingRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

// FindLatestByCPF implements BookingHistory
func (h *MemoryBookingHistory) FindLatestByCPF(_ context.Context, cpf string) (*models.BookingRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var latest *models.BookingRecord
	for i := range h.records {
		r := h.records[i]
		if r.CPF != cpf {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, models.ErrBookingNotFound
	}
	return latest, nil
}

// ListBetween implements BookingHistory
func (h *MemoryBookingHistory) ListBetween(_ context.Context, start, end string) ([]models.BookingRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := []models.BookingRecord{}
	for _, r := range h.records {
		if r.Date >= start && r.Date < end {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out, nil
}

// Len returns the number of stored records
func (h *MemoryBookingHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

func sortRecords(records []models.BookingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Time < records[j].Time
	})
}
