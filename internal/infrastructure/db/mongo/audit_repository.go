package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository persists the security audit trail of the credential
// lifecycle: logins, logouts, forced logouts, and card issuance.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	ID         string `bson:"_id"`
	Kind       string `bson:"kind"`
	MemberID   string `bson:"member_id,omitempty"`
	Identifier string `bson:"identifier,omitempty"`
	Detail     string `bson:"detail,omitempty"`
	RemoteAddr string `bson:"remote_addr,omitempty"`
	At         int64  `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *ports.AuthEvent) error {
	doc := mongoAuthEvent{
		ID:         event.ID,
		Kind:       event.Kind,
		MemberID:   event.MemberID,
		Identifier: event.Identifier,
		Detail:     event.Detail,
		RemoteAddr: event.RemoteAddr,
		At:         event.At.UnixMilli(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// Recent returns the latest auth events, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int64) ([]ports.AuthEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find auth events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []ports.AuthEvent
	for cursor.Next(ctx) {
		var doc mongoAuthEvent
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, ports.AuthEvent{
			ID:         doc.ID,
			Kind:       doc.Kind,
			MemberID:   doc.MemberID,
			Identifier: doc.Identifier,
			Detail:     doc.Detail,
			RemoteAddr: doc.RemoteAddr,
			At:         time.UnixMilli(doc.At).UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate auth events: %w", err)
	}
	return events, nil
}

// CountByKind aggregates event counts per kind since the given time; used by
// the admin overview.
func (r *AuditRepository) CountByKind(ctx context.Context, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"at": bson.M{"$gte": since.UnixMilli()}}}},
		{{Key: "$group", Value: bson.M{"_id": "$kind", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate auth events: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Kind  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode aggregate row: %w", err)
		}
		counts[row.Kind] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregate rows: %w", err)
	}
	return counts, nil
}
