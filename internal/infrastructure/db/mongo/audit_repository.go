package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

const eventsCollection = "auth_events"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(eventsCollection)}
}

type mongoAuthEvent struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Kind      string    `bson:"kind"`
	UserAgent string    `bson:"user_agent,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		ID:        event.ID,
		UserID:    event.UserID,
		Kind:      string(event.Kind),
		UserAgent: event.UserAgent,
		IP:        event.IP,
		CreatedAt: event.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) ListRecent(ctx context.Context, limit int64) ([]domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuthEvent
	for cur.Next(ctx) {
		var me mongoAuthEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, domain.AuthEvent{
			ID:        me.ID,
			UserID:    me.UserID,
			Kind:      domain.AuthEventKind(me.Kind),
			UserAgent: me.UserAgent,
			IP:        me.IP,
			CreatedAt: me.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}
