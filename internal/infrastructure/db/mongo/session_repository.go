package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

const sessionsCollection = "refresh_sessions"

type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	UserAgent string    `bson:"user_agent,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.RefreshSession) error {
	doc := mongoSession{
		ID:        session.ID,
		Token:     session.Token,
		UserID:    session.UserID,
		UserAgent: session.UserAgent,
		IP:        session.IP,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshSession, error) {
	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.RefreshSession{
		ID:        ms.ID,
		Token:     ms.Token,
		UserID:    ms.UserID,
		UserAgent: ms.UserAgent,
		IP:        ms.IP,
		ExpiresAt: ms.ExpiresAt,
		CreatedAt: ms.CreatedAt,
	}, nil
}

func (r *MongoSessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"token": token})
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return res.DeletedCount, nil
}
