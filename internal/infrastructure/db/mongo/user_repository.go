package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID            string    `bson:"_id"`
	Email         string    `bson:"email"`
	Name          string    `bson:"name,omitempty"`
	PasswordHash  string    `bson:"password_hash,omitempty"`
	Role          string    `bson:"role"`
	Provider      string    `bson:"provider"`
	ProviderID    string    `bson:"provider_id,omitempty"`
	AvatarURL     string    `bson:"avatar_url,omitempty"`
	Bio           string    `bson:"bio,omitempty"`
	EmailVerified bool      `bson:"email_verified"`
	LastLoginAt   time.Time `bson:"last_login_at,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByProviderID(ctx context.Context, providerID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"provider_id": providerID})
}

func (r *MongoUserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) LinkProvider(ctx context.Context, id, providerID, avatarURL string) (*domain.User, error) {
	set := bson.M{
		"provider":       string(domain.ProviderGoogle),
		"provider_id":    providerID,
		"email_verified": true,
	}
	if avatarURL != "" {
		set["avatar_url"] = avatarURL
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("link provider: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(&mu), nil
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		Role:          u.Role,
		Provider:      string(u.Provider),
		ProviderID:    u.ProviderID,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

func fromMongoUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:            mu.ID,
		Email:         mu.Email,
		Name:          mu.Name,
		PasswordHash:  mu.PasswordHash,
		Role:          mu.Role,
		Provider:      domain.AuthProvider(mu.Provider),
		ProviderID:    mu.ProviderID,
		AvatarURL:     mu.AvatarURL,
		Bio:           mu.Bio,
		EmailVerified: mu.EmailVerified,
		LastLoginAt:   mu.LastLoginAt,
		CreatedAt:     mu.CreatedAt,
	}
}
