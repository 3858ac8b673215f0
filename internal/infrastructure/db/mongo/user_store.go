package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/identity-service/internal/core/domain"
)

const (
	usersCollection = "credential_store"
	usersDocID      = "users"
)

// UserStore persists the whole user collection as a single document, so a
// Save is one atomic ReplaceOne and the load/save contract maps directly onto
// the driver. A missing document reads as an empty collection.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID        string      `bson:"_id"`
	Records   []mongoUser `bson:"records"`
	UpdatedAt int64       `bson:"updated_at"`
}

type mongoUser struct {
	ID           string `bson:"id"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone,omitempty"`
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash,omitempty"`
	GoogleID     string `bson:"google_id,omitempty"`
	FacebookID   string `bson:"facebook_id,omitempty"`
	GithubID     string `bson:"github_id,omitempty"`
	ResetCode    string `bson:"reset_code,omitempty"`
	ResetExpiry  int64  `bson:"reset_expiry,omitempty"`
	CreatedAt    int64  `bson:"created_at"`
}

func (s *UserStore) Load(ctx context.Context) ([]domain.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": usersDocID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}

	users := make([]domain.User, 0, len(doc.Records))
	for _, mu := range doc.Records {
		users = append(users, domain.User{
			ID:           mu.ID,
			Email:        mu.Email,
			Phone:        mu.Phone,
			Username:     mu.Username,
			PasswordHash: mu.PasswordHash,
			GoogleID:     mu.GoogleID,
			FacebookID:   mu.FacebookID,
			GithubID:     mu.GithubID,
			ResetCode:    mu.ResetCode,
			ResetExpiry:  unixToTime(mu.ResetExpiry),
			CreatedAt:    unixToTime(mu.CreatedAt),
		})
	}
	return users, nil
}

func (s *UserStore) Save(ctx context.Context, users []domain.User) error {
	doc := userDoc{
		ID:        usersDocID,
		Records:   make([]mongoUser, 0, len(users)),
		UpdatedAt: time.Now().Unix(),
	}
	for _, u := range users {
		doc.Records = append(doc.Records, mongoUser{
			ID:           u.ID,
			Email:        u.Email,
			Phone:        u.Phone,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			GoogleID:     u.GoogleID,
			FacebookID:   u.FacebookID,
			GithubID:     u.GithubID,
			ResetCode:    u.ResetCode,
			ResetExpiry:  timeToUnix(u.ResetExpiry),
			CreatedAt:    timeToUnix(u.CreatedAt),
		})
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": usersDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
