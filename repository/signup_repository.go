package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AryanYadav09/Ecommerce/models"
)

// PendingSignupRepository stores registrations awaiting OTP confirmation.
// Entries expire with the OTP, so abandoned signups clean themselves up.
type PendingSignupRepository interface {
	Save(ctx context.Context, signup *models.PendingSignup, ttl time.Duration) error
	Find(ctx context.Context, email string) (*models.PendingSignup, error)
	Delete(ctx context.Context, email string) error
}

type RedisPendingSignupRepository struct {
	client *redis.Client
}

func NewRedisPendingSignupRepository(client *redis.Client) PendingSignupRepository {
	return &RedisPendingSignupRepository{client: client}
}

func (r *RedisPendingSignupRepository) getKey(email string) string {
	return fmt.Sprintf("signup:pending:%s", email)
}

func (r *RedisPendingSignupRepository) Save(ctx context.Context, signup *models.PendingSignup, ttl time.Duration) error {
	data, err := json.Marshal(signup)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(signup.Email), data, ttl).Err()
}

func (r *RedisPendingSignupRepository) Find(ctx context.Context, email string) (*models.PendingSignup, error) {
	data, err := r.client.Get(ctx, r.getKey(email)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var signup models.PendingSignup
	if err := json.Unmarshal([]byte(data), &signup); err != nil {
		return nil, err
	}
	return &signup, nil
}

func (r *RedisPendingSignupRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.getKey(email)).Err()
}
