package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	revokedTokenPrefix = "revoked_token:"
	userTokensPrefix   = "user_tokens:"
)

// IRedis keeps the set of access tokens revoked by logout. Entries expire
// together with the token they describe. Issued tokens are tracked per user so
// that all of them can be revoked at once.
type IRedis interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	TrackToken(ctx context.Context, userID int64, tokenID string, ttl time.Duration) error
	RevokeUserTokens(ctx context.Context, userID int64, ttl time.Duration) error
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(log *logrus.Logger, addr string, password string, db int) IRedis {
	log.Infof("Connecting to Redis at %s...", addr)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Errorf("Failed to connect to Redis: %v", err)
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, log: log}
}

func (r *redisClient) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		r.log.WithFields(logrus.Fields{
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error revoking token")
		return err
	}

	return nil
}

func (r *redisClient) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		r.log.WithFields(logrus.Fields{
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error checking token revocation")
		return false, err
	}

	return true, nil
}

func userTokensKey(userID int64) string {
	return userTokensPrefix + strconv.FormatInt(userID, 10)
}

// TrackToken records tokenID as issued to userID. The set lives as long as the
// newest token in it.
func (r *redisClient) TrackToken(ctx context.Context, userID int64, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := userTokensKey(userID)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, tokenID)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.WithFields(logrus.Fields{
			"user_id":  userID,
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error tracking token")
		return err
	}
	return nil
}

// RevokeUserTokens revokes every tracked token of userID for ttl, which must
// cover the longest token lifetime.
func (r *redisClient) RevokeUserTokens(ctx context.Context, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := userTokensKey(userID)
	tokenIDs, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Error listing user tokens")
		return err
	}

	pipe := r.client.TxPipeline()
	for _, tokenID := range tokenIDs {
		pipe.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Error revoking user tokens")
		return err
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
