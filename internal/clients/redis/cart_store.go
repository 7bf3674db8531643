package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/cart"
	"github.com/yungbote/storefront-backend/internal/logger"
)

// CartStore is the durable side of the cart: per-user JSON snapshots plus a
// pub/sub channel so other instances learn about writes and can reconcile.
type CartStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Save(ctx context.Context, userID uuid.UUID, items []cart.Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
	// StartForwarder delivers snapshots published by OTHER instances; writes
	// made through this store are filtered out by origin id.
	StartForwarder(ctx context.Context, onSnapshot func(userID uuid.UUID, items []cart.Item)) error
	Close() error
}

type cartSnapshotMessage struct {
	Origin string      `json:"origin"`
	UserID uuid.UUID   `json:"user_id"`
	Items  []cart.Item `json:"items"`
}

type cartStore struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
	origin  string
}

func NewCartStore(log *logger.Logger, addr, channel string) (CartStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	if channel == "" {
		channel = "cart_snapshots"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cartStore{
		log:     log.With("service", "RedisCartStore"),
		rdb:     rdb,
		channel: channel,
		origin:  uuid.New().String(),
	}, nil
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

func (s *cartStore) Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	raw, err := s.rdb.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}

func (s *cartStore) Save(ctx context.Context, userID uuid.UUID, items []cart.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	s.publish(ctx, userID, items)
	return nil
}

func (s *cartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	s.publish(ctx, userID, nil)
	return nil
}

func (s *cartStore) publish(ctx context.Context, userID uuid.UUID, items []cart.Item) {
	msg := cartSnapshotMessage{Origin: s.origin, UserID: userID, Items: items}
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, s.channel, raw).Err(); err != nil {
		s.log.Warn("Failed to publish cart snapshot", "error", err)
	}
}

func (s *cartStore) StartForwarder(ctx context.Context, onSnapshot func(userID uuid.UUID, items []cart.Item)) error {
	if onSnapshot == nil {
		return fmt.Errorf("onSnapshot callback required")
	}

	sub := s.rdb.Subscribe(ctx, s.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var msg cartSnapshotMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					s.log.Warn("Dropping malformed cart snapshot", "error", err)
					continue
				}
				if msg.Origin == s.origin {
					continue
				}
				onSnapshot(msg.UserID, msg.Items)
			}
		}
	}()
	return nil
}

func (s *cartStore) Close() error {
	return s.rdb.Close()
}
