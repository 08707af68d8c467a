package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noobmasters/feedcache/internal/cache"
	"github.com/noobmasters/feedcache/internal/feed"
	"github.com/noobmasters/feedcache/pkg/config"
)

// Consumer subscribes to the cache notification channel and feeds each
// event through the router. Delivery is at-least-once and unordered; the
// router's handlers are safe to re-apply, so the consumer does no
// dedup or retry of its own.
type Consumer struct {
	cache   *cache.Cache
	router  *feed.Router
	channel string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a new event consumer
func New(c *cache.Cache, router *feed.Router, cfg *config.ConsumerConfig, logger *zap.Logger) *Consumer {
	return &Consumer{
		cache:   c,
		router:  router,
		channel: cfg.Channel,
		timeout: cfg.HandleTimeout(),
		logger:  logger,
	}
}

// Run consumes events until the context is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	sub := c.cache.Subscribe(ctx, c.channel)
	if sub == nil {
		return fmt.Errorf("cache is disabled, cannot subscribe to %s", c.channel)
	}
	defer sub.Close()

	// Fail fast if the subscription could not be established
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.channel, err)
	}

	c.logger.Info("Consuming cache events", zap.String("channel", c.channel))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			c.consume(ctx, msg.Payload)
		}
	}
}

func (c *Consumer) consume(ctx context.Context, payload string) {
	var ev feed.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		c.logger.Warn("Dropping undecodable event", zap.Error(err))
		return
	}

	evCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outcomes := c.router.Handle(evCtx, ev)

	applied, failed := 0, 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Applied:
			applied++
		}
	}
	c.logger.Debug("Handled cache event",
		zap.String("kind", string(ev.Kind)),
		zap.Int("keys", len(outcomes)),
		zap.Int("applied", applied),
		zap.Int("failed", failed))
}
