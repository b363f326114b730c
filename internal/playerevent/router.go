// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// DefaultTopic is the topic player events are published on.
const DefaultTopic = "playback.player"

// RouterConfig holds configuration for the Watermill Router.
type RouterConfig struct {
	// Topic to consume player events from.
	Topic string

	// CloseTimeout is how long to wait for the handler to finish when closing.
	CloseTimeout time.Duration

	// HandlerName identifies the consumer handler in router logs.
	HandlerName string
}

// DefaultRouterConfig returns defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Topic:        DefaultTopic,
		CloseTimeout: 30 * time.Second,
		HandlerName:  "coverage-consumer",
	}
}

// NewRouter creates a Watermill Router that feeds messages from sub into consumer.
// Handler panics are recovered and reported as errors. Messages are never
// retried since every failure the consumer reports is permanent.
func NewRouter(
	cfg RouterConfig,
	sub message.Subscriber,
	consumer *Consumer,
	logger watermill.LoggerAdapter,
) (*message.Router, error) {
	if sub == nil {
		return nil, ErrNilSubscriber
	}
	if consumer == nil {
		return nil, ErrNilConsumer
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	defaults := DefaultRouterConfig()
	if cfg.Topic == "" {
		cfg.Topic = defaults.Topic
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = defaults.CloseTimeout
	}
	if cfg.HandlerName == "" {
		cfg.HandlerName = defaults.HandlerName
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	router.AddConsumerHandler(cfg.HandlerName, cfg.Topic, sub, consumer.Handle)

	return router, nil
}

// Publish serializes events and publishes them to topic in order.
func Publish(pub message.Publisher, topic string, events ...*Event) error {
	serializer := NewSerializer()
	for _, e := range events {
		data, err := serializer.Marshal(e)
		if err != nil {
			return err
		}
		id := e.EventID
		if id == "" {
			id = watermill.NewUUID()
		}
		if err := pub.Publish(topic, message.NewMessage(id, data)); err != nil {
			return fmt.Errorf("publish event: %w", err)
		}
	}
	return nil
}
