package nsq

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/kidtrack/internal/pkg/logger"
)

// ErrPoisonMessage marks a message that can never be processed. It is
// finished instead of requeued.
var ErrPoisonMessage = errors.New("poison message")

// MessageHandler is a function that processes NSQ messages
type MessageHandler func(message []byte) error

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
}

// NewConsumer creates a consumer for a topic/channel. Connect it with
// ConnectToNSQD or ConnectToLookupd.
func NewConsumer(topic, channel string, maxInFlight int, handler MessageHandler) (*Consumer, error) {
	config := nsq.NewConfig()
	if maxInFlight > 0 {
		config.MaxInFlight = maxInFlight
	}

	consumer, err := nsq.NewConsumer(topic, channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLogger(logBridge{component: "nsq-consumer:" + topic}, clientLogLevel)
	consumer.AddHandler(wrapHandler(topic, handler))

	return &Consumer{consumer: consumer}, nil
}

// wrapHandler requeues on transient errors and drops poison messages.
// Messages are auto-finished by go-nsq when the handler returns nil.
func wrapHandler(topic string, handler MessageHandler) nsq.HandlerFunc {
	return func(message *nsq.Message) error {
		if len(message.Body) == 0 {
			return nil
		}

		err := handler(message.Body)
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrPoisonMessage) {
			logger.Warn("Dropping unprocessable message",
				logger.String("topic", topic),
				logger.Err(err))
			return nil
		}

		logger.Error("Error processing message, requeueing",
			logger.String("topic", topic),
			logger.Int("attempts", int(message.Attempts)),
			logger.Err(err))
		return err
	}
}

// ConnectToNSQD connects the consumer directly to an nsqd instance
func (c *Consumer) ConnectToNSQD(address string) error {
	if err := c.consumer.ConnectToNSQD(address); err != nil {
		return fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}
	return nil
}

// ConnectToLookupd connects the consumer to NSQ lookupd instances
func (c *Consumer) ConnectToLookupd(addresses []string) error {
	for _, addr := range addresses {
		if err := c.consumer.ConnectToNSQLookupd(addr); err != nil {
			return fmt.Errorf("failed to connect to NSQ lookupd at %s: %w", addr, err)
		}
	}
	return nil
}

// UnmarshalMessage deserializes a JSON message into the provided struct.
// Decode failures are reported as poison messages.
func UnmarshalMessage(messageBody []byte, v interface{}) error {
	if err := json.Unmarshal(messageBody, v); err != nil {
		return fmt.Errorf("%w: failed to unmarshal message: %v", ErrPoisonMessage, err)
	}
	return nil
}

// Stop gracefully stops the consumer and waits for in-flight handlers
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
