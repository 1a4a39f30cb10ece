package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultKafkaGroupID = "techrelay"

// KafkaLinkConfig configures a KafkaLink.
type KafkaLinkConfig struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string

	// EventsTopic carries events from the network side.
	EventsTopic string

	// CommandsTopic carries commands to the network side.
	CommandsTopic string

	// GroupID is the consumer group of the relay. Default: "techrelay"
	GroupID string

	// WriteTimeout is the timeout for writing commands.
	// Default: 10 seconds
	WriteTimeout time.Duration
}

// KafkaLink exchanges events and commands over two Kafka topics.
type KafkaLink struct {
	reader *kafka.Reader
	writer *kafka.Writer
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

func NewKafkaLink(cfg KafkaLinkConfig, logger *zap.Logger) (*KafkaLink, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, broker := range cfg.Brokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}
	if cfg.EventsTopic == "" || cfg.CommandsTopic == "" {
		return nil, fmt.Errorf("Kafka events and commands topics are required")
	}
	if cfg.EventsTopic == cfg.CommandsTopic {
		return nil, fmt.Errorf("Kafka events and commands topics must differ")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	groupID := cfg.GroupID
	if groupID == "" {
		groupID = defaultKafkaGroupID
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    cfg.EventsTopic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	// Commands are written synchronously, one at a time, so a failed send is
	// reported to the caller.
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.CommandsTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              1,
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: false,
	}

	logger = logger.Named("kafka-link")
	logger.Info("Kafka bridge link created",
		zap.Strings("brokers", brokers),
		zap.String("events_topic", cfg.EventsTopic),
		zap.String("commands_topic", cfg.CommandsTopic),
		zap.String("group_id", groupID))

	return &KafkaLink{reader: reader, writer: writer, logger: logger}, nil
}

func (l *KafkaLink) ReadEvent(ctx context.Context) ([]byte, error) {
	msg, err := l.reader.ReadMessage(ctx)
	if err != nil {
		if l.isClosed() {
			return nil, ErrLinkClosed
		}
		return nil, err
	}
	return msg.Value, nil
}

func (l *KafkaLink) WriteCommand(ctx context.Context, payload []byte) error {
	if l.isClosed() {
		return ErrLinkClosed
	}
	if err := l.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		l.logger.Warn("failed to write bridge command", zap.Error(err))
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

func (l *KafkaLink) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	return errors.Join(l.reader.Close(), l.writer.Close())
}

func (l *KafkaLink) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
