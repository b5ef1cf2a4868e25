package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/shared/config"
	"skybook/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher hands ticket messages to the delivery pipeline.
type Publisher interface {
	PublishTicket(ctx context.Context, message *TicketMessage) error
	Describe() string
	Close() error
}

// KafkaProducer publishes ticket deliveries to a Kafka topic.
type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig builds the producer settings used for ticket deliveries.
func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps a reservation's messages ordered.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

func NewKafkaProducer(cfg config.KafkaConfig) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("kafka ticket producer created", "brokers", cfg.Brokers, "topic", cfg.TicketTopic)
	return NewKafkaProducerWith(producer, cfg.TicketTopic), nil
}

// NewKafkaProducerWith wraps an existing sync producer.
func NewKafkaProducerWith(producer sarama.SyncProducer, topic string) *KafkaProducer {
	return &KafkaProducer{producer: producer, topic: topic}
}

func (p *KafkaProducer) PublishTicket(ctx context.Context, message *TicketMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ticket message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(message.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   p.createHeaders(message),
		Timestamp: message.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send ticket message to Kafka: %w", err)
	}

	logger.GetDefault().Info("ticket message published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"ticket_code", message.TicketCode,
	)
	return nil
}

func (p *KafkaProducer) createHeaders(message *TicketMessage) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(message.ID.String())},
		{Key: []byte("message_type"), Value: []byte(message.Type)},
		{Key: []byte("channel"), Value: []byte(message.Channel)},
		{Key: []byte("ticket_id"), Value: []byte(message.TicketID.String())},
		{Key: []byte("reservation_id"), Value: []byte(message.ReservationID.String())},
		{Key: []byte("producer"), Value: []byte(message.Producer)},
		{Key: []byte("created_at"), Value: []byte(message.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *KafkaProducer) Describe() string {
	return "queued on kafka topic " + p.topic
}

func (p *KafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// LogPublisher records deliveries in the application log. Used when Kafka
// is disabled.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) PublishTicket(ctx context.Context, message *TicketMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.GetDefault().Info("ticket delivery logged",
		"ticket_code", message.TicketCode,
		"reservation_code", message.ReservationCode,
		"flight_number", message.FlightNumber,
		"seat_number", message.SeatNumber,
		"pdf_bytes", len(message.PDF),
	)
	return nil
}

func (LogPublisher) Describe() string {
	return "logged"
}

func (LogPublisher) Close() error {
	return nil
}
