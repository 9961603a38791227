package kafka

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type KafkaClient struct {
	logger   *slog.Logger
	producer sarama.SyncProducer
	brokers  []string
}

type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

func NewKafkaClient(logger *slog.Logger, brokers string) (*KafkaClient, error) {
	brokerList := strings.Split(brokers, ",")

	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	// Eventos de entidade são poucos e pequenos: prioriza latência e durabilidade local
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 50 * time.Millisecond
	config.Producer.MaxMessageBytes = 1024 * 1024

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	logger.Info("Kafka producer initialized", "brokers", brokerList)

	return &KafkaClient{
		logger:   logger,
		producer: producer,
		brokers:  brokerList,
	}, nil
}

func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}

	batchSize := len(messages)

	kafkaMessages := make([]*sarama.ProducerMessage, batchSize)
	for i, msg := range messages {
		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: toRecordHeaders(msg.Headers),
		}
	}

	type result struct {
		err   error
		index int
	}

	resultChan := make(chan result, batchSize)

	for i, kafkaMsg := range kafkaMessages {
		go func(idx int, msg *sarama.ProducerMessage) {
			_, _, err := k.producer.SendMessage(msg)
			resultChan <- result{err: err, index: idx}
		}(i, kafkaMsg)
	}

	var errors []error
	for i := 0; i < batchSize; i++ {
		res := <-resultChan
		if res.err != nil {
			errors = append(errors, fmt.Errorf("message %d failed: %w", res.index, res.err))
		}
	}

	if len(errors) > 0 {
		for _, err := range errors {
			k.logger.Error("Kafka message failed", "topic", topic, "error", err)
		}
		return fmt.Errorf("batch send failed: %d/%d messages failed", len(errors), batchSize)
	}

	k.logger.Debug("Batch sent", "topic", topic, "messages", batchSize)
	return nil
}

func (k *KafkaClient) Close() error {
	if err := k.producer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}

func toRecordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}

	recordHeaders := make([]sarama.RecordHeader, 0, len(headers))
	for key, value := range headers {
		recordHeaders = append(recordHeaders, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}
	return recordHeaders
}
