package kafka

import (
	"Evergreen/internal/api/config"
	mongodb "Evergreen/internal/pkg/mongo"
	"context"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationProducer 将通知事件写入 Kafka，由消费组异步落库并推送
type NotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewNotificationProducer(cfg *config.Config) (*NotificationProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &NotificationProducer{
		producer: producer,
		topic:    cfg.KafkaNotificationConsumer.Topic,
	}, nil
}

// Produce 发送一条通知事件，以接收者 UID 作为分区键
func (s *NotificationProducer) Produce(ctx context.Context, n *mongodb.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(n.RecipientUID),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = s.producer.SendMessage(msg)
	return err
}

func (s *NotificationProducer) Close() error {
	return s.producer.Close()
}
