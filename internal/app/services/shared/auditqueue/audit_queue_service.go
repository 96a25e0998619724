// Package auditqueue publishes clinical access audit records to a durable
// RabbitMQ queue consumed by the compliance pipeline.
package auditqueue

import (
	"context"
	"sync"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Service struct {
	ch  *amqp.Channel
	log *zap.Logger
	mu  sync.Mutex
}

// NewService opens a channel and declares the durable audit queue.
func NewService(conn *amqp.Connection, log *zap.Logger) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.RabbitMQAuditQueue, // name
		true,                         // durable
		false,                        // autoDelete
		false,                        // exclusive
		false,                        // noWait
		nil,                          // args
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		ch:  ch,
		log: log,
	}, nil
}

var _ contracts.AuditRecorder = (*Service)(nil)

// Record publishes one audit record. Failures are logged and swallowed: the
// clinical response must not depend on the audit broker being reachable.
func (s *Service) Record(ctx context.Context, record *models.AuditRecord) {
	body, err := json.Marshal(record)
	if err != nil {
		s.log.Error("auditqueue.Record error marshaling record",
			zap.String(constvars.LoggingUserIDKey, record.UserID),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",                           // exchange
		constvars.RabbitMQAuditQueue, // routing key
		false,                        // mandatory
		false,                        // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		s.log.Error("auditqueue.Record error publishing record",
			zap.String(constvars.LoggingUserIDKey, record.UserID),
			zap.String(constvars.LoggingHospitalIDKey, record.HospitalID),
			zap.Error(err),
		)
	}
}
