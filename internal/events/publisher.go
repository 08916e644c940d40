package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

// Publisher fans payment lifecycle events out to Kafka and certificate
// requests out to NATS. Both connections are optional; a nil writer or conn
// turns the corresponding publish into a logged no-op, so the payment path
// never depends on broker availability.
type Publisher struct {
	kafkaWriter *kafka.Writer
	nc          *nats.Conn
}

type paymentStateChanged struct {
	PaymentID     string    `json:"payment_id"`
	PreviousState string    `json:"previous_state"`
	State         string    `json:"state"`
	Timestamp     time.Time `json:"timestamp"`
}

type certificateRequested struct {
	DonationID        string    `json:"donation_id"`
	CertificateNumber string    `json:"certificate_number"`
	RequestedAt       time.Time `json:"requested_at"`
}

func NewPublisher(kafkaBrokers string, nc *nats.Conn) *Publisher {
	p := &Publisher{nc: nc}
	if kafkaBrokers != "" {
		p.kafkaWriter = &kafka.Writer{
			Addr:     kafka.TCP(kafkaBrokers),
			Topic:    "payment.state.changed",
			Balancer: &kafka.LeastBytes{},
		}
	}
	return p
}

func (p *Publisher) Close() {
	if p.kafkaWriter != nil {
		p.kafkaWriter.Close()
	}
}

func (p *Publisher) PaymentStateChanged(ctx context.Context, paymentID, previous, current string) error {
	if p.kafkaWriter == nil {
		return nil
	}
	event := paymentStateChanged{
		PaymentID:     paymentID,
		PreviousState: previous,
		State:         current,
		Timestamp:     time.Now(),
	}
	eventJSON, _ := json.Marshal(event)

	if err := p.kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(paymentID),
		Value: eventJSON,
	}); err != nil {
		telemetry.Logger.Error("Failed to publish payment state change",
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Publisher) CertificateRequested(ctx context.Context, donationID, certificateNumber string) error {
	if p.nc == nil {
		return nil
	}
	event := certificateRequested{
		DonationID:        donationID,
		CertificateNumber: certificateNumber,
		RequestedAt:       time.Now(),
	}
	eventJSON, _ := json.Marshal(event)

	if err := p.nc.Publish("donations.certificate.requested", eventJSON); err != nil {
		telemetry.Logger.Error("Failed to publish certificate request",
			zap.String("donation_id", donationID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
