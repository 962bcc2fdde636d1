package outboundemail

import (
	"context"
	"jobboard/internal/core/domain/account"
	e "jobboard/internal/core/domain/errors"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/rabbitmq"
	"jobboard/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes outbound account emails to the mailer queue. It backs
// both token sender interfaces so the HTTP process never talks to SES
// directly.
type RabbitMQ struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (p *RabbitMQ) SendResetToken(ctx context.Context, email string, token account.ResetToken) error {
	return p.publish(ctx, schema.OutboundEmail{
		Kind:  schema.KindPasswordReset,
		Email: email,
		Token: string(token),
	})
}

func (p *RabbitMQ) SendVerificationToken(
	ctx context.Context,
	email string,
	token account.VerificationToken,
) error {
	return p.publish(ctx, schema.OutboundEmail{
		Kind:  schema.KindEmailVerification,
		Email: email,
		Token: string(token),
	})
}

func (p *RabbitMQ) publish(ctx context.Context, message schema.OutboundEmail) error {
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("queue", p.queue))
		return err
	}
	p.log.Info(
		ctx,
		"Outbound email has been queued.",
		logging.Entry("queue", p.queue),
		logging.Entry("kind", message.Kind),
	)
	return nil
}
