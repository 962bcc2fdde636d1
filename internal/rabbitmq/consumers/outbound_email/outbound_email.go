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

type Consumer struct {
	log                logging.Logger
	channel            *rabbitmq.Channel
	queue              string
	resetSender        account.ResetTokenSender
	verificationSender account.VerificationTokenSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	resetSender account.ResetTokenSender,
	verificationSender account.VerificationTokenSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if resetSender == nil {
		panic(e.NewNilArgumentError("resetSender"))
	}
	if verificationSender == nil {
		panic(e.NewNilArgumentError("verificationSender"))
	}
	return &Consumer{
		log:                log,
		channel:            channel,
		queue:              queue,
		resetSender:        resetSender,
		verificationSender: verificationSender,
	}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			message := &schema.OutboundEmail{}
			if err := message.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal outbound email.",
					logging.Entry("err", err),
				)
				c.Ack(delivery)
				continue
			}

			if err := c.deliver(context.Background(), message); err != nil {
				c.log.Error(
					context.Background(),
					"Could not deliver outbound email.",
					logging.Entry("kind", message.Kind),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) deliver(ctx context.Context, message *schema.OutboundEmail) error {
	switch message.Kind {
	case schema.KindPasswordReset:
		return c.resetSender.SendResetToken(ctx, message.Email, account.ResetToken(message.Token))
	case schema.KindEmailVerification:
		return c.verificationSender.SendVerificationToken(
			ctx,
			message.Email,
			account.VerificationToken(message.Token),
		)
	default:
		return e.NewInvalidStateError("unknown outbound email kind: " + message.Kind)
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(
			context.Background(),
			"Could not ack the delivery.",
			logging.Entry("err", err),
		)
	}
}
