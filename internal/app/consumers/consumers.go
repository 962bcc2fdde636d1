package consumers

import (
	"context"
	"jobboard/internal/app/deps"
	dl "jobboard/internal/core/domain/logging"
	outboundemail "jobboard/internal/rabbitmq/consumers/outbound_email"
)

func initOutboundEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.OutboundEmailQueue
	// Deliveries go straight to SES, not back through the publisher.
	outboundEmailConsumer := outboundemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
		deps.EmailSender,
	)
	if err = outboundEmailConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownOutboundEmailConsumer := initOutboundEmailConsumer(deps)

	return func() {
		shutdownOutboundEmailConsumer()
	}
}
