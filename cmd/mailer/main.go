package main

import (
	"context"
	"jobboard/internal/app/consumers"
	"jobboard/internal/app/deps"
	dl "jobboard/internal/core/domain/logging"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	shutdownConsumers := consumers.InitConsumers(deps)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	deps.Logger.Info(
		context.Background(),
		"Mailer has started.",
		dl.Entry("queue", deps.Config.OutboundEmailQueue),
	)
	<-stopCh
	deps.Logger.Info(context.Background(), "Mailer is stopping gracefully.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
