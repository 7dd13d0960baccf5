package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FlorianRuen/sclng-languages-card/cli"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// every error, including the cobra usage ones, is reported here once
	if err := cli.Execute(ctx); err != nil {
		log.WithError(err).Error("langstat failed")
		cancel()
		os.Exit(1)
	}
}
