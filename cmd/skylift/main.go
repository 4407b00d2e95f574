package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/skyliftdata/skylift-go/cmd/skylift/commands"
)

var version = "develop"

func main() {
	_ = godotenv.Load()

	conf := config.New(config.WithEnvPrefix("SKYLIFT"))
	loggerFactory := logger.NewFactory(conf)
	log := loggerFactory.NewLogger().Child("skylift")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := &cli.App{
		Name:     "skylift",
		Usage:    "drive Skylift database migrations from the terminal",
		Version:  version,
		Commands: commands.New(conf, log, stats.NOP).Commands(),
	}
	err := app.RunContext(ctx, os.Args)
	cancel()
	loggerFactory.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
