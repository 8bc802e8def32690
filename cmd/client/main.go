package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/loopp-client/internal/client"
	"github.com/MKhiriev/loopp-client/internal/config"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	// startup failures go to the terminal, the UI has not taken it yet
	console := logger.NewLogger("loopp-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		console.Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("loopp-client")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(log.WithContext(ctx), cfg, buildInfo, log)
	if err != nil {
		console.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		os.Exit(1)
	}
}
