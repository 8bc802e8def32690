// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/internal/chat"
	"github.com/MKhiriev/loopp-client/internal/config"
	"github.com/MKhiriev/loopp-client/internal/crypto"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/metrics"
	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/internal/session"
	"github.com/MKhiriev/loopp-client/internal/store"
	"github.com/MKhiriev/loopp-client/internal/tui"
	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

var _ Client = (*App)(nil)

// App owns every long-lived component of the client process.
type App struct {
	ctx context.Context

	storages *store.ClientStorages
	session  *session.Session
	services *service.ClientServices
	history  *navigation.History
	ui       *tui.TUI
	registry *prometheus.Registry

	logger *logger.Logger
}

// NewApp wires the client: sealer → storages → session → metrics → cache →
// adapter → services → chat → terminal UI. A credential stored by a
// previous run is picked up by the session on first use.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.FromContext(ctx)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, crypto.NewSealer(cfg.App.SecretKey), log)
	if err != nil {
		return nil, fmt.Errorf("error creating client storages: %w", err)
	}

	sess := session.New(storages.Credentials, cfg.App.CredentialTTL, log)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sess, m, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("error creating server adapter: %w", err)
	}

	history := navigation.NewHistory(navigation.RouteLanding)
	services := service.NewClientServices(service.ClientDeps{
		Adapter:   serverAdapter,
		Session:   sess,
		Selection: storages.Selection,
		Cache:     cache.New(cfg.Cache.TTL, m, log),
		Navigator: history,
		Logger:    log,
	})

	ids := utils.NewUUIDGenerator()
	ui, err := tui.New(services, history, chat.NewSimulatedSender(cfg.Chat.ReplyDelay, ids), ids,
		tui.Options{PageSize: cfg.Listing.PageSize, BuildInfo: buildInfo}, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("error creating ui: %w", err)
	}

	return &App{
		ctx:      ctx,
		storages: storages,
		session:  sess,
		services: services,
		history:  history,
		ui:       ui,
		registry: registry,
		logger:   log,
	}, nil
}

// Run blocks until the user quits the UI, then releases the storages.
func (a *App) Run() error {
	defer a.close()

	if a.services.AuthService.Authenticated(a.ctx) {
		a.logger.Info().Str("func", "App.Run").Msg("restored saved session")
	}

	err := a.ui.Run(a.ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Str("func", "App.Run").Msg("user quit")
		return nil
	}
	return err
}

func (a *App) close() {
	a.logMetrics()
	a.logger.Debug().Strs("routes", a.history.Routes()).Msg("navigation history")

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("error closing storages")
	}
}

// logMetrics writes a one-line summary per collector on shutdown.
func (a *App) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.logMetrics").Msg("error gathering metrics")
		return
	}

	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				total += float64(metric.GetHistogram().GetSampleCount())
			}
		}
		a.logger.Info().Str("metric", family.GetName()).Float64("total", total).Msg("session metrics")
	}
}
