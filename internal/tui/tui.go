// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the loopp client.
//
// Pages are bubbletea models switched by [RootModel]. The services drive
// navigation: every route they navigate to is forwarded to the running
// program and mapped onto a page.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/chat"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

// Options configures a [TUI].
type Options struct {
	// PageSize is the number of services fetched per page.
	PageSize  int
	BuildInfo models.AppBuildInfo
}

type TUI struct {
	services *service.ClientServices
	history  *navigation.History
	sender   chat.MessageSender
	ids      utils.IDGenerator
	opts     Options
	logger   *logger.Logger
}

func New(
	services *service.ClientServices,
	history *navigation.History,
	sender chat.MessageSender,
	ids utils.IDGenerator,
	opts Options,
	log *logger.Logger,
) (*TUI, error) {
	if services == nil || history == nil || sender == nil || ids == nil {
		return nil, fmt.Errorf("tui: missing dependency")
	}

	return &TUI{
		services: services,
		history:  history,
		sender:   sender,
		ids:      ids,
		opts:     opts,
		logger:   log,
	}, nil
}

// Pages builds every page of the program.
func (t *TUI) Pages(ctx context.Context) (map[string]tea.Model, error) {
	feed, err := t.services.CatalogService.Feed(t.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error creating services feed: %w", err)
	}

	openConversation := func(contact models.ChatContact) *chat.Conversation {
		return chat.NewConversation(contact, t.sender, t.ids)
	}

	return map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
		pageServices: NewServicesModel(ctx, t.services.AuthService, t.services.CatalogService, t.history, feed),
		pageDetail:   NewDetailModel(ctx, t.services.CatalogService),
		pageChat:     NewChatModel(ctx, t.services.UsersService, openConversation),
	}, nil
}

// StartPage is the services dashboard when a credential was restored and
// the menu otherwise.
func (t *TUI) StartPage(ctx context.Context) string {
	if t.services.AuthService.Authenticated(ctx) {
		return pageServices
	}
	return pageMenu
}

// Run blocks until the user quits. It returns [ErrUserQuit] when the user
// closed the program.
func (t *TUI) Run(ctx context.Context) error {
	pages, err := t.Pages(ctx)
	if err != nil {
		return err
	}

	root := NewRootModel(pages, t.StartPage(ctx), t.opts.BuildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	t.history.OnNavigate(func(route string) {
		t.logger.Debug().Str("func", "TUI.Run").Str("route", route).Msg("navigated")
		program.Send(routeChangedMsg{route: route})
	})

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
