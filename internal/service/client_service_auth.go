// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/validators"
	"github.com/MKhiriev/loopp-client/models"
)

const resourceCurrentUser = "currentUser"

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	session   CredentialSession
	cache     *cache.Cache
	navigator navigation.Navigator
	validator validators.Validator
	logger    *logger.Logger

	signUp      *Mutation[models.SignUpRequest, models.AuthResponse]
	login       *Mutation[models.LoginRequest, models.AuthResponse]
	currentUser *Query[struct{}, CurrentUser]
}

func NewClientAuthService(
	serverAdapter adapter.ServerAdapter,
	session CredentialSession,
	c *cache.Cache,
	navigator navigation.Navigator,
	validator validators.Validator,
	logger *logger.Logger,
) ClientAuthService {
	a := &clientAuthService{
		adapter:   serverAdapter,
		session:   session,
		cache:     c,
		navigator: navigator,
		validator: validator,
		logger:    logger,
	}

	a.signUp = NewMutation(func(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
		if err := a.validator.Validate(ctx, req); err != nil {
			return models.AuthResponse{}, err
		}
		return a.adapter.SignUp(ctx, req)
	}).OnSuccess(func(ctx context.Context, _ models.SignUpRequest, resp models.AuthResponse) error {
		return a.authenticated(ctx, "SignUp", resp)
	}).OnError(func(_ context.Context, req models.SignUpRequest, err error) {
		a.logger.Warn().Err(err).Str("func", "clientAuthService.SignUp").Str("role", req.Role.String()).Msg("sign up failed")
	})

	a.login = NewMutation(func(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
		if err := a.validator.Validate(ctx, req); err != nil {
			return models.AuthResponse{}, err
		}
		return a.adapter.Login(ctx, req)
	}).OnSuccess(func(ctx context.Context, _ models.LoginRequest, resp models.AuthResponse) error {
		return a.authenticated(ctx, "Login", resp)
	}).OnError(func(_ context.Context, _ models.LoginRequest, err error) {
		a.logger.Warn().Err(err).Str("func", "clientAuthService.Login").Msg("login failed")
	})

	a.currentUser = NewQuery(c, resourceCurrentUser, nil, func(ctx context.Context, _ struct{}) (CurrentUser, error) {
		user, ok, err := a.adapter.GetCurrentUser(ctx)
		if err != nil {
			return CurrentUser{}, err
		}
		return CurrentUser{User: user, Authenticated: ok}, nil
	})

	return a
}

// authenticated stores the credential of a successful sign-up or login and
// sends the user home.
func (a *clientAuthService) authenticated(ctx context.Context, op string, resp models.AuthResponse) error {
	log := a.logger.With().Str("func", "clientAuthService."+op).Logger()

	if resp.Token == "" {
		return ErrMissingToken
	}
	if _, err := a.session.Set(ctx, resp.Token); err != nil {
		return fmt.Errorf("error storing credential: %w", err)
	}

	// Reads cached for a previous identity must not leak into this one.
	a.cache.Purge()

	route, ok := navigation.HomeFor(resp.User.Role)
	if !ok {
		log.Warn().Str("role", resp.User.Role.String()).Msg("unrecognized role, staying on current route")
		return nil
	}

	log.Info().Str("user_id", resp.User.ID).Str("route", route).Msg("authenticated")
	a.navigator.Navigate(route)
	return nil
}

func (a *clientAuthService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	return a.signUp.Mutate(ctx, req)
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return a.login.Mutate(ctx, req)
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}

	a.cache.Purge()
	a.signUp.Reset()
	a.login.Reset()

	a.logger.Info().Str("func", "clientAuthService.SignOut").Msg("signed out")
	a.navigator.Navigate(navigation.RouteLanding)
	return nil
}

func (a *clientAuthService) CurrentUser(ctx context.Context) (CurrentUser, error) {
	if !a.Authenticated(ctx) {
		return CurrentUser{}, nil
	}
	return a.currentUser.Load(ctx, struct{}{})
}

func (a *clientAuthService) Authenticated(ctx context.Context) bool {
	_, ok := a.session.Get(ctx)
	return ok
}

func (a *clientAuthService) SignUpState() State[models.AuthResponse] {
	return a.signUp.State()
}

func (a *clientAuthService) LoginState() State[models.AuthResponse] {
	return a.login.State()
}

func (a *clientAuthService) CurrentUserState() State[CurrentUser] {
	return a.currentUser.State()
}
