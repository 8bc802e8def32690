// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/loopp-client/internal/crypto"
	"github.com/MKhiriev/loopp-client/models"
)

// ErrCredentialNotFound is returned when no credential is stored.
var ErrCredentialNotFound = errors.New("credential not found")

type credentialStore struct {
	repo   StateRepository
	sealer crypto.Sealer
	now    func() time.Time
}

// NewCredentialStore persists the credential under [CredentialKey], sealed
// with sealer.
func NewCredentialStore(repo StateRepository, sealer crypto.Sealer) CredentialStore {
	return &credentialStore{repo: repo, sealer: sealer, now: time.Now}
}

func (s *credentialStore) GetCredential(ctx context.Context) (models.Credential, error) {
	entry, err := s.repo.GetState(ctx, CredentialKey)
	if errors.Is(err, ErrStateNotFound) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		return models.Credential{}, err
	}

	plain, err := s.sealer.Open(entry.Value)
	if err != nil {
		return models.Credential{}, fmt.Errorf("error opening stored credential: %w", err)
	}

	var credential models.Credential
	if err := json.Unmarshal(plain, &credential); err != nil {
		return models.Credential{}, fmt.Errorf("error decoding stored credential: %w", err)
	}
	if credential.IsZero() {
		return models.Credential{}, ErrCredentialNotFound
	}

	return credential, nil
}

func (s *credentialStore) SetCredential(ctx context.Context, credential models.Credential) error {
	plain, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("error encoding credential: %w", err)
	}

	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return fmt.Errorf("error sealing credential: %w", err)
	}

	entry := StateEntry{Key: CredentialKey, Value: sealed, UpdatedAt: s.now().UTC()}
	if !credential.ExpiresAt.IsZero() {
		expiresAt := credential.ExpiresAt.UTC()
		entry.ExpiresAt = &expiresAt
	}

	return s.repo.PutState(ctx, entry)
}

func (s *credentialStore) DeleteCredential(ctx context.Context) error {
	return s.repo.DeleteState(ctx, CredentialKey)
}
