// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envFileVar names the variable that points at an alternative .env file.
const envFileVar = "ENV_FILE"

// parseEnv loads the .env file (if any) into the process environment and
// then populates cfg from environment variables using the caarlos0/env
// library. Variables already set in the environment are not overridden by
// the .env file.
//
// Returns a wrapped error if the .env file is malformed or env.Parse fails
// (e.g. a value cannot be converted to the target type).
func parseEnv(cfg any) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

func loadDotEnv() error {
	path := os.Getenv(envFileVar)
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("error loading %s: %w", path, err)
}
