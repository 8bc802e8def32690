package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that a value set by an earlier config is
// not overwritten by a later one, while zero fields are filled in.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://flags"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://env", SearchPath: "/env/search"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://flags", cfg.Adapter.BaseURL)
	assert.Equal(t, "/env/search", cfg.Adapter.SearchPath)
}

func TestBuild_RejectsNegativePageSize(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Listing: Listing{PageSize: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidListingConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://env:5000/api/v1")
	t.Setenv("LISTING_PAGE_SIZE", "24")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://env:5000/api/v1", b.configs[0].Adapter.BaseURL)
	assert.Equal(t, 24, b.configs[0].Listing.PageSize)
}

func TestWithEnv_SetsError_OnBadValue(t *testing.T) {
	t.Setenv("LISTING_PAGE_SIZE", "twelve")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
}

func TestWithFlags_SetsError_OnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-nope"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.API.BaseURL = "http://json"
	payload.Cache.TTL = Duration(time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "http://json", b.configs[1].Adapter.BaseURL)
	assert.Equal(t, time.Minute, b.configs[1].Cache.TTL)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the path from the highest
// priority source is used.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.API.SearchPath = "/first"
	second := StructuredJSONConfig{}
	second.API.SearchPath = "/second"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "/first", b.configs[2].Adapter.SearchPath)
}

func TestWithJSON_Skipped_WhenErrorAlreadySet(t *testing.T) {
	path := writeTempJSONConfig(t, StructuredJSONConfig{})

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	assert.ErrorIs(t, b.err, assert.AnError)
	assert.Len(t, b.configs, 1)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsUnsetFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Listing: Listing{PageSize: 5}})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Listing.PageSize)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSearchPath, cfg.Adapter.SearchPath)
	assert.Equal(t, DefaultCredentialTTL, cfg.App.CredentialTTL)
	assert.Equal(t, DefaultChatReplyDelay, cfg.Chat.ReplyDelay)
}

// ── GetStructuredConfig / GetClientConfig ─────────────────────────────────────

func TestGetStructuredConfig_Priority(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.API.BaseURL = "http://json"
	payload.API.SearchPath = "/json/search"
	payload.Listing.PageSize = 30
	payload.Storage.DB.DSN = "json.db"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("CONFIG", path)
	t.Setenv("API_BASE_URL", "http://env")
	t.Setenv("LISTING_PAGE_SIZE", "20")

	cfg, err := GetStructuredConfig([]string{"-page-size", "8"})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Listing.PageSize)
	assert.Equal(t, "http://env", cfg.Adapter.BaseURL)
	assert.Equal(t, "/json/search", cfg.Adapter.SearchPath)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

func TestGetClientConfig_Valid(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-api", "http://localhost:5000/api/v1"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api/v1", cfg.Adapter.BaseURL)
	assert.Equal(t, DefaultPageSize, cfg.Listing.PageSize)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestGetClientConfig_MissingBaseURL(t *testing.T) {
	_, err := GetClientConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}
