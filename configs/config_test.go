package configs

import (
	"os"
	"testing"
)

// setupTestEnv sets up required environment variables for config unmarshaling
func setupTestEnv() {
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_PORT", "8080")
	os.Setenv("MOLTIN_BASE_URL", "http://localhost:8081")
	os.Setenv("MOLTIN_CLIENT_ID", "client-id")
	os.Setenv("LINE_CHANNEL_SECRET", "test")
	os.Setenv("LINE_CHANNEL_TOKEN", "test")
	os.Setenv("STORE_DRIVER", "memory")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	for _, key := range []string{
		"APP_ENV", "APP_PORT",
		"MOLTIN_BASE_URL", "MOLTIN_CLIENT_ID", "MOLTIN_TIMEOUT", "MOLTIN_TOKEN_SKEW",
		"LINE_CHANNEL_SECRET", "LINE_CHANNEL_TOKEN", "LINE_ADMIN_USER_ID",
		"STORE_DRIVER", "STORE_TIMEOUT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB",
		"BOT_MAX_BUTTONS_IN_ROW",
	} {
		os.Unsetenv(key)
	}
}

// TestMoltinFieldsUnmarshal tests that environment overrides reach the Moltin section
func TestMoltinFieldsUnmarshal(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("MOLTIN_TIMEOUT", "7")
	os.Setenv("MOLTIN_TOKEN_SKEW", "20")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Moltin.BaseURL != "http://localhost:8081" {
		t.Errorf("Expected Moltin.BaseURL to be http://localhost:8081, got %s", cfg.Moltin.BaseURL)
	}
	if cfg.Moltin.ClientID != "client-id" {
		t.Errorf("Expected Moltin.ClientID to be client-id, got %s", cfg.Moltin.ClientID)
	}
	if cfg.Moltin.Timeout != 7 {
		t.Errorf("Expected Moltin.Timeout to be 7, got %d", cfg.Moltin.Timeout)
	}
	if cfg.Moltin.TokenSkew != 20 {
		t.Errorf("Expected Moltin.TokenSkew to be 20, got %d", cfg.Moltin.TokenSkew)
	}
}

// TestStoreAndBotConfigAccess tests config access via configs.GetViper().Store
func TestStoreAndBotConfigAccess(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("STORE_DRIVER", "redis")
	os.Setenv("STORE_TIMEOUT", "15")
	os.Setenv("REDIS_DB", "3")
	os.Setenv("BOT_MAX_BUTTONS_IN_ROW", "4")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Store.Driver != "redis" {
		t.Errorf("Expected Store.Driver to be redis, got %s", cfg.Store.Driver)
	}
	if cfg.Store.Timeout != 15 {
		t.Errorf("Expected Store.Timeout to be 15, got %d", cfg.Store.Timeout)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Expected Redis.DB to be 3, got %d", cfg.Redis.DB)
	}
	if cfg.Bot.MaxButtonsInRow != 4 {
		t.Errorf("Expected Bot.MaxButtonsInRow to be 4, got %d", cfg.Bot.MaxButtonsInRow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected config to be valid, got %v", err)
	}
}

// TestValidateRejectsUnknownStoreDriver tests config validation
func TestValidateRejectsUnknownStoreDriver(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("STORE_DRIVER", "mongo")

	InitViper(".", "test")

	if err := GetViper().Validate(); err == nil {
		t.Error("Expected validation error for unknown store driver")
	}
}

// TestValidateRequiresClientID tests that an empty client id is rejected
func TestValidateRequiresClientID(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("MOLTIN_CLIENT_ID", "")

	InitViper(".", "test")

	if err := GetViper().Validate(); err == nil {
		t.Error("Expected validation error for empty client id")
	}
}
