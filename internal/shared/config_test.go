package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		t.Setenv(ClientIDEnv, "")
		config := DefaultConfig()

		if config.Database.Path != "./yotoup.db" {
			t.Errorf("expected database path ./yotoup.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.API.BaseURL != "https://api.yotoplay.com" {
			t.Errorf("expected api base URL https://api.yotoplay.com, got %s", config.API.BaseURL)
		}

		if config.API.PollAttempts != 30 {
			t.Errorf("expected 30 poll attempts, got %d", config.API.PollAttempts)
		}

		if config.API.PollInterval.Duration != 500*time.Millisecond {
			t.Errorf("expected 500ms poll interval, got %v", config.API.PollInterval)
		}

		if config.Credentials.Yoto.ClientID != "your_yoto_client_id" {
			t.Errorf("expected yoto client_id your_yoto_client_id, got %s", config.Credentials.Yoto.ClientID)
		}
	})

	t.Run("Client ID From Environment", func(t *testing.T) {
		t.Setenv(ClientIDEnv, "env_client")
		config := DefaultConfig()

		if config.Credentials.Yoto.ClientID != "env_client" {
			t.Errorf("expected client id from env, got %s", config.Credentials.Yoto.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv(ClientIDEnv, "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[api]
base_url = "http://localhost:9090"
poll_interval = "2s"

[credentials.yoto]
client_id = "test_client_id"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.API.PollInterval.Duration != 2*time.Second {
			t.Errorf("expected 2s poll interval, got %v", config.API.PollInterval)
		}
		if config.API.PollAttempts != 30 {
			t.Errorf("expected default poll attempts to survive, got %d", config.API.PollAttempts)
		}
		if config.Credentials.Yoto.ClientID != "test_client_id" {
			t.Errorf("expected yoto client_id test_client_id, got %s", config.Credentials.Yoto.ClientID)
		}
		if config.Credentials.Yoto.TokenURL != "https://login.yotoplay.com/oauth/token" {
			t.Errorf("expected default token url, got %s", config.Credentials.Yoto.TokenURL)
		}
	})

	t.Run("LoadConfig Invalid Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\npoll_interval = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid duration")
		}
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Yoto.ClientID = "saved_client"
		config.API.PollInterval = Duration{750 * time.Millisecond}

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("SaveConfig() error = %v", err)
		}

		t.Setenv(ClientIDEnv, "")
		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if loaded.Credentials.Yoto.ClientID != "saved_client" {
			t.Errorf("expected saved_client, got %s", loaded.Credentials.Yoto.ClientID)
		}
		if loaded.API.PollInterval.Duration != 750*time.Millisecond {
			t.Errorf("expected 750ms, got %v", loaded.API.PollInterval)
		}
	})

	t.Run("Load Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		config.Credentials.Yoto.ClientID = ""
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}

		config.Credentials.Yoto.ClientID = placeholderClientID
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected placeholder client id to be rejected, got %v", err)
		}

		config.Credentials.Yoto.ClientID = "id"
		config.API.PollAttempts = 0
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		config.API.PollAttempts = 30
		if err := config.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})
}
