package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	for _, key := range []string{
		"botToken", "clientId", "devGuildId", "DATA_DIR", "STORAGE_BACKEND",
		"mongodbUrl", "dbName", "MQTT_Host", "MQTT_Port", "PORT",
		"DASHBOARD_SECRET", "DASHBOARD_ORIGIN", "enviroment",
	} {
		t.Setenv(key, "")
	}

	resetForTesting()
	config, _ := Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DataDir", config.DataDir, "./data"},
		{"StorageBackend", config.StorageBackend, "file"},
		{"MongoDBURL", config.MongoDBURL, "mongodb://localhost:27017"},
		{"DBName", config.DBName, "Toothless"},
		{"MQTTHost", config.MQTTHost, ""},
		{"MQTTPort", config.MQTTPort, "1883"},
		{"Port", config.Port, "3000"},
		{"DashboardOrigin", config.DashboardOrigin, "*"},
		{"Environment", config.Environment, "dev"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s default = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if config.MQTTEnabled() {
		t.Error("MQTTEnabled() should be false without MQTT_Host")
	}
	if config.DashboardAuthEnabled() {
		t.Error("DashboardAuthEnabled() should be false without DASHBOARD_SECRET")
	}
}

func TestStorageSettings(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/toothless")
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("DASHBOARD_SECRET", "s3cret")
	t.Setenv("MQTT_Host", "broker")

	resetForTesting()
	config, _ := Load()

	if config.DataDir != "/var/lib/toothless" || config.StorageBackend != "mongo" {
		t.Errorf("storage = %q/%q", config.DataDir, config.StorageBackend)
	}
	if !config.DashboardAuthEnabled() || !config.MQTTEnabled() {
		t.Error("dashboard auth and MQTT should be enabled")
	}
}
