package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/bookinfo/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles     bool
	OpenLibraryBaseURL string
	RequestTimeout     time.Duration
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:     config.OverwriteFiles,
		OpenLibraryBaseURL: config.OpenLibraryBaseURL,
		RequestTimeout:     config.RequestTimeout,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.OpenLibraryBaseURL = state.OpenLibraryBaseURL
	config.RequestTimeout = state.RequestTimeout
}

// ResetConfig resets viper and restores config globals when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig resets configuration and points OpenLibrary at baseURL.
func SetTestConfig(t *testing.T, baseURL string) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()

	config.OverwriteFiles = true
	config.OpenLibraryBaseURL = baseURL
	config.RequestTimeout = 5 * time.Second
}

// SetViperValue sets a viper configuration value for the duration of the test.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		// viper has no Unset, so an unset key is left at the test value.
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupDatasetteDB enables the SQLite export into the test environment and returns the database path.
func SetupDatasetteDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("test.db")
	SetViperValue(t, "datasette.enabled", true)
	SetViperValue(t, "datasette.dbfile", dbPath)

	return dbPath
}
