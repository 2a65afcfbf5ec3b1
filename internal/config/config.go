package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultInputFile is read when no input file is configured.
	DefaultInputFile = "assets/ISBN_Input_File.txt"
	// DefaultOutputFile is written when no report file is configured.
	DefaultOutputFile = "output/ISBN_Output_File.csv"
	// DefaultOpenLibraryBaseURL is the public OpenLibrary endpoint.
	DefaultOpenLibraryBaseURL = "https://openlibrary.org"
	// DefaultRequestTimeout is zero: OpenLibrary lookups wait as long as the server takes.
	DefaultRequestTimeout time.Duration = 0
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing JSON exports should be overwritten
	OverwriteFiles bool
	// OpenLibraryBaseURL is the base URL of the OpenLibrary API
	OpenLibraryBaseURL = DefaultOpenLibraryBaseURL
	// RequestTimeout is the HTTP timeout for OpenLibrary requests, zero for none
	RequestTimeout = DefaultRequestTimeout
)

// SetDefaults registers the default configuration values with viper
func SetDefaults() {
	viper.SetDefault("resolve.input", DefaultInputFile)
	viper.SetDefault("resolve.output", DefaultOutputFile)
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)

	viper.SetDefault("openlibrary.baseurl", DefaultOpenLibraryBaseURL)
	viper.SetDefault("openlibrary.timeout", DefaultRequestTimeout.String())

	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.dbfile", "./bookinfo.db")
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OverwriteFiles = viper.GetBool("OverwriteFiles")

	OpenLibraryBaseURL = viper.GetString("openlibrary.baseurl")
	if OpenLibraryBaseURL == "" {
		OpenLibraryBaseURL = DefaultOpenLibraryBaseURL
	}

	RequestTimeout = DefaultRequestTimeout
	timeoutStr := viper.GetString("openlibrary.timeout")
	if timeout, err := time.ParseDuration(timeoutStr); err != nil || timeout < 0 {
		slog.Warn("Invalid OpenLibrary timeout, using default", "timeout", timeoutStr, "default", DefaultRequestTimeout)
	} else {
		RequestTimeout = timeout
	}
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
