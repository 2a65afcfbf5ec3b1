package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/bookinfo/cmd/resolve"
	"github.com/lepinkainen/bookinfo/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

var runResolve = resolve.ResolveWithParams

// CLI represents the complete command structure for the bookinfo application
type CLI struct {
	// Global flags. Pointer flags are nil when not given so config.yaml values survive.
	Overwrite *bool `help:"Overwrite existing JSON export files (defaults to OverwriteFiles)"`
	Verbose   bool  `short:"v" help:"Enable debug logging"`

	// Datasette flags
	Datasette   *bool   `help:"Also write resolved rows to a SQLite database (defaults to datasette.enabled)"`
	DatasetteDB *string `help:"Path to SQLite database file (defaults to datasette.dbfile)"`

	Resolve ResolveCmd `cmd:"" default:"withargs" help:"Resolve ISBNs from an input file into a book report"`
}

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	Input      string        `short:"f" help:"Path to the ISBN input file (one comma-separated list per line)"`
	Output     string        `short:"o" help:"Path to the semicolon-delimited report file"`
	JSON       bool          `help:"Write resolved rows to JSON format"`
	JSONOutput string        `help:"Path to JSON output file (defaults to json/bookinfo.json)"`
	BaseURL    string        `help:"OpenLibrary base URL (defaults to openlibrary.baseurl or OPENLIBRARY_BASE_URL)"`
	Timeout    time.Duration `help:"Timeout for a single OpenLibrary request (defaults to openlibrary.timeout, none if unset)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookinfo"),
		kong.Description("Resolve ISBNs into book metadata using OpenLibrary, caching repeated lookups."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(slog.LevelDebug)
	}

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// initConfig registers defaults and environment bindings and reads
// config.yaml from the working directory when one exists.
func initConfig() error {
	config.SetDefaults()

	viper.AutomaticEnv()
	if err := viper.BindEnv("openlibrary.baseurl", "OPENLIBRARY_BASE_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("openlibrary.timeout", "OPENLIBRARY_TIMEOUT"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
	return nil
}

// updateGlobalConfig applies flags the user passed on top of the loaded configuration.
func updateGlobalConfig(cli *CLI) {
	if cli.Overwrite != nil {
		config.SetOverwriteFiles(*cli.Overwrite)
	}
	if cli.Datasette != nil {
		viper.Set("datasette.enabled", *cli.Datasette)
	}
	if cli.DatasetteDB != nil {
		viper.Set("datasette.dbfile", *cli.DatasetteDB)
	}
}

// Run executes the resolve command
func (r *ResolveCmd) Run() error {
	return runResolve(resolve.Params{
		InputPath:  r.Input,
		OutputPath: r.Output,
		WriteJSON:  r.JSON,
		JSONOutput: r.JSONOutput,
		Overwrite:  config.OverwriteFiles,
		BaseURL:    r.BaseURL,
		Timeout:    r.Timeout,
	})
}

func initLogging(level slog.Level) {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
