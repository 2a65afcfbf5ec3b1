package resolve

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lepinkainen/bookinfo/internal/config"
	"github.com/spf13/viper"
)

// Params holds everything a resolve run needs.
type Params struct {
	InputPath  string
	OutputPath string
	WriteJSON  bool
	JSONOutput string
	Overwrite  bool
	BaseURL    string
	Timeout    time.Duration
}

var resolveFunc = Resolve

// ResolveWithParams fills in configured defaults and runs the resolver.
func ResolveWithParams(params Params) error {
	if params.InputPath == "" {
		params.InputPath = viper.GetString("resolve.input")
	}
	if params.InputPath == "" {
		return fmt.Errorf("input file is required (provide via --input flag or resolve.input in config)")
	}

	if params.OutputPath == "" {
		params.OutputPath = viper.GetString("resolve.output")
	}
	if params.OutputPath == "" {
		return fmt.Errorf("output file is required (provide via --output flag or resolve.output in config)")
	}

	if params.WriteJSON && params.JSONOutput == "" {
		jsonBaseDir := viper.GetString("jsonoutputdir")
		if jsonBaseDir == "" {
			jsonBaseDir = "json"
		}
		params.JSONOutput = filepath.Clean(filepath.Join(jsonBaseDir, "bookinfo.json"))
	}

	if params.BaseURL == "" {
		params.BaseURL = config.OpenLibraryBaseURL
	}
	if params.Timeout <= 0 {
		params.Timeout = config.RequestTimeout
	}

	return resolveFunc(params)
}
