package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/specialistvlad/rampcon/internal/app"
	"github.com/specialistvlad/rampcon/internal/publish"
	"github.com/specialistvlad/rampcon/internal/report"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rampcon", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
rampcon - render color ramps from per-input expressions.

Usage:
  rampcon [options] [PALETTE_PATH...]
  rampcon -model hsv -count 12 -set 'h=x*30' -set s=1 -set v=1

Arguments:
  PALETTE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	paletteFlag := flagSet.String("palette", "", "Path to a palette file or directory.")
	pFlag := flagSet.String("p", "", "Path to a palette file or directory (shorthand).")
	modelFlag := flagSet.String("model", "", "Color model for an ad-hoc palette built from -set and -aux.")
	countFlag := flagSet.Uint("count", 16, "Number of colors in the ad-hoc palette.")
	var setFlag, auxFlag assignmentsFlag
	flagSet.Var(&setFlag, "set", "Model input expression as name=expr. Repeatable.")
	flagSet.Var(&auxFlag, "aux", "Auxiliary variable as name=expr. Repeatable.")
	formatFlag := flagSet.String("format", "hex", "Report format. Options: 'hex', 'text' or 'json'.")
	listModelsFlag := flagSet.Bool("list-models", false, "List the available color models and their inputs.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent render workers. 0 uses all CPUs.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the HTTP server. 0 is disabled.")
	httpMaxCountFlag := flagSet.Uint("http-max-count", uint(app.DefaultMaxHTTPCount), "Largest count a palette request over HTTP may ask for.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server to publish rendered palettes to.")
	publishNamespaceFlag := flagSet.String("publish-namespace", "/", "socket.io namespace.")
	publishEventFlag := flagSet.String("publish-event", publish.DefaultEvent, "Event name used to publish a palette.")
	publishAckFlag := flagSet.String("publish-ack-event", "", "Event to wait for after publishing. Empty does not wait.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", publish.DefaultTimeout, "Timeout for one publish.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *paletteFlag != "" {
		paths = append(paths, *paletteFlag)
	}
	if *pFlag != "" {
		paths = append(paths, *pFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Palette paths determined.", "paths", paths)

	if len(paths) == 0 && *modelFlag == "" && !*listModelsFlag && *httpPortFlag <= 0 {
		slog.Debug("Nothing to do, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *countFlag > math.MaxUint32 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid count: must be at most %d", uint32(math.MaxUint32))}
	}
	if *httpMaxCountFlag == 0 || *httpMaxCountFlag > math.MaxUint32 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid http-max-count: must be between 1 and %d", uint32(math.MaxUint32))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PalettePaths: paths,
		Model:        *modelFlag,
		Count:        uint32(*countFlag),
		Set:          setFlag,
		Aux:          auxFlag,
		Format:       report.Format(*formatFlag),
		ListModels:   *listModelsFlag,
		WorkerCount:  *workersFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		HTTPPort:     *httpPortFlag,
		MaxHTTPCount: uint32(*httpMaxCountFlag),
		Publish: app.PublishConfig{
			URL:                *publishURLFlag,
			Namespace:          *publishNamespaceFlag,
			Event:              *publishEventFlag,
			AckEvent:           *publishAckFlag,
			Timeout:            *publishTimeoutFlag,
			InsecureSkipVerify: *publishInsecureFlag,
		},
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
