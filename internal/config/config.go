package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"shellmate/internal/app"
)

// Config captures runtime configuration for the menu command.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envStorePath  = "SHELLMATE_CONFIG"
	envLogFile    = "SHELLMATE_LOG_FILE"
	envTrace      = "SHELLMATE_TRACE"
	envVerbose    = "SHELLMATE_VERBOSE"
	envEscTimeout = "SHELLMATE_ESC_TIMEOUT_MS"
	envASCII      = "SHELLMATE_ASCII"
	envNoColor    = "SHELLMATE_NO_COLOR"
)

const usageLine = "usage: shellmate menu [menu_type]"

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("shellmate", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	storePath := fs.String("config", envOrDefault(env, envStorePath, ""), "path to the JSON config store")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "log every key event and state transition")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show a banner after successful toggle writes")
	escTimeout := fs.Int("esc-timeout-ms", envOrInt(env, envEscTimeout, 40), "wait for escape-sequence bytes before reporting a lone ESC")
	ascii := fs.Bool("ascii", envOrBool(env, envASCII, false), "force ASCII box-drawing characters")
	noColor := fs.Bool("no-color", envOrBool(env, envNoColor, false), "disable color output")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w\n%s", err, usageLine)
	}

	if *escTimeout < 10 || *escTimeout > 500 {
		return Config{}, fmt.Errorf("esc-timeout-ms must be between 10 and 500 (got %d)", *escTimeout)
	}

	menuType, err := parseCommand(fs.Args())
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			MenuType:     menuType,
			StorePath:    *storePath,
			EscTimeoutMS: *escTimeout,
			ForceASCII:   *ascii,
			NoColor:      *noColor,
			Verbose:      *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":       *storePath,
			"logFile":      *logFile,
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"escTimeoutMs": strconv.Itoa(*escTimeout),
			"ascii":        strconv.FormatBool(*ascii),
			"noColor":      strconv.FormatBool(*noColor),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// parseCommand validates the positional arguments: the menu subcommand plus
// an optional menu type.
func parseCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing subcommand\n%s", usageLine)
	}
	if args[0] != "menu" {
		return "", fmt.Errorf("unknown subcommand %q\n%s", args[0], usageLine)
	}
	switch len(args) {
	case 1:
		return "", nil
	case 2:
		return args[1], nil
	default:
		return "", fmt.Errorf("too many arguments\n%s", usageLine)
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
