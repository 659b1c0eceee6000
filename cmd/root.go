package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"plantmanager/internal/api"
)

// Environment variables read when the matching flag is not set.
const (
	APIURLEnvVar   = "PLANTMANAGER_API_URL"
	LogLevelEnvVar = "PLANTMANAGER_LOG_LEVEL"
)

// Config holds CLI configuration.
type Config struct {
	DBPath   string
	APIURL   string
	LogLevel string
	LogPath  string
	UserName string
}

type flagValues struct {
	dbPath      string
	apiURL      string
	logLevel    string
	showVersion bool
}

// ParseFlags parses command-line flags, the environment and the settings file
// and returns configuration. The first interactive run asks for the user's name.
func ParseFlags(version string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	flags, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		return nil, err
	}
	if flags.showVersion {
		fmt.Println("plantmanager", version)
		os.Exit(0)
	}

	configDir, err := resolveConfigDir(flags.dbPath)
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if shouldRunOnboarding(settings) {
		settings, err = runOnboarding(configDir, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	return resolveConfig(flags, settings, configDir, os.Getenv), nil
}

func parseArgs(args []string, output io.Writer) (flagValues, error) {
	var v flagValues
	fs := flag.NewFlagSet("plantmanager", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&v.dbPath, "db", "", "Path to SQLite database file (default: ~/.plantmanager/plantmanager.db)")
	fs.StringVar(&v.apiURL, "api-url", "", "Plants API base URL (or set "+APIURLEnvVar+")")
	fs.StringVar(&v.logLevel, "log-level", "", "debug, info, warn or error (or set "+LogLevelEnvVar+")")
	fs.BoolVar(&v.showVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return flagValues{}, err
	}
	return v, nil
}

// resolveConfigDir returns the directory holding settings and logs: the
// database's directory when --db is given, ~/.plantmanager otherwise.
func resolveConfigDir(dbPath string) (string, error) {
	if dbPath != "" {
		return filepath.Dir(dbPath), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".plantmanager")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// resolveConfig applies flag > environment > settings file > default.
func resolveConfig(flags flagValues, settings Settings, configDir string, getenv func(string) string) *Config {
	config := &Config{
		DBPath:   flags.dbPath,
		APIURL:   firstNonEmpty(flags.apiURL, getenv(APIURLEnvVar), settings.APIURL, api.DefaultBaseURL),
		LogLevel: firstNonEmpty(flags.logLevel, getenv(LogLevelEnvVar), settings.LogLevel),
		LogPath:  filepath.Join(configDir, "plantmanager.log"),
		UserName: settings.UserName,
	}
	if config.DBPath == "" {
		config.DBPath = filepath.Join(configDir, "plantmanager.db")
	}
	return config
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if key == "" {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
