package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/CIDgravity/snakelet"
)

const DefaultConfigFile = "config/config.toml"

// config structure
type Config struct {
	Github  GithubConfig  `mapstructure:"GITHUB"`
	Ranking RankingConfig `mapstructure:"RANKING"`
	Output  OutputConfig  `mapstructure:"OUTPUT"`
	API     APIConfig     `mapstructure:"API"`
	Logs    LogsConfig    `mapstructure:"LOGS"`
}

type GithubConfig struct {
	Token    string `mapstructure:"Token"`    // overridden by GITHUB_TOKEN when set
	API      string `mapstructure:"API"`      // graphql | rest
	Endpoint string `mapstructure:"Endpoint"` // empty means github.com
}

type RankingConfig struct {
	Limit             int      `mapstructure:"Limit"`
	ExcludedLanguages []string `mapstructure:"ExcludedLanguages"`
}

type OutputConfig struct {
	Directory string `mapstructure:"Directory"`
	FileName  string `mapstructure:"FileName"`
	Title     string `mapstructure:"Title"`
	Theme     string `mapstructure:"Theme"` // dark | light
}

type APIConfig struct {
	ListenPort        string        `mapstructure:"ListenPort"`
	MinRenderInterval time.Duration `mapstructure:"MinRenderInterval"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJSON"`
}

// Load reads the TOML file at configFilePath over the defaults.
// The path is resolved next to the binary first, then from the working directory.
// A missing file is not an error: defaults are returned as is.
func Load(configFilePath string) (*Config, error) {
	if configFilePath == "" {
		configFilePath = DefaultConfigFile
	}

	resolved, err := resolve(configFilePath)
	if err != nil {
		return nil, err
	}

	cfg := GetDefault()

	if resolved == "" {
		return cfg, nil
	}

	// load default and config file content
	_, err = snakelet.InitAndLoad(cfg, resolved)

	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolve returns the first existing location for configFilePath, or an empty string
func resolve(configFilePath string) (string, error) {
	if filepath.IsAbs(configFilePath) {
		if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}

		return configFilePath, nil
	}

	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return "", err
	}

	for _, candidate := range []string{filepath.Join(dir, configFilePath), configFilePath} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		Github: GithubConfig{
			API: "graphql",
		},
		Ranking: RankingConfig{
			Limit:             10,
			ExcludedLanguages: []string{"HTML", "CSS", "SCSS", "Sass", "Less", "Stylus", "Markdown"},
		},
		Output: OutputConfig{
			Directory: "dist",
			FileName:  "languages.svg",
			Title:     "Most Used Languages",
			Theme:     "dark",
		},
		API: APIConfig{
			ListenPort:        "5000",
			MinRenderInterval: 30 * time.Second,
		},
		Logs: LogsConfig{
			Level:            "info",
			OutputLogsAsJSON: false,
		},
	}
}

// OutputPath is the location of the rendered card
func (c Config) OutputPath() string {
	return filepath.Join(c.Output.Directory, c.Output.FileName)
}
