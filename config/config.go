package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sdloop/types"

	"github.com/TypeTerrors/gonfig"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRequestTimeout = 3600
	DefaultLogLevel       = "info"
)

// Config is the whole run description. The first four keys keep the names
// used by existing config.yml files.
type Config struct {
	Api          string                 `yaml:"Api"`
	SaveDir      string                 `yaml:"SaveDir"`
	RunningState bool                   `yaml:"RunningState"`
	Data         []types.Txt2ImgRequest `yaml:"Data"`

	TimeZone       string       `yaml:"TimeZone"`
	LogLevel       string       `yaml:"LogLevel"`
	RequestTimeout int          `yaml:"RequestTimeout"` // seconds
	Status         StatusConfig `yaml:"Status"`
}

type StatusConfig struct {
	Port string `yaml:"Port"`
}

// Load reads the YAML file at path, expanding ${VAR} references from the
// environment and the optional dotenv file. gonfig runs Validate after
// decoding, so a malformed file never reaches the run loop.
func Load(path, envPath string) (Config, error) {
	cfg, err := gonfig.Load[Config](
		gonfig.WithConfigFile(path),
		gonfig.WithDotenv(envPath), // ignored if missing
		gonfig.WithStrict(),
	)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// UnmarshalYAML rejects documents missing any of the four run keys. Job
// entries check their own keys the same way.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if err := types.RequireKeys(node, "Api", "SaveDir", "RunningState", "Data"); err != nil {
		return err
	}
	type plain Config
	return node.Decode((*plain)(c))
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Api) == "" {
		errs = append(errs, errors.New("Api is required"))
	}
	if strings.TrimSpace(c.SaveDir) == "" {
		errs = append(errs, errors.New("SaveDir is required"))
	}
	if c.Data == nil {
		errs = append(errs, errors.New("Data is required"))
	}
	for i, job := range c.Data {
		if job.AlwaysonScripts.ADetailer.Args == nil {
			errs = append(errs, fmt.Errorf("Data[%d]: alwayson_scripts.ADetailer.args is required", i))
		}
	}

	if lvl := strings.TrimSpace(c.LogLevel); lvl != "" {
		if _, err := log.ParseLevel(lvl); err != nil {
			errs = append(errs, fmt.Errorf("invalid LogLevel %q: %w", lvl, err))
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	c.Api = strings.TrimSpace(c.Api)
	c.SaveDir = strings.TrimSpace(c.SaveDir)
	c.Status.Port = strings.TrimSpace(c.Status.Port)
	c.LogLevel = strings.TrimSpace(c.LogLevel)

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Location resolves TimeZone, falling back to the local zone when unset.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.TimeZone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TimeZone %q: %w", tz, err)
	}
	return loc, nil
}

func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (c Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}
