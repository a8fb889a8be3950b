// Package config holds the scorer configuration: a YAML file layered over
// built-in defaults and checked with struct validation tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ayshrv/visitron/eval"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/metrics"
)

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete scorer configuration.
type Config struct {
	ErrorMargin     float64  `yaml:"error_margin" validate:"gt=0"`
	Dataset         string   `yaml:"dataset" validate:"dataset"`
	PathType        string   `yaml:"path_type" validate:"pathtype"`
	Splits          []string `yaml:"splits" validate:"min=1,dive,oneof=train val_seen val_unseen test"`
	DataRoot        string   `yaml:"data_root" validate:"required"`
	ConnectivityDir string   `yaml:"connectivity_dir" validate:"required"`
	Workers         int      `yaml:"workers" validate:"gte=0"`
	Mode            string   `yaml:"mode" validate:"oneof=strict permissive"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Server  ServerConfig  `yaml:"server"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig configures metric export for batch runs.
type MetricsConfig struct {
	// Textfile, when set, receives the registry after a run.
	Textfile string `yaml:"textfile"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("dataset", func(fl validator.FieldLevel) bool {
		_, err := groundtruth.ParseDataset(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("pathtype", func(fl validator.FieldLevel) bool {
		_, err := groundtruth.ParsePathType(fl.Field().String())
		return err == nil
	})
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ErrorMargin:     metrics.DefaultErrorMargin,
		Dataset:         string(groundtruth.NDH),
		PathType:        string(groundtruth.PlannerPath),
		Splits:          []string{"val_seen"},
		DataRoot:        "srv/task_data",
		ConnectivityDir: "connectivity",
		Mode:            string(eval.ModeStrict),
		Log:             LogConfig{Level: "info"},
		Server:          ServerConfig{Addr: "localhost:8080"},
	}
}

// Load reads the YAML file at path over Default. An empty path returns the
// defaults. The result is not validated; call Validate after applying
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field constraint and reports all violations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// DatasetValue returns the parsed dataset. Valid after Validate.
func (c Config) DatasetValue() groundtruth.Dataset { return groundtruth.Dataset(c.Dataset) }

// PathTypeValue returns the parsed path type. Valid after Validate.
func (c Config) PathTypeValue() groundtruth.PathType { return groundtruth.PathType(c.PathType) }

// ModeValue returns the parsed failure mode. Valid after Validate.
func (c Config) ModeValue() eval.Mode { return eval.Mode(c.Mode) }
