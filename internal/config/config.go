// Package config holds the runtime configuration and its validation.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/idelchi/gogen/pkg/validator"
)

// ErrSamePath is returned when a derived output path would overwrite the input.
var ErrSamePath = errors.New("output path equals input path")

// Key holds the two mutually exclusive ways of supplying the cipher key.
type Key struct {
	// String is the hex-encoded key.
	String string `mapstructure:"key" validate:"exclusive=File" label:"--key"`

	// File is a path to a file containing the hex-encoded key.
	File string `mapstructure:"key-file" label:"--key-file"`
}

// Suffixes controls how output paths are derived from input paths.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" validate:"required" label:"--encrypt-ext"`
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Config contains all settings of one run.
type Config struct {
	// Show prints the configuration and exits.
	Show bool

	// ConfigFile is an optional JSONC file with default values.
	ConfigFile string `mapstructure:"config"`

	Key Key `mapstructure:",squash"`

	// KeySize is the AES variant in bits; zero infers it from the key length.
	KeySize int `mapstructure:"key-size" validate:"omitempty,oneof=128 192 256" label:"--key-size"`

	// IV is the hex-encoded 16-byte base counter.
	IV string `mapstructure:"iv" validate:"required,len=32,hexadecimal" label:"--iv"`

	Input  string `mapstructure:"input" validate:"required" label:"--input"`
	Output string `mapstructure:"output"`

	Suffixes Suffixes `mapstructure:",squash"`

	Parallel  int `mapstructure:"parallel" validate:"min=1" label:"--parallel"`
	ChunkSize int `mapstructure:"chunk-size" validate:"min=16,blockaligned" label:"--chunk-size"`

	Quiet              bool
	Verbose            bool
	Stats              bool
	Dry                bool
	Delete             bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Decrypt only changes how the default output path is derived.
	Decrypt bool `mapstructure:"-"`
}

// Validate checks the configuration against its struct tags.
// Every failure wraps validator.ErrValidation and reads in terms of flag names.
func (c *Config) Validate() error {
	validate := validator.NewValidator()

	if err := registerValidators(validate); err != nil {
		return err
	}

	errs := validate.Validate(c)

	if c.Key.String == "" && c.Key.File == "" {
		errs = append(errs, fmt.Errorf("%w: one of --key or --key-file is required", validator.ErrValidation))
	}

	if len(errs) == 0 {
		return nil
	}

	// Translated errors come from a map; sort them for stable output.
	slices.SortFunc(errs, func(a, b error) int {
		return cmp.Compare(a.Error(), b.Error())
	})

	return fmt.Errorf("validating configuration:\n%w", errors.Join(errs...))
}
