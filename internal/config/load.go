package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// EnvPrefix is prepended to every environment variable, e.g. AESCTR_KEY_FILE.
const EnvPrefix = "AESCTR"

// Load merges, from lowest to highest priority, flag defaults, the JSONC file named by
// the "config" flag, AESCTR_* environment variables and explicitly set flags into cfg.
func Load(flags *pflag.FlagSet, cfg *Config) error {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		if err := readFile(v, path); err != nil {
			return err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// readFile loads a JSON file that may contain comments and trailing commas.
func readFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return nil
}
