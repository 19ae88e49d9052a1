package util

import (
	"fmt"

	"github.com/spf13/viper"
)

const configName = "terranav"

// ReadConfig loads <dir>/terranav.yaml into viper. a missing file is
// reported to the caller, who falls back to the viper defaults.
func ReadConfig(dir string) error {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config from %s: %w", dir, err)
	}
	return nil
}
