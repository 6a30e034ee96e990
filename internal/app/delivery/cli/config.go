package cli

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ClientConfig is resolved from flags, INTAKECTL_* variables and an
// optional config file, in that order of precedence.
type ClientConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	SessionFile string `mapstructure:"session_file"`
	Debug       bool   `mapstructure:"debug"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constvars.CLIEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(constvars.CLIConfigKeyBaseURL, constvars.CLIDefaultAPIURL)
	v.SetDefault(constvars.CLIConfigKeySessionFile, defaultSessionFile())
	v.SetDefault(constvars.CLIConfigKeyDebug, false)

	for _, key := range []string{
		constvars.CLIConfigKeyBaseURL,
		constvars.CLIConfigKeyAPIKey,
		constvars.CLIConfigKeySessionFile,
		constvars.CLIConfigKeyDebug,
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func loadClientConfig(v *viper.Viper, configFile string) (*ClientConfig, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &ClientConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKey = strings.Trim(strings.TrimSpace(cfg.APIKey), `"'`)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s is required", constvars.CLIConfigKeyBaseURL)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s is required, set %s_API_KEY or pass --api-key", constvars.CLIConfigKeyAPIKey, constvars.CLIEnvPrefix)
	}
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, constvars.CLIName, constvars.CLISessionFile)
}
