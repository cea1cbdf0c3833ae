package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/Technosystem-Labs/litex/log"
)

// Config holds the user-level configuration of the tool.
type Config struct {
	// ToolchainPath lists extra directories that are searched for the FPGA
	// toolchain programs before falling back to PATH.
	ToolchainPath []string `mapstructure:"toolchain_path"`
}

var config *Config

const configFileName string = "config"

func getConfigDir() (string, error) {
	if configDir, ok := os.LookupEnv("LITEX_CONFIG_DIR"); ok {
		return configDir, nil
	}
	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, "litex"), nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "litex"), nil
}

func loadConfiguration() Config {
	var config Config

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.SetDefault("toolchain_path", []string{})

	configDir, err := getConfigDir()
	if err != nil {
		log.Debug("Unable to locate the configuration directory. Using default configuration\n")
		return config
	}
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		log.Debug("No configuration file loaded: %s. Using default configuration\n", err)
	} else {
		log.Debug("Loaded configuration from `%s`\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&config); err != nil {
		log.Warning("Failed to decode configuration: %s. Using default configuration\n", err)
		return Config{}
	}

	// LITEX_TOOLCHAIN_PATH overrides the configuration file. The value uses
	// the platform's path list syntax, like PATH itself.
	if env := os.Getenv("LITEX_TOOLCHAIN_PATH"); env != "" {
		config.ToolchainPath = filepath.SplitList(env)
	}

	log.Debug("Running with configuration: %+v\n", config)
	return config
}

func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}

	return *config
}
