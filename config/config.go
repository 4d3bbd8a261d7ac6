// Package config loads eeconv settings from config file, environment
// and defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// Plugin controls whether converted scripts carry the QGIS
	// ee_plugin import.
	Plugin bool `mapstructure:"plugin"`
	// RepoURL is the base URL recorded in provenance comments when
	// converting directory trees.
	RepoURL string `mapstructure:"repo_url"`
	// Template is the notebook template path for notebook assembly.
	Template string `mapstructure:"template"`
	// GitHub account and repository used when rewriting notebook
	// badge URLs.
	User string `mapstructure:"user"`
	Repo string `mapstructure:"repo"`
	// External tools.
	ConvertTool string `mapstructure:"convert_tool"`
	JupyterTool string `mapstructure:"jupyter"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("plugin", true)
	viper.SetDefault("repo_url", "")
	viper.SetDefault("template", "")
	viper.SetDefault("user", "giswqs")
	viper.SetDefault("repo", "geemap")
	viper.SetDefault("convert_tool", "ipynb-py-convert")
	viper.SetDefault("jupyter", "jupyter")

	viper.SetConfigName("eeconv")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "eeconv"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("EECONV")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}
