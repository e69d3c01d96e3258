package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Source    string   `mapstructure:"source"`
	Output    string   `mapstructure:"output"`
	LogFile   string   `mapstructure:"log_file"`
	ImageExt  []string `mapstructure:"image_extensions"`
	VideoExt  []string `mapstructure:"video_extensions"`
	FixDates  bool     `mapstructure:"fix_timestamps"`
	UseTool   bool     `mapstructure:"use_exiftool"`
	Keywords  []string `mapstructure:"category_keywords"`
	JunkNames []string `mapstructure:"junk_files"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("narsil")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "narsil"))

	// Set defaults:
	viper.SetDefault("source", filepath.Join(os.Getenv("HOME"), "narsil/to_sort"))
	viper.SetDefault("output", filepath.Join(os.Getenv("HOME"), "narsil/sorted"))
	viper.SetDefault("log_file", filepath.Join(os.Getenv("HOME"), "narsil/sort_log.csv"))
	viper.SetDefault("image_extensions", []string{".jpg", ".jpeg", ".png", ".tiff", ".heic", ".bmp"})
	viper.SetDefault("video_extensions", []string{".mp4", ".mov", ".avi", ".mkv", ".3gp", ".mpg"})
	viper.SetDefault("fix_timestamps", true)
	viper.SetDefault("use_exiftool", false)
	viper.SetDefault("category_keywords", []string{
		"whatsapp", "screenshot", "scan",
		"instagram", "facebook", "messenger",
		"snapchat", "tiktok", "wechat", "telegram",
	})
	viper.SetDefault("junk_files", []string{
		".ds_store", "desktop.ini", "thumbs.db",
		"._thumbs", ".nomedia", ".picasa", ".picasaoriginals",
	})

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// IsImage reports whether ext (lowercase, with dot) is a configured image extension.
func (c *Config) IsImage(ext string) bool {
	for _, e := range c.ImageExt {
		if ext == e {
			return true
		}
	}
	return false
}

// IsVideo reports whether ext (lowercase, with dot) is a configured video extension.
func (c *Config) IsVideo(ext string) bool {
	for _, e := range c.VideoExt {
		if ext == e {
			return true
		}
	}
	return false
}
