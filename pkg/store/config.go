package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/arc/pkg/calendar"
)

// Config describes where and how habit history is stored.
type Config interface {
	BasePath() string
	Driver() string
	Calendar() calendar.Config
}

// LoadConfig reads .arc.yaml from $ARC_CONFIG_PATH or the working directory,
// with ARC_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.arc.db")
	viper.SetDefault("driver", string(DriverDiskv))
	viper.SetDefault("first_weekday", "monday")
	viper.SetDefault("timezone", "Local")
	viper.SetConfigName(".arc") // .yaml is implicit
	viper.SetEnvPrefix("ARC")
	viper.AutomaticEnv()

	if override := os.Getenv("ARC_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return NewFileConfig(
		viper.GetString("path"),
		viper.GetString("driver"),
		viper.GetString("first_weekday"),
		viper.GetString("timezone"),
	)
}

// NewFileConfig validates raw settings. The path may start with ~.
func NewFileConfig(path, driver, firstWeekday, timezone string) (*FileConfig, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", path, err)
	}
	wd, err := calendar.ParseWeekday(firstWeekday)
	if err != nil {
		return nil, err
	}
	loc := time.Local
	if tz := strings.TrimSpace(timezone); tz != "" && !strings.EqualFold(tz, "local") {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("store: timezone %q: %w", tz, err)
		}
	}
	return &FileConfig{
		Path:         expanded,
		Backend:      driver,
		FirstWeekday: wd,
		Location:     loc,
	}, nil
}

// FileConfig is the resolved configuration.
type FileConfig struct {
	Path         string         `json:"path"`
	Backend      string         `json:"driver"`
	FirstWeekday time.Weekday   `json:"first_weekday"`
	Location     *time.Location `json:"-"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Driver() string {
	return f.Backend
}

func (f *FileConfig) Calendar() calendar.Config {
	return calendar.Config{Location: f.Location, FirstWeekday: f.FirstWeekday}
}
