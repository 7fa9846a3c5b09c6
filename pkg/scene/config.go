package scene

import (
	"fmt"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/spf13/viper"
)

// Config is the renderer's configuration record: width, height, numSamples,
// numSubSamples, maxBounceCount, maxRenderingSec, cpuCoreCount, and
// sceneName, loadable from flags, environment variables, or a config file
// via viper.
type Config struct {
	Width                     int     `mapstructure:"width"`
	Height                    int     `mapstructure:"height"`
	NumSamples                int     `mapstructure:"numSamples"`
	NumSubSamples             int     `mapstructure:"numSubSamples"`
	MaxBounceCount            int     `mapstructure:"maxBounceCount"`
	RussianRouletteMinBounces int     `mapstructure:"russianRouletteMinBounces"`
	MaxRenderingSec           float64 `mapstructure:"maxRenderingSec"`
	CpuCoreCount              int     `mapstructure:"cpuCoreCount"`
	SceneName                 string  `mapstructure:"sceneName"`
	OutputPath                string  `mapstructure:"outputPath"`
}

// DefaultConfig returns sensible defaults, overridden by whatever flags,
// env vars, or config file LoadConfig layers on top.
func DefaultConfig() Config {
	return Config{
		Width:                     512,
		Height:                    512,
		NumSamples:                64,
		NumSubSamples:             2,
		MaxBounceCount:            8,
		RussianRouletteMinBounces: 4,
		MaxRenderingSec:           0, // 0 disables the wall-clock budget
		CpuCoreCount:              0, // 0 means auto-detect
		SceneName:                 "cornell-box",
		OutputPath:                "render.png",
	}
}

// LoadConfig builds a Config from defaults, an optional config file, and
// environment variables prefixed PATHTRACER_ (e.g. PATHTRACER_WIDTH),
// highest precedence last. v is typically bound to cobra flags by the
// caller before LoadConfig unmarshals the merged result.
func LoadConfig(v *viper.Viper, configPath string) (Config, error) {
	cfg := DefaultConfig()

	v.SetEnvPrefix("PATHTRACER")
	v.AutomaticEnv()

	v.SetDefault("width", cfg.Width)
	v.SetDefault("height", cfg.Height)
	v.SetDefault("numSamples", cfg.NumSamples)
	v.SetDefault("numSubSamples", cfg.NumSubSamples)
	v.SetDefault("maxBounceCount", cfg.MaxBounceCount)
	v.SetDefault("russianRouletteMinBounces", cfg.RussianRouletteMinBounces)
	v.SetDefault("maxRenderingSec", cfg.MaxRenderingSec)
	v.SetDefault("cpuCoreCount", cfg.CpuCoreCount)
	v.SetDefault("sceneName", cfg.SceneName)
	v.SetDefault("outputPath", cfg.OutputPath)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("scene: read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("scene: unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the configuration errors spec'd as fatal-before-render:
// bad resolution, zero samples, and the like.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("scene: invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.NumSamples <= 0 {
		return fmt.Errorf("scene: numSamples must be positive, got %d", c.NumSamples)
	}
	if c.NumSubSamples <= 0 {
		return fmt.Errorf("scene: numSubSamples must be positive, got %d", c.NumSubSamples)
	}
	if c.NumSamples%(c.NumSubSamples*c.NumSubSamples) != 0 {
		return fmt.Errorf("scene: numSamples (%d) must be a multiple of numSubSamples^2 (%d)", c.NumSamples, c.NumSubSamples*c.NumSubSamples)
	}
	if c.MaxBounceCount <= 0 {
		return fmt.Errorf("scene: maxBounceCount must be positive, got %d", c.MaxBounceCount)
	}
	if c.SceneName == "" {
		return fmt.Errorf("scene: sceneName must not be empty")
	}
	return nil
}

// SamplingConfig converts the loaded Config into the core.SamplingConfig
// the integrator and tile scheduler consume.
func (c Config) SamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		Width:                     c.Width,
		Height:                    c.Height,
		SamplesPerPixel:           c.NumSamples,
		NumSubSamples:             c.NumSubSamples,
		MaxBounceCount:            c.MaxBounceCount,
		RussianRouletteMinBounces: c.RussianRouletteMinBounces,
		MaxRenderingSec:           c.MaxRenderingSec,
		CpuCoreCount:              c.CpuCoreCount,
	}
}
