package globepins

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
)

type GlobeConfig struct {
	// Radius is where markers are placed. It sits slightly inside SurfaceRadius so pins
	// poke out of the rendered globe.
	Radius        float64 `mapstructure:"radius"`
	SurfaceRadius float64 `mapstructure:"surfaceRadius"`
}

type MarkerConfig struct {
	PinRadius     float64 `mapstructure:"pinRadius"`
	MinSeparation float64 `mapstructure:"minSeparation"`
	Catalog       string  `mapstructure:"catalog"`
}

type CameraConfig struct {
	Position    []float64 `mapstructure:"position"`
	Fov         float64   `mapstructure:"fov"`
	Near        float64   `mapstructure:"near"`
	Far         float64   `mapstructure:"far"`
	MinDistance float64   `mapstructure:"minDistance"`
	MaxDistance float64   `mapstructure:"maxDistance"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogColor bool   `mapstructure:"logColor"`

	Globe  GlobeConfig  `mapstructure:"globe"`
	Marker MarkerConfig `mapstructure:"marker"`
	Camera CameraConfig `mapstructure:"camera"`
	Window WindowConfig `mapstructure:"window"`

	Loop struct {
		Hz int `mapstructure:"hz"`
	} `mapstructure:"loop"`
	Metrics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logColor", true)

	viper.SetDefault("globe.radius", 0.681)
	viper.SetDefault("globe.surfaceRadius", 0.7)

	viper.SetDefault("marker.pinRadius", 0.02)
	viper.SetDefault("marker.minSeparation", 0.01)
	viper.SetDefault("marker.catalog", "")

	viper.SetDefault("camera.position", []float64{1, 1, 2})
	viper.SetDefault("camera.fov", 75.0)
	viper.SetDefault("camera.near", 0.1)
	viper.SetDefault("camera.far", 10.0)
	viper.SetDefault("camera.minDistance", 1.2)
	viper.SetDefault("camera.maxDistance", 6.5)

	viper.SetDefault("window.width", 1024)
	viper.SetDefault("window.height", 768)

	viper.SetDefault("loop.hz", 60)
	viper.SetDefault("metrics.addr", "")
}

// LoadConfig sets defaults and merges globepins.{json,yaml,...} from configDir when present.
// A missing file is not an error.
func LoadConfig(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName("globepins")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("GLOBEPINS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Globe.Radius <= 0 {
		return fmt.Errorf("globe.radius must be positive, got %v", c.Globe.Radius)
	}
	if c.Marker.PinRadius <= 0 {
		return fmt.Errorf("marker.pinRadius must be positive, got %v", c.Marker.PinRadius)
	}
	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("camera.position needs 3 components, got %d", len(c.Camera.Position))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// NewCamera builds the session camera from the config.
func (c Config) NewCamera() *PerspectiveCamera {
	pos := mgl64.Vec3{c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]}
	cam := NewPerspectiveCamera(pos, c.Camera.Fov, float64(c.Window.Width)/float64(c.Window.Height), c.Camera.Near, c.Camera.Far)
	cam.MinDistance = c.Camera.MinDistance
	cam.MaxDistance = c.Camera.MaxDistance
	return cam
}
