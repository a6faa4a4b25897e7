package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Wave Background - Esc/Q: Quit, F3: Stats"

	// Capability profile
	CompactWidth     = 768
	LowPowerCPUs     = 4
	LowPowerMemoryGB = 4
	MaxPixelRatio    = 2

	// Population sizes
	ParticleCount        = 60
	CompactParticleCount = 20
	ShapeCount           = 20
	CompactShapeCount    = 6

	// Connection distances in logical pixels
	ConnectDistance         = 80
	LowPowerConnectDistance = 50

	// Palette
	ParticleColor   = "#f97316b3"
	ShapeColor      = "#f973164d"
	ConnectionColor = "#f973161a"

	FrameTapSize = 120
	TerminalFPS  = 30
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Profile struct {
	CompactWidth     float64 `yaml:"compact_width"`
	CPUThreshold     int     `yaml:"cpu_threshold"`
	MemoryThresholdG float64 `yaml:"memory_threshold_gb"`
	MaxPixelRatio    float64 `yaml:"max_pixel_ratio"`
}

// Population holds the per-profile entity parameters. Ranges are sampled
// uniformly; "LowPower" variants apply when the capability profile is low power.
type Population struct {
	Particles        int     `yaml:"particles"`
	CompactParticles int     `yaml:"compact_particles"`
	Shapes           int     `yaml:"shapes"`
	CompactShapes    int     `yaml:"compact_shapes"`
	Speed            Range   `yaml:"speed"`
	LowPowerSpeed    Range   `yaml:"low_power_speed"`
	Amplitude        Range   `yaml:"amplitude"`
	LowPowerAmp      Range   `yaml:"low_power_amplitude"`
	Frequency        Range   `yaml:"frequency"`
	Radius           float64 `yaml:"radius"`
	LowPowerRadius   float64 `yaml:"low_power_radius"`
	ShapeSize        Range   `yaml:"shape_size"`
	ShapeVelocity    Range   `yaml:"shape_velocity"`
	ShapeSpin        Range   `yaml:"shape_spin"`
}

type Connections struct {
	FullDistance float64 `yaml:"full_distance"`
	// LowPowerDistance is kept for parity with the page script; the frame
	// loop never draws connections on low-power profiles.
	LowPowerDistance float64 `yaml:"low_power_distance"`
}

type Palette struct {
	Particle   string `yaml:"particle"`
	Shape      string `yaml:"shape"`
	Connection string `yaml:"connection"`
}

type Loop struct {
	FPS int `yaml:"fps"`
}

type Log struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type Metrics struct {
	Addr string `yaml:"addr"`
}

// Config is the full runtime configuration shared by every binary.
type Config struct {
	Window      Window      `yaml:"window"`
	Profile     Profile     `yaml:"profile"`
	Population  Population  `yaml:"population"`
	Connections Connections `yaml:"connections"`
	Palette     Palette     `yaml:"palette"`
	Loop        Loop        `yaml:"loop"`
	Log         Log         `yaml:"log"`
	Metrics     Metrics     `yaml:"metrics"`
	// Seed fixes the random source; zero draws from OS entropy.
	Seed uint64 `yaml:"seed"`
}

// Default returns the configuration matching the landing page background.
func Default() Config {
	return Config{
		Window: Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Profile: Profile{
			CompactWidth:     CompactWidth,
			CPUThreshold:     LowPowerCPUs,
			MemoryThresholdG: LowPowerMemoryGB,
			MaxPixelRatio:    MaxPixelRatio,
		},
		Population: Population{
			Particles:        ParticleCount,
			CompactParticles: CompactParticleCount,
			Shapes:           ShapeCount,
			CompactShapes:    CompactShapeCount,
			Speed:            Range{0.3, 0.6},
			LowPowerSpeed:    Range{0.15, 0.35},
			Amplitude:        Range{20, 35},
			LowPowerAmp:      Range{10, 20},
			Frequency:        Range{0.01, 0.025},
			Radius:           2,
			LowPowerRadius:   1.5,
			ShapeSize:        Range{12, 24},
			ShapeVelocity:    Range{-0.1, 0.1},
			ShapeSpin:        Range{-0.0025, 0.0025},
		},
		Connections: Connections{
			FullDistance:     ConnectDistance,
			LowPowerDistance: LowPowerConnectDistance,
		},
		Palette: Palette{
			Particle:   ParticleColor,
			Shape:      ShapeColor,
			Connection: ConnectionColor,
		},
		Loop: Loop{FPS: TerminalFPS},
		Log:  Log{Level: "info", Env: "production"},
	}
}

// Load overlays the YAML file at path on top of Default. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// BindFlags registers command line overrides for the commonly tuned fields.
// Flags must be parsed after Load so they win over the file.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "viewport width in logical pixels")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "viewport height in logical pixels")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed (0 = entropy)")
	fs.IntVar(&c.Loop.FPS, "fps", c.Loop.FPS, "frames per second for ticker driven hosts")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Env, "log-env", c.Log.Env, "log environment: development or production")
	fs.StringVar(&c.Metrics.Addr, "metrics-addr", c.Metrics.Addr, "serve prometheus metrics on this address")
}

// Parse registers the shared flags plus -config on fs and parses args.
// Values come from Default, then the YAML file named by -config, then any
// flag given explicitly on the command line.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	path := fs.String("config", "", "YAML config file")
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *path == "" {
		return cfg, cfg.Validate()
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	loaded, err := Load(*path)
	if err != nil {
		return cfg, err
	}
	cfg = loaded
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return cfg, fmt.Errorf("reapply -%s: %w", name, err)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and counts.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Profile.MaxPixelRatio < 1:
		return fmt.Errorf("%w: max_pixel_ratio %v below 1", ErrInvalid, c.Profile.MaxPixelRatio)
	case c.Population.Particles < 0 || c.Population.CompactParticles < 0:
		return fmt.Errorf("%w: negative particle count", ErrInvalid)
	case c.Population.Shapes < 0 || c.Population.CompactShapes < 0:
		return fmt.Errorf("%w: negative shape count", ErrInvalid)
	case c.Population.Speed.Min < 0 || c.Population.LowPowerSpeed.Min < 0:
		return fmt.Errorf("%w: particles only drift right, speed must be non-negative", ErrInvalid)
	case c.Connections.FullDistance < 0:
		return fmt.Errorf("%w: negative connection distance", ErrInvalid)
	case c.Loop.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Loop.FPS)
	}

	ranges := map[string]Range{
		"speed":               c.Population.Speed,
		"low_power_speed":     c.Population.LowPowerSpeed,
		"amplitude":           c.Population.Amplitude,
		"low_power_amplitude": c.Population.LowPowerAmp,
		"frequency":           c.Population.Frequency,
		"shape_size":          c.Population.ShapeSize,
		"shape_velocity":      c.Population.ShapeVelocity,
		"shape_spin":          c.Population.ShapeSpin,
	}
	for name, r := range ranges {
		if r.Max < r.Min {
			return fmt.Errorf("%w: %s range [%v, %v)", ErrInvalid, name, r.Min, r.Max)
		}
	}
	return nil
}
