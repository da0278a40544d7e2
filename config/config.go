package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the CLI and the server need.
type Config struct {
	Server  ServerConfig
	Archive ArchiveConfig
	Diag    DiagConfig
	Layout  Layout
}

type ServerConfig struct {
	Addr        string
	CorsOrigins []string
}

// ArchiveConfig points at the DynamoDB table rendered images are kept in.
// The archive is off unless Enabled is set.
type ArchiveConfig struct {
	Enabled  bool
	Endpoint string
	Region   string
	Table    string
}

type DiagConfig struct {
	QuietPeriod time.Duration
}

// Layout is the fixed geometry every drawing is derived from. It is passed
// around by value; arrays keep copies independent.
type Layout struct {
	Height           float64
	UnitWidth        float64
	CenterX          float64
	EighthOffset     float64 // distance eighth note pairs shift from center
	StemLength       float64
	SideDistance     float64 // stem distance from the notehead center
	BlackRadius      float64
	HalfRadius       float64
	NoteStrokeWidth  float64
	StaffStrokeWidth float64
	StaffColor       string
	NoteColor        string

	// y axis of the five staff lines, top to bottom
	StaffLines [5]float64
	// y axis of each pitch slot, bottom line (index 0) upward
	Positions [9]float64
}

func DefaultLayout() Layout {
	return Layout{
		Height:           200,
		UnitWidth:        60,
		CenterX:          30,
		EighthOffset:     15,
		StemLength:       65,
		SideDistance:     7,
		BlackRadius:      9,
		HalfRadius:       7,
		NoteStrokeWidth:  4,
		StaffStrokeWidth: 3,
		StaffColor:       "thistle",
		NoteColor:        "black",
		StaffLines:       [5]float64{40, 70, 100, 130, 160},
		Positions:        [9]float64{160, 145, 130, 115, 100, 85, 70, 55, 40},
	}
}

// Validate rejects layouts that would produce an empty or inverted image.
func (l Layout) Validate() error {
	var errs []error
	if l.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %v", l.Height))
	}
	if l.UnitWidth <= 0 {
		errs = append(errs, fmt.Errorf("unit width must be positive, got %v", l.UnitWidth))
	}
	if l.StemLength < 0 {
		errs = append(errs, fmt.Errorf("stem length must not be negative, got %v", l.StemLength))
	}
	if l.BlackRadius <= 0 || l.HalfRadius <= 0 {
		errs = append(errs, errors.New("notehead radii must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from file and env. Env var overrides use prefix STAFFNOTE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	cfgPath := os.Getenv("STAFFNOTE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "staffnote"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STAFFNOTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file has to exist
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	d := DefaultLayout()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.endpoint", "http://localhost:8000")
	v.SetDefault("archive.region", "localhost")
	v.SetDefault("archive.table", "staffnote-renderings")
	v.SetDefault("diag.quiet_period", 500*time.Millisecond)
	v.SetDefault("layout.height", d.Height)
	v.SetDefault("layout.unit_width", d.UnitWidth)
	v.SetDefault("layout.center_x", d.CenterX)
	v.SetDefault("layout.eighth_offset", d.EighthOffset)
	v.SetDefault("layout.stem_length", d.StemLength)
	v.SetDefault("layout.side_distance", d.SideDistance)
	v.SetDefault("layout.black_radius", d.BlackRadius)
	v.SetDefault("layout.half_radius", d.HalfRadius)
	v.SetDefault("layout.note_stroke_width", d.NoteStrokeWidth)
	v.SetDefault("layout.staff_stroke_width", d.StaffStrokeWidth)
	v.SetDefault("layout.staff_color", d.StaffColor)
	v.SetDefault("layout.note_color", d.NoteColor)
}

func fromViper(v *viper.Viper) (Config, error) {
	layout := DefaultLayout()
	layout.Height = v.GetFloat64("layout.height")
	layout.UnitWidth = v.GetFloat64("layout.unit_width")
	layout.CenterX = v.GetFloat64("layout.center_x")
	layout.EighthOffset = v.GetFloat64("layout.eighth_offset")
	layout.StemLength = v.GetFloat64("layout.stem_length")
	layout.SideDistance = v.GetFloat64("layout.side_distance")
	layout.BlackRadius = v.GetFloat64("layout.black_radius")
	layout.HalfRadius = v.GetFloat64("layout.half_radius")
	layout.NoteStrokeWidth = v.GetFloat64("layout.note_stroke_width")
	layout.StaffStrokeWidth = v.GetFloat64("layout.staff_stroke_width")
	layout.StaffColor = v.GetString("layout.staff_color")
	layout.NoteColor = v.GetString("layout.note_color")
	if err := layout.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid layout: %w", err)
	}

	return Config{
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			CorsOrigins: v.GetStringSlice("server.cors_origins"),
		},
		Archive: ArchiveConfig{
			Enabled:  v.GetBool("archive.enabled"),
			Endpoint: v.GetString("archive.endpoint"),
			Region:   v.GetString("archive.region"),
			Table:    v.GetString("archive.table"),
		},
		Diag: DiagConfig{
			QuietPeriod: v.GetDuration("diag.quiet_period"),
		},
		Layout: layout,
	}, nil
}
