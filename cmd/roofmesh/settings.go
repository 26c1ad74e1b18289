package main

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

type settings struct {
	input     string
	output    string
	maxHeight float64

	scale     string
	precision int
	format    string
	noBase    bool
	maxEvents int
	verbose   bool
	debugPNG  string
	imgcat    bool
	config    string
}

func defaultSettings() *settings {
	return &settings{
		maxHeight: math.Inf(1),
		scale:     "1,1,0.5",
		precision: 17,
		format:    "auto",
	}
}

func (s *settings) register(app *kingpin.Application) {
	app.Arg("input", "Footprint file, .txt or .svg.").Required().StringVar(&s.input)
	app.Arg("output", "Mesh file, .ply .obj .off or .stl.").Required().StringVar(&s.output)
	app.Arg("max_height", "Height to cut the roof off at. Omit for a full roof.").Float64Var(&s.maxHeight)

	app.Flag("scale", "Scale applied to the mesh as x,y,z.").Default(s.scale).StringVar(&s.scale)
	app.Flag("precision", "Significant digits in text formats.").Default(strconv.Itoa(s.precision)).IntVar(&s.precision)
	app.Flag("format", "Output format. auto picks by extension.").Default(s.format).EnumVar(&s.format, "auto", "ply", "obj", "off", "stl")
	app.Flag("no-base", "Leave the bottom of the mesh open.").BoolVar(&s.noBase)
	app.Flag("max-events", "Give up on the skeleton after this many events.").IntVar(&s.maxEvents)
	app.Flag("verbose", "Log progress and every skeleton event.").Short('v').BoolVar(&s.verbose)
	app.Flag("debug-png", "Draw the skeleton to this PNG file.").StringVar(&s.debugPNG)
	app.Flag("imgcat", "Show the skeleton drawing in the terminal.").BoolVar(&s.imgcat)
	app.Flag("config", "YAML file with default settings.").ExistingFileVar(&s.config)
}

// Settings that can come from a config file. Flags given on the command line
// win over the file.
type fileSettings struct {
	Scale     *string `yaml:"scale"`
	Precision *int    `yaml:"precision"`
	Format    *string `yaml:"format"`
	NoBase    *bool   `yaml:"no_base"`
	MaxEvents *int    `yaml:"max_events"`
	Verbose   *bool   `yaml:"verbose"`
}

func (s *settings) loadConfig() error {
	if s.config == "" {
		return nil
	}
	data, err := os.ReadFile(s.config)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	return s.applyConfig(data)
}

func (s *settings) applyConfig(data []byte) error {
	var file fileSettings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Wrap(err, "parsing config")
	}
	defaults := defaultSettings()
	if file.Scale != nil && s.scale == defaults.scale {
		s.scale = *file.Scale
	}
	if file.Precision != nil && s.precision == defaults.precision {
		s.precision = *file.Precision
	}
	if file.Format != nil && s.format == defaults.format {
		s.format = *file.Format
	}
	if file.NoBase != nil && !s.noBase {
		s.noBase = *file.NoBase
	}
	if file.MaxEvents != nil && s.maxEvents == 0 {
		s.maxEvents = *file.MaxEvents
	}
	if file.Verbose != nil && !s.verbose {
		s.verbose = *file.Verbose
	}
	return nil
}

func parseScale(s string) ([3]float64, error) {
	var scale [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return scale, errors.Errorf("scale %q needs three comma separated values", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return scale, errors.Wrapf(err, "scale %q", s)
		}
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return scale, errors.Errorf("scale %q has a degenerate axis", s)
		}
		scale[i] = v
	}
	return scale, nil
}
