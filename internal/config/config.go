// Package config loads and validates the YAML run configuration.
package config

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/internal/version"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// WriterName identifies one of the built-in output sinks.
type WriterName = string

const (
	WriterText WriterName = "text"
	WriterCSV  WriterName = "csv"
	WriterXLSX WriterName = "xlsx"
)

// Config describes one report run.
type Config struct {
	Version   string                  `yaml:"version" json:"version" jsonschema:"title=Schema Version,description=Config schema version this file was written against"`
	Input     string                  `yaml:"input" json:"input" jsonschema:"title=Input,description=Path to the daily OHLCV history (.csv or .parquet)" validate:"required"`
	OutputDir string                  `yaml:"output_dir" json:"output_dir" jsonschema:"title=Output Directory,description=Directory report files are written into"`
	Fields    []string                `yaml:"fields" json:"fields" jsonschema:"title=Fields,description=Bar fields to average; defaults to all five" validate:"dive,oneof=open high low close volume"`
	Months    []string                `yaml:"months" json:"months" jsonschema:"title=Months,description=Explicit YYYY-MM windows; empty covers the whole series"`
	Start     optional.Option[string] `yaml:"start" json:"start" jsonschema:"title=Start,description=Optional first YYYY-MM window when months is empty"`
	End       optional.Option[string] `yaml:"end" json:"end" jsonschema:"title=End,description=Optional last YYYY-MM window when months is empty"`
	Workers   int                     `yaml:"workers" json:"workers" jsonschema:"title=Workers,description=Parallel report workers; 0 or 1 runs sequentially,minimum=0" validate:"min=0"`
	Writers   []string                `yaml:"writers" json:"writers" jsonschema:"title=Writers,description=Enabled output sinks; defaults to all three" validate:"dive,oneof=text csv xlsx"`
	LogLevel  string                  `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,description=zap log level such as debug or warn"`
}

// UnmarshalYAML implements custom unmarshaling for Config, mapping absent
// start/end scalars into None values.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		Version   string   `yaml:"version"`
		Input     string   `yaml:"input"`
		OutputDir string   `yaml:"output_dir"`
		Fields    []string `yaml:"fields"`
		Months    []string `yaml:"months"`
		Start     *string  `yaml:"start"`
		End       *string  `yaml:"end"`
		Workers   int      `yaml:"workers"`
		Writers   []string `yaml:"writers"`
		LogLevel  string   `yaml:"log_level"`
	}

	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}

	c.Version = p.Version
	c.Input = p.Input
	c.OutputDir = p.OutputDir
	c.Fields = p.Fields
	c.Months = p.Months
	c.Workers = p.Workers
	c.Writers = p.Writers
	c.LogLevel = p.LogLevel

	if p.Start != nil {
		c.Start = optional.Some(*p.Start)
	}

	if p.End != nil {
		c.End = optional.Some(*p.End)
	}

	return nil
}

// applyDefaults fills the fields a config file may omit.
func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = version.ConfigSchemaVersion
	}

	if len(c.Fields) == 0 {
		for _, f := range types.AllFields() {
			c.Fields = append(c.Fields, string(f))
		}
	}

	if len(c.Writers) == 0 {
		c.Writers = []string{WriterText, WriterCSV, WriterXLSX}
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}

// Validate checks the struct tags and the domain rules the tags cannot
// express: every month parses, start/end parse and do not cross.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	for _, f := range c.Fields {
		if _, err := types.ParseField(f); err != nil {
			return err
		}
	}

	for _, m := range c.Months {
		if _, err := monthly.ParseWindow(m); err != nil {
			return err
		}
	}

	start, err := parseBound(c.Start)
	if err != nil {
		return err
	}

	end, err := parseBound(c.End)
	if err != nil {
		return err
	}

	if start.IsSome() && end.IsSome() && start.Unwrap().Start().After(end.Unwrap().Start()) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"start %s is after end %s", start.Unwrap(), end.Unwrap())
	}

	return nil
}

// ParsedFields returns the configured fields as typed values.
func (c *Config) ParsedFields() ([]types.Field, error) {
	fields := make([]types.Field, 0, len(c.Fields))

	for _, f := range c.Fields {
		field, err := types.ParseField(f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// ParsedMonths returns the explicit month list as windows.
func (c *Config) ParsedMonths() ([]monthly.Window, error) {
	windows := make([]monthly.Window, 0, len(c.Months))

	for _, m := range c.Months {
		w, err := monthly.ParseWindow(m)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, nil
}

// Bounds returns the optional start and end windows used when the month
// list is empty.
func (c *Config) Bounds() (optional.Option[monthly.Window], optional.Option[monthly.Window], error) {
	start, err := parseBound(c.Start)
	if err != nil {
		return optional.None[monthly.Window](), optional.None[monthly.Window](), err
	}

	end, err := parseBound(c.End)
	if err != nil {
		return optional.None[monthly.Window](), optional.None[monthly.Window](), err
	}

	return start, end, nil
}

func parseBound(bound optional.Option[string]) (optional.Option[monthly.Window], error) {
	if bound.IsNone() {
		return optional.None[monthly.Window](), nil
	}

	w, err := monthly.ParseWindow(bound.Unwrap())
	if err != nil {
		return optional.None[monthly.Window](), err
	}

	return optional.Some(w), nil
}

// Load reads a config file, applies defaults, gates the schema version
// and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	c.applyDefaults()

	if err := version.CheckConfigCompatibility(version.ConfigSchemaVersion, c.Version); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[string]" {
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^\d{4}-\d{2}$`,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "monthly-report-config"
	schema.Description = "Configuration schema for a monthly report run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a Config with default values.
func EmptyConfig() Config {
	c := Config{}
	c.applyDefaults()

	return c
}

// TestConfig returns a ready-to-run Config for tests.
func TestConfig(input, outputDir string) Config {
	c := Config{
		Input:     input,
		OutputDir: outputDir,
		Fields:    []string{string(types.FieldOpen)},
		Writers:   []string{WriterCSV},
	}
	c.Version = version.ConfigSchemaVersion

	return c
}
