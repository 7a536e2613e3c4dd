// Package config resolves the catalog settings from defaults, a YAML file, the environment
// and command-line flags, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/catalogo/fonts"
)

// DefaultFile is read when no --config flag is given and the file exists.
const DefaultFile = "catalogo.yaml"

// EnvPrefix prefixes every environment variable the catalog reads.
const EnvPrefix = "CATALOGO_"

// Config is the full set of catalog settings.
type Config struct {
	Table              string `yaml:"table"`
	Header             string `yaml:"header"`
	ContinuationHeader string `yaml:"continuation_header"`
	ImagesDir          string `yaml:"images_dir"`
	// ImageTemplate names the product image file; ${column} refers to a table column.
	ImageTemplate string `yaml:"image_template"`
	Badge         string `yaml:"badge"`
	Output        string `yaml:"output"`

	Fonts Fonts `yaml:"fonts"`
	Meta  Meta  `yaml:"meta"`

	Geometry GeometryOverrides `yaml:"geometry"`
}

// Fonts names the optional font files.
type Fonts struct {
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
}

// Meta is the PDF document metadata.
type Meta struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Subject  string   `yaml:"subject"`
	Keywords []string `yaml:"keywords"`
}

// Default returns the settings used when nothing else is configured.
// Header images have no default: they must be chosen explicitly.
func Default() Config {
	return Config{
		Table:         "productos.xlsx",
		ImagesDir:     "imagenes",
		ImageTemplate: "${imagen}",
		Badge:         "placeholder_codigos.png",
		Output:        "catalogo.pdf",
		Fonts: Fonts{
			Regular: fonts.DefaultRegularPath,
			Bold:    fonts.DefaultBoldPath,
		},
		Meta: Meta{
			Title:  "Catalogo de productos",
			Author: "catalogo",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path and then the environment.
// An empty path reads DefaultFile when it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// merge decodes YAML over the current values; unknown keys are rejected.
func (c *Config) merge(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment.
// Variables already set are kept.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from CATALOGO_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for name, dst := range c.envFields() {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := lookup(EnvPrefix + "KEYWORDS"); ok && strings.TrimSpace(v) != "" {
		c.Meta.Keywords = splitList(v)
	}
}

func (c *Config) envFields() map[string]*string {
	return map[string]*string{
		"TABLE":               &c.Table,
		"HEADER":              &c.Header,
		"CONTINUATION_HEADER": &c.ContinuationHeader,
		"IMAGES_DIR":          &c.ImagesDir,
		"IMAGE_TEMPLATE":      &c.ImageTemplate,
		"BADGE":               &c.Badge,
		"OUTPUT":              &c.Output,
		"FONT_REGULAR":        &c.Fonts.Regular,
		"FONT_BOLD":           &c.Fonts.Bold,
		"TITLE":               &c.Meta.Title,
		"AUTHOR":              &c.Meta.Author,
		"SUBJECT":             &c.Meta.Subject,
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
