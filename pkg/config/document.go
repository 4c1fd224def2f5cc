package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of the settings document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for encodings other than JSON and YAML.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat parses a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// document is the persisted shape written by this program.
type document struct {
	Version  int             `json:"version" yaml:"version"`
	Services []ServiceRecord `json:"services" yaml:"services"`
	Browser  *BrowserOptions `json:"browser,omitempty" yaml:"browser,omitempty"`
}

// wireDocument is the decoding shape. It also accepts documents written by
// earlier Windows releases, whose keys are Services/Name/Url/IsVisible/Order/
// Width. encoding/json matches keys case-insensitively, so only the renamed
// fields need aliases.
type wireDocument struct {
	Version  int             `json:"version" yaml:"version"`
	Services *[]wireRecord   `json:"services" yaml:"services"`
	Browser  *BrowserOptions `json:"browser" yaml:"browser"`
}

type wireRecord struct {
	Name      string   `json:"name" yaml:"name"`
	Endpoint  *string  `json:"endpoint" yaml:"endpoint"`
	URL       *string  `json:"url" yaml:"url"`
	Visible   *bool    `json:"visible" yaml:"visible"`
	IsVisible *bool    `json:"isVisible" yaml:"isVisible"`
	Order     int      `json:"order" yaml:"order"`
	Width     *float64 `json:"width" yaml:"width"`
}

func (w wireRecord) record() ServiceRecord {
	rec := ServiceRecord{
		Name:    w.Name,
		Visible: true,
		Order:   w.Order,
		Width:   1.0,
	}
	switch {
	case w.Endpoint != nil:
		rec.Endpoint = *w.Endpoint
	case w.URL != nil:
		rec.Endpoint = *w.URL
	}
	switch {
	case w.Visible != nil:
		rec.Visible = *w.Visible
	case w.IsVisible != nil:
		rec.Visible = *w.IsVisible
	}
	if w.Width != nil {
		switch width := *w.Width; {
		case math.IsNaN(width) || math.IsInf(width, 0):
		case width < 0:
			rec.Width = 0
		default:
			rec.Width = width
		}
	}
	return rec
}

// Decode parses a settings document. A document without a services list
// (including a literal null) decodes to the default configuration. The
// result is not migrated.
func Decode(data []byte, format Format) (Configuration, error) {
	var wire wireDocument
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &wire); err != nil {
			return Configuration{}, fmt.Errorf("failed to decode settings document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return Configuration{}, fmt.Errorf("failed to decode settings document: %w", err)
		}
	default:
		return Configuration{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var cfg Configuration
	if wire.Browser != nil {
		cfg.Browser = *wire.Browser
	}
	if wire.Services == nil {
		def := DefaultConfiguration()
		def.Browser = cfg.Browser
		return def, nil
	}

	cfg.Services = make([]ServiceRecord, 0, len(*wire.Services))
	for _, w := range *wire.Services {
		cfg.Services = append(cfg.Services, w.record())
	}
	return cfg, nil
}

// Encode renders a configuration as a human-readable document.
func Encode(cfg Configuration, format Format) ([]byte, error) {
	doc := document{
		Version:  SchemaVersion,
		Services: cfg.Services,
	}
	if doc.Services == nil {
		doc.Services = []ServiceRecord{}
	}
	if !cfg.Browser.IsZero() {
		browser := cfg.Browser
		doc.Browser = &browser
	}

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode settings document: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode settings document: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode settings document: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
