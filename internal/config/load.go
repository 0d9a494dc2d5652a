package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/logfields"
	"github.com/Rafailong/clojure-journal/internal/registry"
)

// DefaultFileName is the configuration document looked up at the project root.
const DefaultFileName = "journal.config.yaml"

// Load reads the configuration document at path, loads .env files next to it
// and runs the full pipeline of Parse. A nil registry means registry.Default().
func Load(path string, reg *registry.Registry) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "failed to read configuration file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "configuration file not found"
		}
		return nil, ferrors.FileSystemError(msg).
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	loaded, err := LoadEnvFiles(filepath.Dir(path))
	if err != nil {
		slog.Warn("Failed to load env file", logfields.Error(err))
	}
	for _, f := range loaded {
		slog.Debug("Loaded environment variables", logfields.Path(f))
	}

	cfg, err := Parse(data, reg)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse builds a Config from document bytes: ${VAR} expansion, strict decoding,
// normalization, defaults, extension resolution and validation.
func Parse(data []byte, reg *registry.Registry) (*Config, error) {
	if reg == nil {
		reg = registry.Default()
	}

	expanded := ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ferrors.SchemaViolation("configuration document is empty").Build()
		}
		return nil, ferrors.SchemaViolation("configuration document does not match the schema").
			WithCause(err).
			Build()
	}

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "normalize configuration").Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}

	if err := NewDefaultApplier().ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ResolveExtensions(&cfg, reg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg, reg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveExtensions resolves every preset and theme entry against the registry
// and decodes its options with the extension's own schema. Presets resolve
// first since theme defaults depend on the preset's route base paths.
func ResolveExtensions(cfg *Config, reg *registry.Registry) error {
	seen := map[string]struct{}{}
	for i := range cfg.Presets {
		field := fmt.Sprintf("presets[%d]", i)
		ext, ok := reg.Preset(cfg.Presets[i].Name)
		if !ok {
			return unknownName(field, "preset", cfg.Presets[i].Name, reg.PresetNames())
		}
		if err := decodeEntry(&cfg.Presets[i], ext, field, seen, &registry.Options{
			DefaultLocale: cfg.I18n.DefaultLocale,
		}); err != nil {
			return err
		}
	}

	docsBase, blogBase := "docs", "blog"
	if d, ok := cfg.Docs(); ok {
		docsBase = d.RouteBasePath
	}
	if b, ok := cfg.Blog(); ok {
		blogBase = b.RouteBasePath
	}

	for i := range cfg.Themes {
		field := fmt.Sprintf("themes[%d]", i)
		ext, ok := reg.Theme(cfg.Themes[i].Name)
		if !ok {
			return unknownName(field, "theme plugin", cfg.Themes[i].Name, reg.ThemeNames())
		}
		if err := decodeEntry(&cfg.Themes[i], ext, field, seen, &registry.Options{
			DefaultLocale:     cfg.I18n.DefaultLocale,
			DocsRouteBasePath: docsBase,
			BlogRouteBasePath: blogBase,
		}); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntry(entry *PluginEntry, ext *registry.Extension, field string, seen map[string]struct{}, opts *registry.Options) error {
	if _, dup := seen[ext.Name]; dup {
		return ferrors.SchemaViolation(fmt.Sprintf("%s is listed more than once", ext.Name)).
			WithContext("field", field).
			Build()
	}
	seen[ext.Name] = struct{}{}

	opts.Node = entry.Raw
	decoded, err := ext.Decode(opts)
	if err != nil {
		return ferrors.SchemaViolation(fmt.Sprintf("invalid options for %s", ext.Name)).
			WithCause(err).
			WithContext("field", field+".options").
			Build()
	}
	entry.Name = ext.Name
	entry.Options = decoded
	entry.Raw = nil
	return nil
}

func unknownName(field, kind, name string, known []string) error {
	return ferrors.SchemaViolation(fmt.Sprintf("unknown %s %q, installed: %v", kind, name, known)).
		WithContext("field", field).
		Build()
}
