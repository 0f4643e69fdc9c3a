package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rpgo/networth-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFileType is returned for configuration files that are not
// YAML, JSON or TOML.
var ErrUnsupportedFileType = errors.New("unsupported configuration file type")

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML, JSON or TOML file. Unknown
// keys are rejected. Relative paths inside the file (asset_dir,
// historical_returns_file) are resolved against the file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := ip.decode(filename, data, &config); err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(filename)
	resolveReturnFiles(config.Assets, baseDir)
	if config.AssetDir != "" {
		dir := config.AssetDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		assets, err := ip.LoadAssetDir(dir)
		if err != nil {
			return nil, err
		}
		config.Assets = append(config.Assets, assets...)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadAssetDir reads one asset descriptor per supported file in dir, in
// file name order.
func (ip *InputParser) LoadAssetDir(dir string) ([]domain.AssetDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || formatOf(e.Name()) == "" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	assets := make([]domain.AssetDescriptor, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		var desc domain.AssetDescriptor
		if err := ip.decode(path, data, &desc); err != nil {
			return nil, err
		}
		assets = append(assets, desc)
	}
	resolveReturnFiles(assets, dir)
	return assets, nil
}

func resolveReturnFiles(assets []domain.AssetDescriptor, baseDir string) {
	for i := range assets {
		eq := assets[i].Equity
		if eq != nil && eq.HistoricalReturnsFile != "" && !filepath.IsAbs(eq.HistoricalReturnsFile) {
			eq.HistoricalReturnsFile = filepath.Join(baseDir, eq.HistoricalReturnsFile)
		}
	}
}

func formatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// decode picks the decoder from the file extension.
func (ip *InputParser) decode(filename string, data []byte, out any) error {
	switch formatOf(filename) {
	case "yaml", "json":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to parse %s: file is empty", filename)
			}
			return fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			var details *toml.DecodeError
			if errors.As(err, &details) {
				return fmt.Errorf("failed to parse %s: %s", filename, details.String())
			}
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("failed to parse %s: %s", filename, strict.String())
			}
			return fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	default:
		return fmt.Errorf("%s: %w", filename, ErrUnsupportedFileType)
	}
	return nil
}

// SaveToFile writes the configuration in the format implied by the file extension.
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	var (
		data []byte
		err  error
	)
	switch formatOf(filename) {
	case "yaml":
		data, err = yaml.Marshal(config)
	case "json":
		data, err = json.MarshalIndent(config, "", "  ")
	case "toml":
		data, err = toml.Marshal(config)
	default:
		return fmt.Errorf("%s: %w", filename, ErrUnsupportedFileType)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
