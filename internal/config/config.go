package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Detector DetectorConfig `json:"detector"`
	Planner  PlannerConfig  `json:"planner"`
	Catalog  []SizeConfig   `json:"catalog"`
	Output   OutputConfig   `json:"output"`
}

// DetectorConfig holds configuration for the face-locator backend
type DetectorConfig struct {
	Backend     string `json:"backend"`
	URL         string `json:"url"`
	Model       string `json:"model"`
	SendFormat  string `json:"send_format"`
	SendMaxDim  int    `json:"send_max_dim"`
	SendQuality int    `json:"send_quality"`
	ReduceMode  string `json:"reduce_mode"`
}

// PlannerConfig holds configuration for crop planning
type PlannerConfig struct {
	Algorithm    string  `json:"algorithm"`
	Zoom         float64 `json:"zoom"`
	MinImageSize int     `json:"min_image_size"`
}

// SizeConfig is one synthesis resolution in the catalog
type SizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
	OutputDir string `json:"output_dir"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			Backend:     "ollama",
			URL:         "http://localhost:11434",
			Model:       "openbmb/minicpm-v4.5",
			SendFormat:  "jpg",
			SendMaxDim:  1536,
			SendQuality: 85,
			ReduceMode:  "enclose",
		},
		Planner: PlannerConfig{
			Algorithm:    "center",
			Zoom:         1.0,
			MinImageSize: 100,
		},
		Catalog: []SizeConfig{
			{Width: 768, Height: 512},
			{Width: 640, Height: 512},
			{Width: 512, Height: 512},
			{Width: 512, Height: 640},
			{Width: 512, Height: 768},
		},
		Output: OutputConfig{
			Format:    "jpg",
			Quality:   90,
			Lossless:  false,
			OutputDir: "./out",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Detector.Backend {
	case "ollama", "llamacpp":
	default:
		return fmt.Errorf("detector.backend must be ollama or llamacpp")
	}

	if c.Detector.SendQuality < 1 || c.Detector.SendQuality > 100 {
		return fmt.Errorf("detector.send_quality must be between 1 and 100")
	}

	if c.Detector.SendMaxDim < 0 {
		return fmt.Errorf("detector.send_max_dim must not be negative")
	}

	switch c.Planner.Algorithm {
	case "corner", "legacy", "center", "centered":
	default:
		return fmt.Errorf("planner.algorithm must be corner or center")
	}

	if c.Planner.Zoom <= 0 {
		return fmt.Errorf("planner.zoom must be positive")
	}

	if c.Planner.MinImageSize < 1 {
		return fmt.Errorf("planner.min_image_size must be positive")
	}

	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog cannot be empty")
	}
	for i, s := range c.Catalog {
		if s.Width < 1 || s.Height < 1 {
			return fmt.Errorf("catalog[%d] has invalid size %dx%d", i, s.Width, s.Height)
		}
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "facecrop", "config.json")
}
