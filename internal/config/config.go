package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"boardseq/internal/model"
	"boardseq/internal/parser"
	"boardseq/internal/sequencer"
)

// AppConfig application configuration
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Sequencing SequencingConfig `toml:"sequencing"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port          int     `toml:"port"`
	DevMode       bool    `toml:"dev_mode"`
	MaxUploadMB   int     `toml:"max_upload_mb"`
	RatePerSecond float64 `toml:"rate_per_second"` // per client; 0 disables limiting
	RateBurst     int     `toml:"rate_burst"`
}

// DataConfig data directory settings
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SequencingConfig seat layout and ordering rules
type SequencingConfig struct {
	MinLetter         string   `toml:"min_letter"`
	MaxLetter         string   `toml:"max_letter"`
	MaxRow            int      `toml:"max_row"`
	Classification    string   `toml:"classification"` // fixed | derived
	WindowLetters     []string `toml:"window_letters"`
	MiddleLetters     []string `toml:"middle_letters"`
	AisleLetters      []string `toml:"aisle_letters"`
	BookingColumns    []string `toml:"booking_columns"`
	SeatColumns       []string `toml:"seat_columns"`
	RowOrder          string   `toml:"row_order"` // farthest_first | nearest_first
	WarnEmptyBookings bool     `toml:"warn_empty_bookings"`
}

// LoadConfigInfo metadata about how the config was loaded
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:          3000,
			DevMode:       false,
			MaxUploadMB:   10,
			RatePerSecond: 5,
			RateBurst:     10,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Sequencing: SequencingConfig{
			MinLetter:         "A",
			MaxLetter:         "F",
			MaxRow:            parser.DefaultMaxRow,
			Classification:    string(sequencer.ClassificationFixed),
			WindowLetters:     []string{"A", "F"},
			MiddleLetters:     []string{"B", "E"},
			AisleLetters:      []string{"C", "D"},
			BookingColumns:    append([]string(nil), parser.DefaultBookingCandidates...),
			SeatColumns:       append([]string(nil), parser.DefaultSeatCandidates...),
			RowOrder:          string(sequencer.FarthestRowFirst),
			WarnEmptyBookings: true,
		},
	}
}

// Options converts the sequencing section into sequencer options.
func (c SequencingConfig) Options() (sequencer.Options, error) {
	opts := sequencer.DefaultOptions()

	first, err := letter("min_letter", c.MinLetter)
	if err != nil {
		return opts, err
	}
	last, err := letter("max_letter", c.MaxLetter)
	if err != nil {
		return opts, err
	}
	window, err := letters("window_letters", c.WindowLetters)
	if err != nil {
		return opts, err
	}
	middle, err := letters("middle_letters", c.MiddleLetters)
	if err != nil {
		return opts, err
	}
	aisle, err := letters("aisle_letters", c.AisleLetters)
	if err != nil {
		return opts, err
	}
	layout, err := model.NewLayout(first, last, window, middle, aisle)
	if err != nil {
		return opts, fmt.Errorf("sequencing layout: %w", err)
	}
	opts.Layout = layout

	if opts.Classification, err = sequencer.ParseClassification(c.Classification); err != nil {
		return opts, err
	}
	if opts.RowOrder, err = sequencer.ParseRowOrder(c.RowOrder); err != nil {
		return opts, err
	}
	if c.MaxRow > 0 {
		opts.MaxRow = c.MaxRow
	}
	if len(c.BookingColumns) > 0 {
		opts.BookingCandidates = c.BookingColumns
	}
	if len(c.SeatColumns) > 0 {
		opts.SeatCandidates = c.SeatColumns
	}
	opts.WarnEmptyBookings = c.WarnEmptyBookings
	return opts, nil
}

func letter(field, s string) (byte, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, fmt.Errorf("%s: want a single letter, got %q", field, s)
	}
	return s[0], nil
}

func letters(field string, in []string) ([]byte, error) {
	out := make([]byte, 0, len(in))
	for _, s := range in {
		b, err := letter(field, s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath config.toml next to the executable
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo loads config.toml next to the executable
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// LoadConfigFrom loads configPath; a missing file yields the defaults.
// Environment variables override the file.
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, info, err
	}
	if err == nil {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	if v := os.Getenv("BOARDSEQ_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("BOARDSEQ_MAX_ROW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, info, fmt.Errorf("BOARDSEQ_MAX_ROW: %w", err)
		}
		config.Sequencing.MaxRow = n
	}

	return config, info, nil
}

// SaveConfig writes config to configPath
func SaveConfig(config *AppConfig, configPath string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its exports subdirectory.
// Relative data dirs are resolved against the executable directory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	if err := os.MkdirAll(ExportDir(dataDir), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// ResolveDataDir absolute data directory
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// ExportDir directory holding exported workbooks until they are downloaded
func ExportDir(dataDir string) string {
	return filepath.Join(dataDir, "exports")
}
