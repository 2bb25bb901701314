package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	. "github.com/ttpr0/go-trip/util"
)

//**********************************************************
// config
//**********************************************************

// Reads the yaml config file and applies GOTRIP_* environment overrides,
// variables from a .env file in the working directory are loaded first.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file " + file)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env file: %w", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	var env EnvOverrides
	if err := envconfig.Process("GOTRIP", &env); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	env.Apply(&config)
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.GraphPath = "./graphs/default"
	config.Services.Address = ":5002"
	config.Services.MaxWorkers = 16
	config.Services.Trip.MaxLocations = 100
	config.Services.Table.MaxLocations = 100
	config.Logging.Level = LogLevel(slog.LevelInfo)
	config.Logging.MaxSize = 100
	config.Logging.MaxBackups = 3
	return config
}

type Config struct {
	GraphPath string `yaml:"graph-path"`
	Build     struct {
		Source   SourceOptions                 `yaml:"source"`
		Profiles Dict[string, *ProfileOptions] `yaml:"profiles"`
	} `yaml:"build"`
	BuildGraphs bool           `yaml:"build-graphs"`
	Services    ServiceOptions `yaml:"services"`
	Logging     LoggingOptions `yaml:"logging"`
}

func (self Config) Validate() error {
	if self.GraphPath == "" {
		return errors.New("graph-path must be set")
	}
	if self.Services.MaxWorkers <= 0 {
		return errors.New("services.max-workers must be positive")
	}
	if self.Services.Trip.MaxLocations < 0 || self.Services.Table.MaxLocations < 0 {
		return errors.New("max-locations must not be negative")
	}
	for name, options := range self.Build.Profiles {
		if options == nil || options.Value == nil {
			return fmt.Errorf("profile %v has no options", name)
		}
	}
	return nil
}

type SourceOptions struct {
	OSM string `yaml:"osm"`
}

type ServiceOptions struct {
	Address    string `yaml:"address"`
	MaxWorkers int    `yaml:"max-workers"`
	Trip       struct {
		// 0 disables the limit
		MaxLocations int  `yaml:"max-locations"`
		Debug        bool `yaml:"debug"`
	} `yaml:"trip"`
	Table struct {
		MaxLocations int `yaml:"max-locations"`
	} `yaml:"table"`
}

type LoggingOptions struct {
	Level LogLevel `yaml:"level"`
	// rotated log file, logs to stdout if empty
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
}

// Environment variables overriding config values, all prefixed with GOTRIP_.
type EnvOverrides struct {
	GraphPath  string `envconfig:"GRAPH_PATH"`
	Address    string `envconfig:"ADDRESS"`
	MaxWorkers int    `envconfig:"MAX_WORKERS"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFile    string `envconfig:"LOG_FILE"`
}

func (self EnvOverrides) Apply(config *Config) {
	if self.GraphPath != "" {
		config.GraphPath = self.GraphPath
	}
	if self.Address != "" {
		config.Services.Address = self.Address
	}
	if self.MaxWorkers > 0 {
		config.Services.MaxWorkers = self.MaxWorkers
	}
	if self.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(self.LogLevel)); err == nil {
			config.Logging.Level = LogLevel(level)
		} else {
			slog.Warn("invalid log level " + self.LogLevel)
		}
	}
	if self.LogFile != "" {
		config.Logging.File = self.LogFile
	}
}

type LogLevel slog.Level

func (self *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value.Value)); err != nil {
		return err
	}
	*self = LogLevel(level)
	return nil
}

//**********************************************************
// profile options
//**********************************************************

type ProfileOptions struct {
	Value IProfileOptions
}

func (self *ProfileOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	name, ok := m["type"].(string)
	if !ok {
		return errors.New("profile type missing")
	}
	typ, err := ProfileTypeFromString(name)
	if err != nil {
		return err
	}
	switch typ {
	case DRIVING:
		val := DrivingOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	case WALKING:
		val := WalkingOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	default:
		self.Value = nil
	}
	return nil
}

type IProfileOptions interface {
	Type() ProfileType
}

type DrivingOptions struct {
	Vehicle     VehicleType `yaml:"vehicle"`
	Metric      MetricType  `yaml:"metric"`
	Preparation struct {
		Contraction bool `yaml:"contraction"`
	} `yaml:"preparation"`
}

func (self DrivingOptions) Type() ProfileType {
	return DRIVING
}

type WalkingOptions struct {
	Vehicle VehicleType `yaml:"vehicle"`
	Metric  MetricType  `yaml:"metric"`
}

func (self WalkingOptions) Type() ProfileType {
	return WALKING
}

//**********************************************************
// enums
//**********************************************************

type ProfileType byte

const (
	DRIVING ProfileType = 0
	WALKING ProfileType = 1
)

func (self ProfileType) String() string {
	switch self {
	case DRIVING:
		return "driving"
	case WALKING:
		return "walking"
	default:
		panic("unknown profile type")
	}
}
func (self ProfileType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *ProfileType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	prof_typ, err := ProfileTypeFromString(typ)
	*self = prof_typ
	return err
}

func ProfileTypeFromString(s string) (ProfileType, error) {
	switch s {
	case "driving":
		return DRIVING, nil
	case "walking":
		return WALKING, nil
	default:
		return DRIVING, errors.New("unknown profile type")
	}
}

type MetricType byte

const (
	FASTEST  MetricType = 0
	SHORTEST MetricType = 1
)

func (self MetricType) String() string {
	switch self {
	case FASTEST:
		return "fastest"
	case SHORTEST:
		return "shortest"
	default:
		panic("unknown metric type")
	}
}
func (self MetricType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *MetricType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = MetricTypeFromString(typ)
	return err
}
func (self MetricType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *MetricType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := MetricTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func MetricTypeFromString(s string) (MetricType, error) {
	switch s {
	case "fastest":
		return FASTEST, nil
	case "shortest":
		return SHORTEST, nil
	default:
		return FASTEST, errors.New("unknown metric type")
	}
}

type VehicleType byte

const (
	CAR  VehicleType = 0
	FOOT VehicleType = 1
)

func (self VehicleType) String() string {
	switch self {
	case CAR:
		return "car"
	case FOOT:
		return "foot"
	default:
		panic("unknown vehicle type")
	}
}
func (self VehicleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *VehicleType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = VehicleTypeFromString(typ)
	return err
}
func (self VehicleType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *VehicleType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := VehicleTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	switch s {
	case "car":
		return CAR, nil
	case "foot":
		return FOOT, nil
	default:
		return CAR, errors.New("unknown vehicle type")
	}
}
