// Package config loads application configuration from file and
// environment and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cityscale/healthatlas/internal/classify"
	"github.com/cityscale/healthatlas/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	City     CityConfig     `yaml:"city" mapstructure:"city"`
	Overpass OverpassConfig `yaml:"overpass" mapstructure:"overpass"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// CityConfig identifies the city under analysis.
type CityConfig struct {
	Name       string  `yaml:"name" mapstructure:"name"`
	AdminLevel string  `yaml:"admin_level" mapstructure:"admin_level"`
	CenterLat  float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon  float64 `yaml:"center_lon" mapstructure:"center_lon"`
}

// OverpassConfig configures the Overpass API client.
type OverpassConfig struct {
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnalysisConfig configures the accessibility analysis.
type AnalysisConfig struct {
	// ProjectedCRS is the metric system for distance and area math.
	ProjectedCRS string `yaml:"projected_crs" mapstructure:"projected_crs"`
	// Workers bounds per-district parallelism (0 = one per CPU).
	Workers int `yaml:"workers" mapstructure:"workers"`
	// BufferRadiiKM are the coverage radii for the buffer command.
	BufferRadiiKM []float64 `yaml:"buffer_radii_km" mapstructure:"buffer_radii_km"`
	// BufferCellM is the sampling cell size for union area, meters.
	BufferCellM float64 `yaml:"buffer_cell_m" mapstructure:"buffer_cell_m"`
}

// SectorRule is one configurable keyword rule for sector classification.
type SectorRule struct {
	Sector   string   `yaml:"sector" mapstructure:"sector"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// ClassifyConfig holds the locale-specific classification tables.
type ClassifyConfig struct {
	// SectorRules are evaluated in order; first keyword match wins.
	SectorRules []SectorRule `yaml:"sector_rules" mapstructure:"sector_rules"`
	// DistrictNameColumns are candidate property names for the district
	// name, tried in order.
	DistrictNameColumns []string `yaml:"district_name_columns" mapstructure:"district_name_columns"`
}

// SectorRuleTable converts the configured rules to the classifier form.
// An empty configuration falls back to the built-in Turkish/English
// table.
func (c ClassifyConfig) SectorRuleTable() []classify.SectorRule {
	if len(c.SectorRules) == 0 {
		return classify.DefaultSectorRules()
	}
	rules := make([]classify.SectorRule, 0, len(c.SectorRules))
	for _, r := range c.SectorRules {
		rules = append(rules, classify.SectorRule{
			Sector:   model.Sector(r.Sector),
			Keywords: r.Keywords,
		})
	}
	return rules
}

// OutputConfig configures where result files are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// StoreConfig configures the snapshot database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HEALTHATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("city.name", "İstanbul")
	v.SetDefault("city.admin_level", "4")
	v.SetDefault("city.center_lat", 41.0082)
	v.SetDefault("city.center_lon", 28.9784)
	v.SetDefault("overpass.endpoint", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.timeout_secs", 180)
	v.SetDefault("analysis.projected_crs", "EPSG:32635")
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("analysis.buffer_radii_km", []float64{2, 5, 10})
	v.SetDefault("analysis.buffer_cell_m", 100.0)
	v.SetDefault("classify.district_name_columns", []string{"name", "district_name", "ilce", "ilce_adi", "adi"})
	v.SetDefault("output.dir", "outputs")
	v.SetDefault("store.path", "healthatlas.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
