// Package config loads the service configuration from the environment, an
// optional .env file and an optional YAML file with column and KPI overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	activity "activity-dashboard-service/internal/activity/core/domain"
	metrics "activity-dashboard-service/internal/metrics/core/domain"
)

const (
	SourceDatabase = "database"
	SourceCSV      = "csv"
)

type Config struct {
	AppEnv          string
	Port            string
	ShutdownTimeout time.Duration

	SourceKind    string
	CacheTTL      time.Duration
	ActivityTable string

	DBDriver   string
	DBDSN      string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CSVURL            string
	CSVTimeout        time.Duration
	CSVSyntheticStart time.Time
	CSVSyntheticDays  int
	CSVSyntheticUsers int

	DatasetName string
	ReportTitle string

	MappingFile string
	Mapping     activity.ColumnMapping
	KPIs        []metrics.KPISpec // nil keeps the defaults
}

// Load reads .env (if present) and the environment, then applies the YAML
// overrides named by COLUMN_MAPPING_FILE.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "production"),
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),

		SourceKind:    strings.ToLower(getEnv("SOURCE_KIND", SourceDatabase)),
		CacheTTL:      getDurationEnv("CACHE_TTL", 0),
		ActivityTable: getEnv("ACTIVITY_TABLE", "temporal_amad"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBDSN:      os.Getenv("DB_DSN"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getIntEnv("DB_PORT", 0),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		CSVURL:            os.Getenv("CSV_URL"),
		CSVTimeout:        getDurationEnv("CSV_TIMEOUT", 30*time.Second),
		CSVSyntheticDays:  getIntEnv("CSV_SYNTHETIC_DAYS", 30),
		CSVSyntheticUsers: getIntEnv("CSV_SYNTHETIC_USERS", 50),

		ReportTitle: getEnv("REPORT_TITLE", "Activity summary"),
		MappingFile: os.Getenv("COLUMN_MAPPING_FILE"),
		Mapping:     activity.DefaultColumnMapping(),
	}
	cfg.DatasetName = getEnv("DATASET_NAME", cfg.ActivityTable)

	if cfg.DBPort == 0 {
		cfg.DBPort = defaultPort(cfg.DBDriver)
	}

	start := getEnv("CSV_SYNTHETIC_START", "2024-01-01")
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("CSV_SYNTHETIC_START must be YYYY-MM-DD, got %q", start)
	}
	cfg.CSVSyntheticStart = t

	if cfg.MappingFile != "" {
		if err := cfg.applyOverrides(cfg.MappingFile); err != nil {
			return nil, err
		}
	}

	if cfg.KPIs == nil && cfg.SourceKind == SourceCSV {
		cfg.KPIs = csvKPIs()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// csvKPIs only use the columns the CSV source always synthesizes.
func csvKPIs() []metrics.KPISpec {
	return []metrics.KPISpec{
		{Name: "total_events", Label: "Total events", Kind: metrics.KPICount},
		{Name: "total_day", Label: "Daily total", Kind: metrics.KPISum, Field: activity.FieldTotalDay},
		{Name: "unique_users", Label: "Unique users", Kind: metrics.KPIDistinct, Field: activity.FieldUserID},
	}
}

// Validate checks that the selected source has what it needs.
func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}
	switch c.SourceKind {
	case SourceDatabase:
		switch c.DBDriver {
		case "postgres", "pgx", "mysql", "sqlite":
		default:
			return fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver)
		}
		if c.DBDSN == "" && c.DBName == "" {
			return errors.New("DB_DSN or DB_NAME is required for SOURCE_KIND=database")
		}
		if c.ActivityTable == "" {
			return errors.New("ACTIVITY_TABLE is required")
		}
	case SourceCSV:
		if c.CSVURL == "" {
			return errors.New("CSV_URL is required for SOURCE_KIND=csv")
		}
	default:
		return fmt.Errorf("SOURCE_KIND %q is not supported (database | csv)", c.SourceKind)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

type overrideFile struct {
	Columns map[string]string `yaml:"columns"`
	KPIs    []kpiOverride     `yaml:"kpis"`
}

type kpiOverride struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Kind  string `yaml:"kind"`
	Field string `yaml:"field"`
}

func (c *Config) applyOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	cols := make(map[activity.Field]string, len(f.Columns))
	for name, column := range f.Columns {
		field := activity.Field(name)
		if !field.IsKnown() {
			return fmt.Errorf("%s: unknown field %q in columns", path, name)
		}
		cols[field] = column
	}
	c.Mapping = c.Mapping.Merge(cols)

	if len(f.KPIs) == 0 {
		return nil
	}
	kpis := make([]metrics.KPISpec, 0, len(f.KPIs))
	for _, k := range f.KPIs {
		spec := metrics.KPISpec{Name: k.Name, Label: k.Label, Kind: metrics.KPIKind(k.Kind), Field: activity.Field(k.Field)}
		if err := validateKPI(spec); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		kpis = append(kpis, spec)
	}
	c.KPIs = kpis
	return nil
}

func validateKPI(k metrics.KPISpec) error {
	if k.Name == "" {
		return errors.New("kpi without name")
	}
	switch k.Kind {
	case metrics.KPICount:
	case metrics.KPISum:
		if !k.Field.IsNumeric() {
			return fmt.Errorf("kpi %s: sum needs a numeric field, got %q", k.Name, k.Field)
		}
	case metrics.KPIDistinct:
		if !k.Field.IsKnown() {
			return fmt.Errorf("kpi %s: unknown field %q", k.Name, k.Field)
		}
	default:
		return fmt.Errorf("kpi %s: unknown kind %q", k.Name, k.Kind)
	}
	return nil
}

func defaultPort(driver string) int {
	switch driver {
	case "mysql":
		return 3306
	case "postgres", "pgx":
		return 5432
	}
	return 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
