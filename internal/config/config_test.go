package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	activity "activity-dashboard-service/internal/activity/core/domain"
	metrics "activity-dashboard-service/internal/metrics/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "PORT", "SOURCE_KIND", "CACHE_TTL", "ACTIVITY_TABLE", "DB_DRIVER", "DB_DSN",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "CSV_URL",
		"CSV_SYNTHETIC_START", "CSV_SYNTHETIC_DAYS", "CSV_SYNTHETIC_USERS", "DATASET_NAME",
		"REPORT_TITLE", "COLUMN_MAPPING_FILE",
	} {
		t.Setenv(k, "")
	}
	// keep a stray .env in the package dir from leaking in
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DatabaseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "amad")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("CACHE_TTL", "10m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, SourceDatabase, cfg.SourceKind)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, 3306, cfg.DBPort)
	require.Equal(t, 10*time.Minute, cfg.CacheTTL)
	require.Equal(t, "temporal_amad", cfg.ActivityTable)
	require.Equal(t, "temporal_amad", cfg.DatasetName)
	require.Equal(t, "fecha", cfg.Mapping[activity.FieldDate])
	require.Nil(t, cfg.KPIs)
}

func TestLoad_CSV(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCE_KIND", "csv")
	t.Setenv("CSV_URL", "https://example.org/activity.csv")
	t.Setenv("CSV_SYNTHETIC_START", "2023-06-01")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), cfg.CSVSyntheticStart)
	require.Equal(t, 30, cfg.CSVSyntheticDays)
	require.Len(t, cfg.KPIs, 3)
	require.Equal(t, activity.FieldTotalDay, cfg.KPIs[1].Field)
	require.Equal(t, activity.FieldUserID, cfg.KPIs[2].Field)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing db":        {},
		"bad driver":        {"DB_NAME": "x", "DB_DRIVER": "oracle"},
		"csv without url":   {"SOURCE_KIND": "csv"},
		"unknown source":    {"SOURCE_KIND": "s3"},
		"negative ttl":      {"DB_NAME": "x", "CACHE_TTL": "-1m"},
		"bad csv start":     {"SOURCE_KIND": "csv", "CSV_URL": "http://x", "CSV_SYNTHETIC_START": "01/06/2023"},
		"missing overrides": {"DB_NAME": "x", "COLUMN_MAPPING_FILE": "/nonexistent/mapping.yaml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_YAMLOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
columns:
  user_id: usuario
  unique_users: unicos
kpis:
  - name: total_events
    label: Eventos
    kind: count
  - name: users
    label: Usuarios
    kind: distinct
    field: user_id
`), 0o600))

	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("COLUMN_MAPPING_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "usuario", cfg.Mapping[activity.FieldUserID])
	require.Equal(t, "unicos", cfg.Mapping[activity.FieldUniqueUsers])
	require.Equal(t, "origen", cfg.Mapping[activity.FieldOrigin])
	require.Equal(t, []metrics.KPISpec{
		{Name: "total_events", Label: "Eventos", Kind: metrics.KPICount},
		{Name: "users", Label: "Usuarios", Kind: metrics.KPIDistinct, Field: activity.FieldUserID},
	}, cfg.KPIs)
}

func TestLoad_YAMLRejectsUnknownNames(t *testing.T) {
	for name, body := range map[string]string{
		"unknown column field": "columns:\n  weather: clima\n",
		"sum of category":      "kpis:\n  - name: x\n    kind: sum\n    field: origin\n",
		"unknown kind":         "kpis:\n  - name: x\n    kind: avg\n",
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "mapping.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			t.Setenv("DB_NAME", "x")
			t.Setenv("COLUMN_MAPPING_FILE", path)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_TotalsKPIFile(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("..", "..", "configs", "kpis.totals.yaml"))
	require.NoError(t, err)

	clearEnv(t)
	t.Setenv("DB_NAME", "amad")
	t.Setenv("COLUMN_MAPPING_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.KPIs, 6)
	require.Equal(t, metrics.KPISpec{Name: "total_by_concept", Label: "Total by concept", Kind: metrics.KPISum, Field: activity.FieldTotalByConcept}, cfg.KPIs[3])
	require.Equal(t, activity.FieldUserID, cfg.KPIs[5].Field)
	require.Equal(t, "fecha", cfg.Mapping[activity.FieldDate])
}
