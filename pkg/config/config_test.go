package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "dyn_run", cfg.Report.DefaultRegion)
	assert.Equal(t, 12, cfg.Report.TopN)
	assert.Equal(t, 5.0, cfg.Report.Threshold)
	assert.Equal(t, "percent", cfg.Report.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromReader(t *testing.T) {
	yaml := []byte(`
report:
  default_region: atm_run
  top_n: 20
  threshold_pct: 2.5
  mode: speedup
database:
  type: postgres
  host: db.internal
  port: 5433
storage:
  type: cos
  bucket: reports
  region: ap-guangzhou
`)

	cfg, err := LoadFromReader("yaml", yaml)
	require.NoError(t, err)

	assert.Equal(t, "atm_run", cfg.Report.DefaultRegion)
	assert.Equal(t, 20, cfg.Report.TopN)
	assert.Equal(t, 2.5, cfg.Report.Threshold)
	assert.Equal(t, "speedup", cfg.Report.Mode)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "cos", cfg.Storage.Type)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.Database.Type = "oracle"
	assert.Error(t, cfg.Validate())
	cfg.Database.Type = "sqlite"

	cfg.Report.TopN = 0
	assert.Error(t, cfg.Validate())
	cfg.Report.TopN = 12

	cfg.Report.Threshold = -1
	assert.Error(t, cfg.Validate())
	cfg.Report.Threshold = 5

	cfg.Report.Mode = "ratio"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ModeNamesMatchParser(t *testing.T) {
	// Validation accepts exactly the names model.ParseCompareMode accepts,
	// aliases included, so the two can not drift apart.
	cfg, err := Load("")
	require.NoError(t, err)

	for _, name := range []string{"percent", "percentage", "speedup", "multiplicative", "SPEEDUP"} {
		cfg.Report.Mode = name
		assert.NoError(t, cfg.Validate(), name)
	}
}
