package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
data_dir: ./testdata
brand:
  name: iloom
  category: desk
competitors:
  - name: hanssem
  - name: ikea
  - name: livart
  - name: desker
excluded_clusters: [newlywed, kids, senior]
max_path_examples: 3
log:
  level: debug
server:
  port: 9090
  cors_origins: ["http://localhost:3000"]
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validConfig() *Config {
	return &Config{
		Brand: types.Brand{Name: "iloom", Category: "desk"},
		Competitors: []types.Brand{
			{Name: "hanssem"}, {Name: "ikea"}, {Name: "livart"}, {Name: "desker"},
		},
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "./testdata", cfg.DataDir)
	assert.Equal(t, types.Brand{Name: "iloom", Category: "desk"}, cfg.Brand)
	assert.Len(t, cfg.Competitors, 4)
	assert.Equal(t, []string{"newlywed", "kids", "senior"}, cfg.ExcludedClusters)
	assert.Equal(t, 3, cfg.MaxPathExamples)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{"brand": {"name": "iloom", "category": "desk"},` +
		` "competitors": [{"name": "hanssem"}, {"name": "ikea"}, {"name": "livart"}, {"name": "desker"}],` +
		` "max_path_examples": 2}`

	cfg, err := LoadConfig(writeConfig(t, "config.json", content))
	require.NoError(t, err)
	assert.Equal(t, "iloom", cfg.Brand.Name)
	assert.Equal(t, 2, cfg.MaxPathExamples)
	assert.Nil(t, cfg.ExcludedClusters)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", "brand: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(_ *Config) {}, ""},
		{"missing brand", func(c *Config) { c.Brand.Name = " " }, "'brand.name' is required"},
		{"too few competitors", func(c *Config) { c.Competitors = c.Competitors[:3] }, "exactly 4 brands"},
		{"duplicate brand", func(c *Config) { c.Competitors[2].Name = "iloom" }, "listed twice"},
		{"unnamed competitor", func(c *Config) { c.Competitors[0].Name = "" }, "'competitors[0].name'"},
		{"negative examples", func(c *Config) { c.MaxPathExamples = -1 }, "max_path_examples"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 9000

	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, DefaultDataDir, merged.DataDir)
	assert.Equal(t, DefaultLogLevel, merged.Log.Level)
	assert.Equal(t, DefaultMaxPathExamples, merged.MaxPathExamples)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Nil(t, merged.ExcludedClusters)

	// The receiver is not modified.
	assert.Empty(t, cfg.DataDir)
}

func TestMergeWithDefaults_KeepsExplicitEmptyList(t *testing.T) {
	cfg := validConfig()
	cfg.ExcludedClusters = []string{}

	merged := cfg.MergeWithDefaults(Config{ExcludedClusters: []string{"kids"}})
	assert.NotNil(t, merged.ExcludedClusters)
	assert.Empty(t, merged.ExcludedClusters)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PORT", "7070")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := validConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestApplyEnv_IgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := validConfig()
	cfg.Server.Port = 8080
	cfg.ApplyEnv()
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestRoster(t *testing.T) {
	roster := validConfig().Roster()
	assert.Equal(t, "iloom", roster.Focal.Name)
	assert.Equal(t, []string{"desker", "hanssem", "ikea", "iloom", "livart"}, roster.Names())
}
