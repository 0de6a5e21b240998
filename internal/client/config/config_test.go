package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3001", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.False(t, c.Verbose)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{"server_base_url":"http://api:8080","request_timeout":"3s","verbose":true}`)

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{ServerBaseURL: "http://localhost:3001", RequestTimeout: 10 * time.Second},
		},
		{
			name: "json file",
			args: []string{"-c", path},
			want: Config{ServerBaseURL: "http://api:8080", RequestTimeout: 3 * time.Second, Verbose: true},
		},
		{
			name: "flags override json",
			args: []string{"-config", path, "-a", "http://other:1", "-t", "5"},
			want: Config{ServerBaseURL: "http://other:1", RequestTimeout: 5 * time.Second, Verbose: true},
		},
		{
			name: "double dash and equals",
			args: []string{"--a=http://x:2", "-v"},
			want: Config{ServerBaseURL: "http://x:2", RequestTimeout: 10 * time.Second, Verbose: true},
		},
		{
			name: "unknown flags ignored",
			args: []string{"-z", "1", "-t", "7"},
			want: Config{ServerBaseURL: "http://localhost:3001", RequestTimeout: 7 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			got := LoadConfig()
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson_PartialFileKeepsValues(t *testing.T) {
	withArgs(t, "-c", writeConfig(t, `{"request_timeout": 2000000000}`))

	cfg := &Config{ServerBaseURL: "http://keep", Verbose: true}
	parseJson(cfg)

	assert.Equal(t, "http://keep", cfg.ServerBaseURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Verbose)
}

func TestParseJson_Panics(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))
		require.Panics(t, func() { parseJson(&Config{}) })
	})
	t.Run("invalid json", func(t *testing.T) {
		withArgs(t, "-c", writeConfig(t, `{ not json`))
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestParseFlags_BadValuePanics(t *testing.T) {
	withArgs(t, "-t", "soon")
	require.Panics(t, func() { parseFlags(&Config{}) })
}
