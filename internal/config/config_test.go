package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ARTICLE_TRACE", "ARTICLE_SANITIZE", "ARTICLE_HIGHLIGHT", "ARTICLE_HIGHLIGHT_ANALYSE", "ARTICLE_MINIFY", "ARTICLE_WORKERS"} {
		t.Setenv(key, "")
	}
	cfg := ReadConfig()
	assert.False(t, cfg.Trace)
	assert.True(t, cfg.Sanitize)
	assert.True(t, cfg.Highlight)
	assert.False(t, cfg.Minify)
	assert.Equal(t, 4, cfg.Workers)
}

func TestReadConfigEnvironment(t *testing.T) {
	t.Setenv("ARTICLE_TRACE", "true")
	t.Setenv("ARTICLE_SANITIZE", "false")
	t.Setenv("ARTICLE_MINIFY", "1")
	t.Setenv("ARTICLE_WORKERS", "8")
	cfg := ReadConfig()
	assert.True(t, cfg.Trace)
	assert.False(t, cfg.Sanitize)
	assert.True(t, cfg.Minify)
	assert.Equal(t, 8, cfg.Workers)
}

func TestReadConfigInvalidWorkers(t *testing.T) {
	t.Setenv("ARTICLE_WORKERS", "lots")
	assert.Equal(t, 4, ReadConfig().Workers)
}

func TestLogAfterSetup(t *testing.T) {
	t.Setenv("ARTICLE_MINIFY", "true")
	t.Setenv("ARTICLE_WORKERS", "")

	var buf bytes.Buffer
	cfg := ReadConfig()
	assert.Empty(t, buf.String())

	cfg.Log(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	assert.Contains(t, buf.String(), `msg="Set config value" key=Config.Minify value=true source=ENVIRONMENT`)
	assert.NotContains(t, buf.String(), "Config.Workers")

	buf.Reset()
	cfg.Log(slog.New(slog.NewTextHandler(&buf, nil)))
	assert.Empty(t, buf.String())
}
