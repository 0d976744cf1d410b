package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PDF_PAGE_SIZE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "Letter", cfg.PDFPageSize)
	assert.Equal(t, 2*time.Second, cfg.AutosaveQuiet)
	assert.Equal(t, 0.5, cfg.PDFMargin)
	assert.False(t, cfg.Development())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("AUTOSAVE_QUIET", "500ms")
	t.Setenv("PDF_PAGE_SIZE", "A4")
	t.Setenv("ENVIRONMENT", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveQuiet)
	assert.Equal(t, "A4", cfg.PDFPageSize)
	assert.True(t, cfg.Development())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("PDF_PAGE_SIZE", "Legal")
	_, err := Load()
	assert.ErrorContains(t, err, "PDF_PAGE_SIZE")

	t.Setenv("PDF_PAGE_SIZE", "A4")
	t.Setenv("PDF_SCALE", "3")
	_, err = Load()
	assert.ErrorContains(t, err, "PDF_SCALE")
}

func TestRequireAuth(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireAuth())
	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.RequireAuth())
}
