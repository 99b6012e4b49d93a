package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SETTINGS_FILE", "")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	t.Run("should print the discounted monochrome total", func(t *testing.T) {
		out, err := run(t, "quote", "--size", "A4", "--pages", "15", "--mono")

		require.NoError(t, err)
		assert.Contains(t, out, "Discount:   1500 VND")
		assert.Contains(t, out, "Total:      6000 VND")
	})

	t.Run("should reject unknown paper and mode together", func(t *testing.T) {
		_, err := run(t, "quote", "--paper", "vellum", "--mode", "triple")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "vellum")
		assert.Contains(t, err.Error(), "triple")
	})

	t.Run("should report a missing rate as a configuration error", func(t *testing.T) {
		_, err := run(t, "quote", "--size", "A1")

		require.Error(t, err)
	})

	t.Run("should read an override settings file", func(t *testing.T) {
		defaults, err := os.ReadFile(filepath.Join("..", "..", "internal", "config", "defaults.yaml"))
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, bytes.Replace(defaults,
			[]byte("monochromeDiscount: 0.2"), []byte("monochromeDiscount: 0.5"), 1), 0o600))

		out, err := run(t, "--settings", path, "quote", "--pages", "15", "--mono")

		require.NoError(t, err)
		assert.Contains(t, out, "Total:      3750 VND")
	})
}

func TestCheckZoneCommand(t *testing.T) {
	t.Run("should charge the base fare at the shop", func(t *testing.T) {
		out, err := run(t, "check-zone", "--lat", "21.0285", "--lng", "105.8542")

		require.NoError(t, err)
		assert.Contains(t, out, "Deliverable, zone central")
		assert.Contains(t, out, "Fee:       15000")
	})

	t.Run("should explain a rejection", func(t *testing.T) {
		out, err := run(t, "check-zone", "--lat", "10.8231", "--lng", "106.6297")

		require.NoError(t, err)
		assert.Contains(t, out, "Rejected (outside region)")
	})

	t.Run("should require both coordinates", func(t *testing.T) {
		_, err := run(t, "check-zone", "--lat", "21.0285")

		require.Error(t, err)
	})
}
