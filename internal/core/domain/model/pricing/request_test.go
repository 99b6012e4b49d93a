package pricing_test

import (
	"testing"

	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("should build a valid request", func(t *testing.T) {
		req, err := pricing.NewRequest(pricing.SizeA3, pricing.PaperCoated, pricing.ModeDoubleSided, 42, true)

		require.NoError(t, err)
		require.NoError(t, req.Validate())
		assert.Equal(t, pricing.SizeA3, req.Size())
		assert.Equal(t, pricing.PaperCoated, req.Paper())
		assert.Equal(t, pricing.ModeDoubleSided, req.Mode())
		assert.Equal(t, 42, req.Pages())
		assert.True(t, req.Monochrome())
		assert.Equal(t, "A3 coated double-sided monochrome x42", req.String())
	})

	t.Run("should reject non-positive and excessive page counts", func(t *testing.T) {
		for _, pages := range []int{0, -3, pricing.MaxPages + 1} {
			_, err := pricing.NewRequest(pricing.SizeA4, pricing.PaperPlain, pricing.ModeSingleSided, pages, false)

			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should report every invalid attribute", func(t *testing.T) {
		_, err := pricing.NewRequest(pricing.SizeUnknown, pricing.PaperUnknown, pricing.ModeUnknown, 0, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "paper size")
		assert.Contains(t, err.Error(), "paper type")
		assert.Contains(t, err.Error(), "print mode")
	})
}

func TestParse(t *testing.T) {
	t.Run("should parse sizes case-insensitively", func(t *testing.T) {
		size, err := pricing.ParseSize("a0")

		require.NoError(t, err)
		assert.Equal(t, pricing.SizeA0, size)
		assert.True(t, size.IsLargeFormat())
	})

	t.Run("should parse paper and mode aliases", func(t *testing.T) {
		paper, err := pricing.ParsePaper(" Sticker ")
		require.NoError(t, err)
		assert.Equal(t, pricing.PaperSticker, paper)

		mode, err := pricing.ParsePrintMode("double")
		require.NoError(t, err)
		assert.Equal(t, pricing.ModeDoubleSided, mode)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := pricing.ParseSize("B5")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = pricing.ParsePaper("vellum")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = pricing.ParsePrintMode("triple")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
