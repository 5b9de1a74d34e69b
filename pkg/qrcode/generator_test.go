package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/dmitrymomot/sealkit/pkg/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const provisioningURI = "otpauth://totp/Acme:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme&digits=6&period=30"

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{"", "   \t\n"} {
			result, err := qrcode.Generate(content)
			assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
			assert.Nil(t, result)
		}
	})

	t.Run("default size", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate(provisioningURI)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err, "result should be a valid PNG image")
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dy())
	})

	t.Run("custom size", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate(provisioningURI, qrcode.WithSize(400))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	})

	t.Run("non-positive size keeps default", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate(provisioningURI, qrcode.WithSize(-10))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})

	t.Run("recovery levels and border", func(t *testing.T) {
		t.Parallel()
		for _, level := range []qrcode.RecoveryLevel{qrcode.Low, qrcode.Medium, qrcode.High, qrcode.Highest} {
			result, err := qrcode.Generate(provisioningURI, qrcode.WithRecoveryLevel(level), qrcode.WithoutBorder())
			require.NoError(t, err)
			_, err = png.Decode(bytes.NewReader(result))
			require.NoError(t, err)
		}
	})

	t.Run("content too large", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate(strings.Repeat("x", 8000), qrcode.WithRecoveryLevel(qrcode.Highest))
		assert.ErrorIs(t, err, qrcode.ErrFailedToGenerateQRCode)
	})
}

func TestGenerateDataURI(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateDataURI(" ")
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
		assert.Empty(t, result)
	})

	t.Run("decodes to a PNG", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateDataURI(provisioningURI, qrcode.WithSize(300))
		require.NoError(t, err)

		const prefix = "data:image/png;base64,"
		require.True(t, strings.HasPrefix(result, prefix))

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result, prefix))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(decoded))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
	})
}
