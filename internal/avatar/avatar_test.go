package avatar_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/avatar"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage encodes a solid-color image of the given size in the given
// format and returns the raw file bytes.
func testImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestProcess_RejectsOversizedFile(t *testing.T) {
	data := make([]byte, avatar.MaxFileSizeBytes+1)

	_, err := avatar.Process("big.jpg", data)

	assert.ErrorIs(t, err, avatar.ErrFileTooLarge)
}

func TestProcess_RejectsUnsupportedExtension(t *testing.T) {
	data := testImage(t, 200, 200, imaging.JPEG)

	for _, name := range []string{"avatar.bmp", "avatar.webp", "avatar.txt", "avatar"} {
		_, err := avatar.Process(name, data)
		assert.ErrorIs(t, err, avatar.ErrUnsupportedType, "name %q", name)
	}
}

func TestProcess_RejectsCorruptPayload(t *testing.T) {
	_, err := avatar.Process("avatar.png", []byte("this is not an image"))

	assert.ErrorIs(t, err, avatar.ErrDecodeFailed)
}

func TestProcess_DimensionBoundary(t *testing.T) {
	// 99x100 is below the minimum on one side; 100x100 is exactly at it.
	_, err := avatar.Process("small.jpg", testImage(t, 99, 100, imaging.JPEG))
	assert.ErrorIs(t, err, avatar.ErrTooSmall)

	got, err := avatar.Process("ok.jpg", testImage(t, 100, 100, imaging.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 100, got.W)
	assert.Equal(t, 100, got.H)
}

func TestProcess_SmallImagePassesThroughUnchanged(t *testing.T) {
	data := testImage(t, 300, 200, imaging.PNG)

	got, err := avatar.Process("avatar.png", data)

	require.NoError(t, err)
	assert.Equal(t, data, got.Data, "images within bounds are not re-encoded")
	assert.Equal(t, ".png", got.Ext)
}

func TestProcess_ResizesLongSideTo500(t *testing.T) {
	data := testImage(t, 600, 400, imaging.JPEG)

	got, err := avatar.Process("wide.jpg", data)

	require.NoError(t, err)
	assert.Equal(t, 500, got.W, "long side becomes exactly 500")
	assert.Equal(t, 333, got.H, "aspect ratio preserved within rounding")

	// The stored bytes decode to the resized dimensions.
	w, h := decodeSize(t, got.Data)
	assert.Equal(t, 500, w)
	assert.Equal(t, 333, h)
}

func TestProcess_ResizesPortraitOnHeight(t *testing.T) {
	data := testImage(t, 400, 600, imaging.PNG)

	got, err := avatar.Process("tall.png", data)

	require.NoError(t, err)
	assert.Equal(t, 333, got.W)
	assert.Equal(t, 500, got.H)
}

func TestProcess_JpegUppercaseExtensionNormalized(t *testing.T) {
	data := testImage(t, 700, 700, imaging.JPEG)

	got, err := avatar.Process("SHOUTY.JPEG", data)

	require.NoError(t, err)
	assert.Equal(t, ".jpeg", got.Ext)
	w, h := decodeSize(t, got.Data)
	assert.Equal(t, 500, w)
	assert.Equal(t, 500, h)
}
