package fingerprint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mediasort/internal/testutil"
)

func TestFileHashDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	a := testutil.WriteFile(t, tmpDir, "a.bin", []byte("identical content"))
	b := testutil.WriteFile(t, tmpDir, "b.bin", []byte("identical content"))
	c := testutil.WriteFile(t, tmpDir, "c.bin", []byte("different content"))

	hashA, err := FileHash(a)
	require.NoError(t, err)
	hashB, err := FileHash(b)
	require.NoError(t, err)
	hashC, err := FileHash(c)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, hashA, hashC)
	assert.Len(t, hashA, 64) // hex-encoded SHA-256
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(t.TempDir() + "/nope.bin")
	assert.Error(t, err)
}

func TestPixelHashCollidesAcrossEncodings(t *testing.T) {
	tmpDir := t.TempDir()
	// White survives GIF palette quantization exactly.
	img := testutil.SolidImage(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	asPNG := testutil.WritePNG(t, tmpDir, "white.png", img)
	asGIF := testutil.WriteGIF(t, tmpDir, "white.gif", img)

	// The encodings produce different bytes but identical pixels.
	fileHashPNG, err := FileHash(asPNG)
	require.NoError(t, err)
	fileHashGIF, err := FileHash(asGIF)
	require.NoError(t, err)
	assert.NotEqual(t, fileHashPNG, fileHashGIF)

	pixelHashPNG, err := PixelHash(asPNG)
	require.NoError(t, err)
	pixelHashGIF, err := PixelHash(asGIF)
	require.NoError(t, err)
	assert.Equal(t, pixelHashPNG, pixelHashGIF)
}

func TestPixelHashDistinguishesContent(t *testing.T) {
	tmpDir := t.TempDir()
	red := testutil.WritePNG(t, tmpDir, "red.png", testutil.SolidImage(2, 2, color.RGBA{R: 255, A: 255}))
	blue := testutil.WritePNG(t, tmpDir, "blue.png", testutil.SolidImage(2, 2, color.RGBA{B: 255, A: 255}))

	hashRed, err := PixelHash(red)
	require.NoError(t, err)
	hashBlue, err := PixelHash(blue)
	require.NoError(t, err)
	assert.NotEqual(t, hashRed, hashBlue)
}

func TestPixelHashUnsupportedData(t *testing.T) {
	tmpDir := t.TempDir()
	fake := testutil.WriteFile(t, tmpDir, "fake.png", []byte("this is not image data"))

	_, err := PixelHash(fake)
	assert.ErrorIs(t, err, ErrUnsupportedForPixelHashing)
}

func TestComputeDispatch(t *testing.T) {
	tmpDir := t.TempDir()
	img := testutil.SolidImage(2, 2, color.RGBA{G: 255, A: 255})
	pngPath := testutil.WritePNG(t, tmpDir, "green.png", img)
	txtPath := testutil.WriteFile(t, tmpDir, "notes.txt", []byte("plain text"))

	// Content mode on an image uses the pixel hash.
	contentHash, err := Compute(pngPath, ModeContent)
	require.NoError(t, err)
	pixelHash, err := PixelHash(pngPath)
	require.NoError(t, err)
	assert.Equal(t, pixelHash, contentHash)

	// File mode on the same image uses the byte hash.
	fileModeHash, err := Compute(pngPath, ModeFile)
	require.NoError(t, err)
	byteHash, err := FileHash(pngPath)
	require.NoError(t, err)
	assert.Equal(t, byteHash, fileModeHash)

	// Non-image files use the byte hash regardless of mode.
	txtContentHash, err := Compute(txtPath, ModeContent)
	require.NoError(t, err)
	txtByteHash, err := FileHash(txtPath)
	require.NoError(t, err)
	assert.Equal(t, txtByteHash, txtContentHash)
}

func TestComputeFallsBackOnUndecodableImage(t *testing.T) {
	tmpDir := t.TempDir()
	fake := testutil.WriteFile(t, tmpDir, "fake.jpg", []byte("not a jpeg"))

	got, err := Compute(fake, ModeContent)
	require.NoError(t, err)
	want, err := FileHash(fake)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolution(t *testing.T) {
	tmpDir := t.TempDir()
	path := testutil.WritePNG(t, tmpDir, "wide.png", testutil.SolidImage(640, 2, color.White))

	w, h, err := Resolution(path)
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 2, h)

	fake := testutil.WriteFile(t, tmpDir, "fake.png", []byte("garbage"))
	_, _, err = Resolution(fake)
	assert.Error(t, err)
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModeFile.Valid())
	assert.True(t, ModeContent.Valid())
	assert.False(t, Mode("pixel").Valid())
}
