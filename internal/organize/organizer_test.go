package organize_test

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/metadata"
	"github.com/user/mediasort/internal/organize"
	"github.com/user/mediasort/internal/testutil"
)

// testConfig lowers the thresholds so tiny synthetic fixtures pass the
// junk filter.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.MinFileSize = 10
	cfg.MinDimension = 600
	return cfg
}

func defaultOptions() organize.Options {
	return organize.Options{
		DupAction:  config.ActionMove,
		JunkAction: config.ActionIgnore,
		Mode:       fingerprint.ModeFile,
		Quiet:      true,
	}
}

func run(t *testing.T, src, dest string, cfg config.Config, opts organize.Options, prober metadata.VideoProber) organize.Stats {
	t.Helper()
	org, err := organize.New(src, dest, cfg, opts, prober)
	require.NoError(t, err)
	stats, err := org.Run(context.Background())
	require.NoError(t, err)
	return stats
}

func TestSortsByExifDateIntoDateTree(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "shot.dng", testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256))

	stats := run(t, src, dest, testConfig(), defaultOptions(), nil)

	assert.Equal(t, 1, stats.Sorted)
	sorted := filepath.Join(dest, "2020", "03-March", "2020-03-04_10-00-00.dng")
	_, err := os.Stat(sorted)
	assert.NoError(t, err, "expected file at %s", sorted)

	// Copy mode leaves the source in place.
	_, err = os.Stat(filepath.Join(src, "shot.dng"))
	assert.NoError(t, err)

	// The index gained exactly one entry for the new relative path.
	data, err := os.ReadFile(filepath.Join(dest, "photo_index.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2020/03-March/2020-03-04_10-00-00.dng")
}

func TestMoveModeRemovesSource(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "shot.dng", testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256))

	opts := defaultOptions()
	opts.Move = true
	stats := run(t, src, dest, testConfig(), opts, nil)

	assert.Equal(t, 1, stats.Sorted)
	_, err := os.Stat(filepath.Join(src, "shot.dng"))
	assert.True(t, os.IsNotExist(err))
}

func TestSecondPassIsIdempotent(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "shot.dng", testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256))

	first := run(t, src, dest, testConfig(), defaultOptions(), nil)
	require.Equal(t, 1, first.Sorted)

	// Same source, same destination, same index: nothing new to route.
	opts := defaultOptions()
	opts.DupAction = config.ActionIgnore
	second := run(t, src, dest, testConfig(), opts, nil)

	assert.Equal(t, 0, second.Sorted)
	assert.Equal(t, 1, second.Duplicates)
}

func TestDuplicateDelete(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	payload := testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256)
	testutil.WriteFile(t, src, "shot.dng", payload)

	run(t, src, dest, testConfig(), defaultOptions(), nil)

	// A byte-identical copy under a new name is detected and deleted.
	src2 := t.TempDir()
	dup := testutil.WriteFile(t, src2, "copy_of_shot.dng", payload)
	opts := defaultOptions()
	opts.DupAction = config.ActionDelete
	stats := run(t, src2, dest, testConfig(), opts, nil)

	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.DeletedDups)
	_, err := os.Stat(dup)
	assert.True(t, os.IsNotExist(err))
}

func TestContentModeCollidesAcrossEncodings(t *testing.T) {
	img := testutil.SolidImage(700, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	// First run routes the PNG; the visual index stores its pixel hash.
	// Metadata separation is off so the dateless PNG lands in the sorted
	// tree and gets indexed.
	src1 := t.TempDir()
	dest := t.TempDir()
	testutil.WritePNG(t, src1, "white.png", img)
	cfg := testConfig()
	cfg.SeparateNoMetadata = false
	opts := defaultOptions()
	opts.Mode = fingerprint.ModeContent
	first := run(t, src1, dest, cfg, opts, nil)
	require.Equal(t, 1, first.Sorted)

	// Same pixels as a GIF: different bytes, different size. Seed the
	// destination with a file of the GIF's size so the size gate does
	// not skip hashing.
	src2 := t.TempDir()
	gifPath := testutil.WriteGIF(t, src2, "white.gif", img)
	fi, err := os.Stat(gifPath)
	require.NoError(t, err)
	testutil.WriteFile(t, dest, "seed.bin", make([]byte, fi.Size()))

	opts.DupAction = config.ActionDelete
	stats := run(t, src2, dest, cfg, opts, nil)

	assert.Equal(t, 1, stats.Duplicates, "pixel-identical image must collide across encodings")
	assert.Equal(t, 1, stats.DeletedDups)
	_, err = os.Stat(gifPath)
	assert.True(t, os.IsNotExist(err))
}

func TestJunkActions(t *testing.T) {
	cfg := testConfig()
	cfg.MinFileSize = 100

	t.Run("ignore leaves file in place", func(t *testing.T) {
		src := t.TempDir()
		dest := t.TempDir()
		small := testutil.WriteFile(t, src, "small.jpg", make([]byte, 50))

		stats := run(t, src, dest, cfg, defaultOptions(), nil)
		assert.Equal(t, 1, stats.Junk)
		_, err := os.Stat(small)
		assert.NoError(t, err)
	})

	t.Run("move relocates to junk bucket", func(t *testing.T) {
		src := t.TempDir()
		dest := t.TempDir()
		testutil.WriteFile(t, src, "small.jpg", make([]byte, 50))

		opts := defaultOptions()
		opts.JunkAction = config.ActionMove
		opts.Move = true
		stats := run(t, src, dest, cfg, opts, nil)
		assert.Equal(t, 1, stats.Junk)
		_, err := os.Stat(filepath.Join(dest, "Skipped_Junk", "small.jpg"))
		assert.NoError(t, err)
	})

	t.Run("delete removes the file", func(t *testing.T) {
		src := t.TempDir()
		dest := t.TempDir()
		small := testutil.WriteFile(t, src, "small.jpg", make([]byte, 50))

		opts := defaultOptions()
		opts.JunkAction = config.ActionDelete
		stats := run(t, src, dest, cfg, opts, nil)
		assert.Equal(t, 1, stats.Junk)
		_, err := os.Stat(small)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestNoMetadataBucketWithCollision(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WritePNG(t, src, "trip1/pic.png", testutil.SolidImage(700, 10, color.RGBA{R: 255, A: 255}))
	testutil.WritePNG(t, src, "trip2/pic.png", testutil.SolidImage(700, 12, color.RGBA{B: 255, A: 255}))

	opts := defaultOptions()
	opts.Move = true
	stats := run(t, src, dest, testConfig(), opts, nil)

	assert.Equal(t, 2, stats.NoMetadata)
	assert.Equal(t, 0, stats.Sorted)
	_, err := os.Stat(filepath.Join(dest, "No_Metadata_Images", "pic.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "No_Metadata_Images", "pic_1.png"))
	assert.NoError(t, err)
}

func TestNoMetadataSeparationDisabled(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	path := testutil.WritePNG(t, src, "pic.png", testutil.SolidImage(700, 10, color.White))
	mtime := time.Date(2019, time.May, 20, 8, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	cfg := testConfig()
	cfg.SeparateNoMetadata = false
	stats := run(t, src, dest, cfg, defaultOptions(), nil)

	assert.Equal(t, 1, stats.Sorted)
	assert.Equal(t, 0, stats.NoMetadata)
	_, err := os.Stat(filepath.Join(dest, "2019", "05-May", "2019-05-20_08-30-00.png"))
	assert.NoError(t, err)
}

func TestCorruptVideoAlwaysQuarantined(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "clip.mp4", []byte("not a real container, long enough to pass the size gate"))

	// Aggressive junk/dup actions must not affect corrupt-video routing.
	opts := defaultOptions()
	opts.JunkAction = config.ActionDelete
	opts.DupAction = config.ActionDelete
	opts.Move = true
	stats := run(t, src, dest, testConfig(), opts, metadata.MP4Prober{})

	assert.Equal(t, 1, stats.CorruptVideos)
	_, err := os.Stat(filepath.Join(dest, "Corrupt_Videos", "clip.mp4"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(src, "clip.mp4"))
	assert.True(t, os.IsNotExist(err))
}

func TestDryRunTouchesNothing(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "shot.dng", testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256))

	opts := defaultOptions()
	opts.DryRun = true
	stats := run(t, src, dest, testConfig(), opts, nil)

	assert.Equal(t, 0, stats.Sorted)
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not create anything under the destination")
}

func TestCancelledRunStillSavesIndex(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "shot.dng", testutil.TIFFWithExifDate("2020:03:04 10:00:00", 256))

	org, err := organize.New(src, dest, testConfig(), defaultOptions(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := org.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Sorted)
	_, err = os.Stat(filepath.Join(dest, "photo_index.json"))
	assert.NoError(t, err, "interrupted runs still flush the index")
}

func TestNonMediaFilesAreSkipped(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testutil.WriteFile(t, src, "notes.txt", []byte("some notes, comfortably over the size floor"))

	stats := run(t, src, dest, testConfig(), defaultOptions(), nil)
	assert.Equal(t, organize.Stats{}, stats)
}
