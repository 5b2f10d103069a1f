package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/typerpunk/internal/config"
	"github.com/verte-zerg/typerpunk/internal/wordfreq"
	"github.com/verte-zerg/typerpunk/internal/wordlist"
)

type localWheel struct {
	path  string
	err   error
	calls int
}

func (w *localWheel) Fetch(context.Context) (wordfreq.Wheel, error) {
	w.calls++
	return wordfreq.Wheel{Version: "test", Path: w.path}, w.err
}

func writeTestWheel(t *testing.T, lang string, words ...string) string {
	t.Helper()
	raw, err := msgpack.Marshal([]interface{}{
		map[string]interface{}{"format": "cB", "version": 1},
		words,
	})
	require.NoError(t, err)
	var packed bytes.Buffer
	gz := gzip.NewWriter(&packed)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("wordfreq/data/large_" + lang + ".msgpack.gz")
	require.NoError(t, err)
	_, err = w.Write(packed.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "wordfreq.whl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestDownloadWordListWritesListAndAttribution(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wordlists")
	wheel := &localWheel{path: writeTestWheel(t, "en", "the", "of", "and", "to")}

	path, err := downloadWordList(context.Background(), wheel, dir, " EN ", 3, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "en.txt"), path)

	words, err := wordlist.LoadWords(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of", "and"}, words)
	assert.FileExists(t, filepath.Join(dir, "ATTRIBUTION.txt"))

	_, err = downloadWordList(context.Background(), wheel, dir, "en", 3, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	assert.Equal(t, 1, wheel.calls, "existing list must be detected before fetching")

	_, err = downloadWordList(context.Background(), wheel, dir, "en", 4, true)
	require.NoError(t, err)
	words, err = wordlist.LoadWords(path, nil)
	require.NoError(t, err)
	assert.Len(t, words, 4)
}

func TestDownloadWordListErrors(t *testing.T) {
	dir := t.TempDir()
	wheel := &localWheel{path: writeTestWheel(t, "de", "und", "der")}

	_, err := downloadWordList(context.Background(), wheel, dir, "fr", 10, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: de")

	_, err = downloadWordList(context.Background(), wheel, dir, "", 10, false)
	require.Error(t, err)
	_, err = downloadWordList(context.Background(), wheel, dir, "de", 0, false)
	require.Error(t, err)

	failing := &localWheel{err: errors.New("offline")}
	_, err = downloadWordList(context.Background(), failing, dir, "de", 10, false)
	require.ErrorContains(t, err, "offline")
}

func TestDownloadedWordListDefaultsDrills(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	assert.Empty(t, downloadedWordList("en"))

	require.NoError(t, wordlist.WriteWords(config.DefaultWordListPath("en"), []string{"alpha", "beta"}))
	assert.Equal(t, config.DefaultWordListPath("en"), downloadedWordList("En"))
	assert.Empty(t, downloadedWordList("de"))
	assert.Empty(t, downloadedWordList(""))

	cfg := validConfig()
	cfg.NoLibrary = true
	cfg.DrillLang = "en"
	cfg.DrillWords = 2
	cfg.DrillPassages = 1
	cfg.DrillWordList = downloadedWordList(cfg.DrillLang)
	require.True(t, cfg.Drill())
}
