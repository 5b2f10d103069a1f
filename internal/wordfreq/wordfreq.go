// Package wordfreq builds drill word lists from the wordfreq dataset, which
// is published as a Python wheel on PyPI.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/typerpunk/internal/wordlist"
)

// DefaultIndexURL is the PyPI metadata endpoint for the wordfreq package.
const DefaultIndexURL = "https://pypi.org/pypi/wordfreq/json"

// Attribution is written next to generated word lists.
const Attribution = `Word lists generated from the wordfreq dataset.
Source: https://github.com/rspeer/wordfreq
Data license: CC BY-SA 4.0 (https://creativecommons.org/licenses/by-sa/4.0/).
Changes were made: filtered to alphabetic words and truncated to the requested size.
`

// Fetcher downloads and caches the wordfreq wheel.
type Fetcher struct {
	IndexURL string
	CacheDir string
	Client   *http.Client
}

// Wheel is a wordfreq wheel on disk.
type Wheel struct {
	Version string
	Path    string
	Cached  bool
}

type pypiRelease struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []struct {
		URL         string `json:"url"`
		Filename    string `json:"filename"`
		PackageType string `json:"packagetype"`
	} `json:"urls"`
}

// Fetch resolves the latest wheel and downloads it unless already cached.
func (f Fetcher) Fetch(ctx context.Context) (Wheel, error) {
	if f.CacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var release pypiRelease
	if err := f.get(ctx, f.indexURL(), func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&release)
	}); err != nil {
		return Wheel{}, fmt.Errorf("failed to fetch wordfreq metadata: %w", err)
	}
	url, filename := pickWheel(release)
	if url == "" {
		return Wheel{}, fmt.Errorf("no wordfreq wheel in release %q", release.Info.Version)
	}

	dest := filepath.Join(f.CacheDir, filepath.Base(filename))
	if _, err := os.Stat(dest); err == nil {
		return Wheel{Version: release.Info.Version, Path: dest, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	tmp, err := os.CreateTemp(f.CacheDir, "wordfreq-*.whl")
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := f.get(ctx, url, func(body io.Reader) error {
		_, err := io.Copy(tmp, body)
		return err
	}); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Wheel{}, fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return Wheel{}, fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return Wheel{Version: release.Info.Version, Path: dest}, nil
}

func (f Fetcher) indexURL() string {
	if f.IndexURL != "" {
		return f.IndexURL
	}
	return DefaultIndexURL
}

func (f Fetcher) get(ctx context.Context, url string, read func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return read(resp.Body)
}

func pickWheel(release pypiRelease) (string, string) {
	fallbackURL, fallbackName := "", ""
	for _, u := range release.URLs {
		if u.PackageType != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(u.Filename, "py3-none-any.whl") {
			return u.URL, u.Filename
		}
		if fallbackURL == "" {
			fallbackURL, fallbackName = u.URL, u.Filename
		}
	}
	return fallbackURL, fallbackName
}

// Extract returns up to limit words for lang, most frequent first. Words must
// be alphabetic, 2 to 20 runes long and accepted by the language filter.
func Extract(wheelPath, lang string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := dataFile(reader.File, lang)
	if file == nil {
		return nil, fmt.Errorf("no word data for language %q", lang)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	keep := wordlist.FilterForLang(lang)
	words := make([]string, 0, limit)
	seen := make(map[string]struct{})
	err = readBins(rc, func(word string) bool {
		if _, ok := seen[word]; ok || !usable(word) || !keep(word) {
			return true
		}
		seen[word] = struct{}{}
		words = append(words, word)
		return len(words) < limit
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words for language %q", lang)
	}
	return words, nil
}

// Languages lists, sorted, the language codes that have word data in the wheel.
func Languages(wheelPath string) ([]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	seen := make(map[string]struct{})
	var langs []string
	for _, file := range reader.File {
		lang, ok := dataLang(file.Name)
		if !ok {
			continue
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// dataFile prefers the large list and falls back to the small one.
func dataFile(files []*zip.File, lang string) *zip.File {
	var small *zip.File
	for _, file := range files {
		switch strings.ToLower(file.Name) {
		case "wordfreq/data/large_" + lang + ".msgpack.gz":
			return file
		case "wordfreq/data/small_" + lang + ".msgpack.gz":
			small = file
		}
	}
	return small
}

func dataLang(name string) (string, bool) {
	base, ok := strings.CutPrefix(strings.ToLower(name), "wordfreq/data/")
	if !ok {
		return "", false
	}
	base, ok = strings.CutSuffix(base, ".msgpack.gz")
	if !ok {
		return "", false
	}
	for _, prefix := range []string{"large_", "small_"} {
		if lang, found := strings.CutPrefix(base, prefix); found && lang != "" {
			return lang, true
		}
	}
	return "", false
}

type cbHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

// readBins streams a gzipped cBpack: a header map followed by one array of
// words per frequency bin, most frequent bin first. visit returns false to
// stop early.
func readBins(r io.Reader, visit func(string) bool) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer func() {
		_ = gz.Close()
	}()

	dec := msgpack.NewDecoder(gz)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("failed to decode cBpack: %w", err)
	}
	if n < 1 {
		return fmt.Errorf("cBpack is empty")
	}
	var header cbHeader
	if err := dec.Decode(&header); err != nil {
		return fmt.Errorf("failed to decode cBpack header: %w", err)
	}
	if header.Format != "cB" {
		return fmt.Errorf("unsupported format %q", header.Format)
	}
	for bin := 1; bin < n; bin++ {
		size, err := dec.DecodeArrayLen()
		if err != nil {
			return fmt.Errorf("bin %d: %w", bin, err)
		}
		for i := 0; i < size; i++ {
			word, err := dec.DecodeString()
			if err != nil {
				return fmt.Errorf("bin %d: %w", bin, err)
			}
			if !visit(word) {
				return nil
			}
		}
	}
	return nil
}

func usable(word string) bool {
	n := utf8.RuneCountInString(word)
	if n < 2 || n > 20 {
		return false
	}
	return strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) == -1
}
