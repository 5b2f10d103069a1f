package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typerpunk/internal/config"
	"github.com/verte-zerg/typerpunk/internal/wordfreq"
	"github.com/verte-zerg/typerpunk/internal/wordlist"
)

const defaultWordlistSize = 5000

var (
	wordlistLang  string
	wordlistSize  int
	wordlistForce bool
)

type wheelFetcher interface {
	Fetch(ctx context.Context) (wordfreq.Wheel, error)
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Download a drill word list from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", defaultDrillLang, "language code")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSize, "number of words")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite an existing word list")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	fetcher := wordfreq.Fetcher{CacheDir: config.DefaultWordfreqCacheDir()}
	path, err := downloadWordList(cmd.Context(), fetcher, config.DefaultWordListDir(), wordlistLang, wordlistSize, wordlistForce)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// downloadWordList extracts the lang list from the wordfreq wheel into dir
// and returns the written path.
func downloadWordList(ctx context.Context, fetcher wheelFetcher, dir, lang string, size int, force bool) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "", fmt.Errorf("--lang must not be empty")
	}
	if size <= 0 {
		return "", fmt.Errorf("--size must be greater than 0")
	}
	path := filepath.Join(dir, lang+".txt")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("word list already exists: %s (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat word list: %w", err)
		}
	}

	logErrf("Fetching wordfreq metadata...\n")
	wheel, err := fetcher.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", filepath.Base(wheel.Path))
	}

	words, err := wordfreq.Extract(wheel.Path, lang, size)
	if err != nil {
		if langs, lerr := wordfreq.Languages(wheel.Path); lerr == nil && len(langs) > 0 {
			return "", fmt.Errorf("%w (available: %s)", err, strings.Join(langs, ", "))
		}
		return "", err
	}
	if err := wordlist.WriteWords(path, words); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ATTRIBUTION.txt"), []byte(wordfreq.Attribution), 0o644); err != nil {
		return "", fmt.Errorf("failed to write attribution: %w", err)
	}
	return path, nil
}

// downloadedWordList returns the saved list for lang, or "" when none exists.
func downloadedWordList(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return ""
	}
	path := config.DefaultWordListPath(lang)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return ""
	}
	return path
}
