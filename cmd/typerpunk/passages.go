package main

import (
	"context"
	"fmt"

	"github.com/verte-zerg/typerpunk/internal/config"
	"github.com/verte-zerg/typerpunk/internal/corpus"
	"github.com/verte-zerg/typerpunk/internal/generator"
	"github.com/verte-zerg/typerpunk/internal/model"
	"github.com/verte-zerg/typerpunk/internal/store"
	"github.com/verte-zerg/typerpunk/internal/wordlist"
)

// loadPassages assembles the practice corpus: bundled texts, then the
// optional corpus file, the imported library and generated drills.
func loadPassages(ctx context.Context, cfg model.Config, gen *generator.Generator) ([]model.Passage, error) {
	passages, err := corpus.Default()
	if err != nil {
		return nil, err
	}

	if cfg.Corpus != "" {
		extra, err := corpus.LoadFile(cfg.Corpus)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus: %w", err)
		}
		passages = append(passages, extra...)
	}

	if !cfg.NoLibrary {
		library, err := loadLibrary(ctx, config.DefaultLibraryPath())
		if err != nil {
			logErrf("skipping passage library: %v\n", err)
		}
		passages = append(passages, library...)
	}

	if cfg.Drill() {
		words, err := wordlist.LoadWords(cfg.DrillWordList, wordlist.FilterForLang(cfg.DrillLang))
		if err != nil {
			return nil, fmt.Errorf("failed to load drill word list %s: %w", cfg.DrillWordList, err)
		}
		passages = append(passages, gen.Drills(words, cfg.DrillPassages, generator.DrillOptions{
			Words:    cfg.DrillWords,
			CapsPct:  cfg.DrillCaps,
			PunctPct: cfg.DrillPunct,
			PunctSet: []rune(cfg.DrillPunctSet),
		})...)
	}
	return passages, nil
}

func loadLibrary(ctx context.Context, path string) ([]model.Passage, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	passages, err := st.ListPassages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range passages {
		passages[i] = corpus.Normalize(passages[i])
	}
	return passages, nil
}
