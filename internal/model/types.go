// Package model defines shared data structures.
package model

// Passage is a reference text the user reproduces while typing.
type Passage struct {
	Content     string `json:"content" validate:"required"`
	Attribution string `json:"attribution"`
	Category    string `json:"category"`
}

// Config defines practice settings.
type Config struct {
	Category  string
	Corpus    string
	NoLibrary bool

	DrillWordList string
	DrillLang     string
	DrillWords    int     `validate:"gte=0"`
	DrillPassages int     `validate:"gte=0"`
	DrillCaps     float64 `validate:"gte=0,lte=1"`
	DrillPunct    float64 `validate:"gte=0,lte=1"`
	DrillPunctSet string

	LogLevel string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFile  string
}

// Drill returns true when word drill passages should be generated.
func (c Config) Drill() bool {
	return c.DrillWordList != "" && c.DrillPassages > 0 && c.DrillWords > 0
}
