package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/typerpunk/internal/model"
)

//go:embed texts.json
var defaultTexts []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the passages bundled with the binary.
func Default() ([]model.Passage, error) {
	passages, err := Decode(bytes.NewReader(defaultTexts))
	if err != nil {
		return nil, fmt.Errorf("failed to decode bundled texts: %w", err)
	}
	return passages, nil
}

// LoadFile reads a JSON passage file.
func LoadFile(path string) ([]model.Passage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()
	passages, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return passages, nil
}

// Decode parses a JSON array of passage records. Each record is validated
// and normalized.
func Decode(r io.Reader) ([]model.Passage, error) {
	var records []model.Passage
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode passages: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("passage list is empty")
	}
	out := make([]model.Passage, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("passage %d: %w", i, err)
		}
		p := Normalize(rec)
		if p.Content == "" {
			return nil, fmt.Errorf("passage %d: content is blank", i)
		}
		out = append(out, p)
	}
	return out, nil
}

// Normalize returns p with typeable content and trimmed metadata. Content is
// NFC-normalized so composed and decomposed forms compare equal code point by
// code point. Control characters cannot be typed, so any whitespace run
// holding one (a line break, a tab) becomes a single space.
func Normalize(p model.Passage) model.Passage {
	return model.Passage{
		Content:     strings.TrimSpace(foldControls(norm.NFC.String(p.Content))),
		Attribution: strings.TrimSpace(p.Attribution),
		Category:    strings.TrimSpace(p.Category),
	}
}

func foldControls(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !separator(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j, control := i, false
		for ; j < len(runes) && separator(runes[j]); j++ {
			control = control || unicode.IsControl(runes[j])
		}
		if control {
			b.WriteByte(' ')
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}

func separator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
