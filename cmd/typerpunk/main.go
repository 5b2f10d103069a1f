// Package main provides the CLI entrypoint for typerpunk.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typerpunk/internal/config"
	"github.com/verte-zerg/typerpunk/internal/corpus"
	"github.com/verte-zerg/typerpunk/internal/engine"
	"github.com/verte-zerg/typerpunk/internal/generator"
	"github.com/verte-zerg/typerpunk/internal/logging"
	"github.com/verte-zerg/typerpunk/internal/model"
	"github.com/verte-zerg/typerpunk/internal/stats"
	"github.com/verte-zerg/typerpunk/internal/store"
	"github.com/verte-zerg/typerpunk/internal/tui"
)

const (
	defaultDrillLang     = "en"
	defaultDrillWords    = 25
	defaultDrillPassages = 10
	defaultDrillCaps     = 0.0
	defaultDrillPunct    = 0.0
	defaultLogLevel      = "info"
)

const defaultPunctSet = ".,!?;:\"'()-"

var (
	practiceCategory  string
	practiceCorpus    string
	practiceNoLibrary bool

	drillWordList string
	drillLang     string
	drillWords    int
	drillPassages int
	drillCaps     float64
	drillPunct    float64
	drillPunctSet string

	logLevel string
	logFile  string
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// flagNames maps validated config fields to the flags that set them.
var flagNames = map[string]string{
	"DrillWords":    "--drill-words",
	"DrillPassages": "--drill-passages",
	"DrillCaps":     "--drill-caps",
	"DrillPunct":    "--drill-punct",
	"LogLevel":      "--log-level",
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerpunk",
		Short:         "Terminal typing-speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceCategory, "category", "", "initial category (default: random)")
	flags.StringVar(&practiceCorpus, "corpus", "", "extra JSON passage file")
	flags.BoolVar(&practiceNoLibrary, "no-library", false, "skip passages imported into the library")
	flags.StringVar(&drillWordList, "drill-wordlist", "", "word list for generated drill passages")
	flags.StringVar(&drillLang, "drill-lang", defaultDrillLang, "word list language filter")
	flags.IntVar(&drillWords, "drill-words", defaultDrillWords, "words per drill passage")
	flags.IntVar(&drillPassages, "drill-passages", defaultDrillPassages, "number of drill passages")
	flags.Float64Var(&drillCaps, "drill-caps", defaultDrillCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&drillPunct, "drill-punct", defaultDrillPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&drillPunctSet, "drill-punct-set", defaultPunctSet, "punctuation set")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "log file (default: $XDG_STATE_HOME/typerpunk/typerpunk.log)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typerpunk needs an interactive terminal")
	}

	logger, closer, err := logging.New(logging.Config{Level: levelOrInfo(cfg.LogLevel), FilePath: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	gen := generator.New()
	passages, err := loadPassages(cmd.Context(), cfg, gen)
	if err != nil {
		return err
	}
	c := corpus.New(passages)
	if err := checkCategory(c, cfg.Category); err != nil {
		return err
	}
	logger.Info("corpus loaded", "passages", c.Len(), "categories", len(c.Categories()))

	session := engine.New(c, gen, engine.WithCategory(cfg.Category))
	program := tea.NewProgram(tui.NewModel(session, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig merges flags, environment and the config file, in that order
// of precedence, and validates the result.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "category", &practiceCategory, fileCfg.Practice.Category)
	applyStringConfig(cmd, "corpus", &practiceCorpus, fileCfg.Practice.Corpus)
	applyBoolConfig(cmd, "no-library", &practiceNoLibrary, fileCfg.Practice.NoLibrary)
	applyStringConfig(cmd, "drill-wordlist", &drillWordList, fileCfg.Drill.WordList)
	applyStringConfig(cmd, "drill-lang", &drillLang, fileCfg.Drill.Lang)
	applyIntConfig(cmd, "drill-words", &drillWords, fileCfg.Drill.Words)
	applyIntConfig(cmd, "drill-passages", &drillPassages, fileCfg.Drill.Passages)
	applyFloatConfig(cmd, "drill-caps", &drillCaps, fileCfg.Drill.CapsPct)
	applyFloatConfig(cmd, "drill-punct", &drillPunct, fileCfg.Drill.PunctPct)
	applyStringConfig(cmd, "drill-punct-set", &drillPunctSet, fileCfg.Drill.PunctSet)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Category:      strings.TrimSpace(practiceCategory),
		Corpus:        practiceCorpus,
		NoLibrary:     practiceNoLibrary,
		DrillWordList: drillWordList,
		DrillLang:     drillLang,
		DrillWords:    drillWords,
		DrillPassages: drillPassages,
		DrillCaps:     drillCaps,
		DrillPunct:    drillPunct,
		DrillPunctSet: drillPunctSet,
		LogLevel:      strings.ToLower(logLevel),
		LogFile:       logFile,
	}
	if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultLogPath()
	}
	if cfg.DrillWordList == "" {
		cfg.DrillWordList = downloadedWordList(cfg.DrillLang)
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the commented template unless a config exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List passage categories in cycle order",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesCmd,
	}
}

func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	passages, err := loadPassages(cmd.Context(), cfg, generator.New())
	if err != nil {
		return err
	}
	for _, line := range categoryTable(corpus.New(passages)) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func categoryTable(c *corpus.Corpus) []string {
	rows := make([][]string, 0, len(c.Categories())+1)
	for _, name := range c.Categories() {
		rows = append(rows, []string{name, fmt.Sprintf("%d", len(c.Pool(name)))})
	}
	rows = append(rows, []string{"(random)", fmt.Sprintf("%d", c.Len())})
	return stats.FormatTable([]string{"Category", "Passages"}, rows, map[int]bool{1: true})
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON passage file into the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	res, err := importPassages(cmd.Context(), args[0], config.DefaultLibraryPath())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new passages (%d already present), library now holds %d\n",
		res.Added, res.Read-res.Added, res.Held); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// importResult counts passages read from a file, newly added, and held by
// the library afterwards.
type importResult struct {
	Read  int
	Added int
	Held  int
}

func importPassages(ctx context.Context, path, libraryPath string) (importResult, error) {
	passages, err := corpus.LoadFile(path)
	if err != nil {
		return importResult{}, fmt.Errorf("failed to load passages: %w", err)
	}
	st, err := store.Open(libraryPath)
	if err != nil {
		return importResult{}, fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	added, err := st.InsertPassages(ctx, passages)
	if err != nil {
		return importResult{}, fmt.Errorf("failed to store passages: %w", err)
	}
	held, err := st.CountPassages(ctx)
	if err != nil {
		return importResult{}, fmt.Errorf("failed to count library: %w", err)
	}
	return importResult{Read: len(passages), Added: added, Held: held}, nil
}

func checkCategory(c *corpus.Corpus, category string) error {
	if c.Len() == 0 {
		return fmt.Errorf("no passages available: %w", engine.ErrEmptyCorpus)
	}
	if category == "" || c.HasCategory(category) {
		return nil
	}
	return fmt.Errorf("unknown category %q (available: %s)", category, strings.Join(c.Categories(), ", "))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerpunk configuration
# Uncomment a value to enable it. Environment variables (TYPERPUNK_*) override
# config values and CLI flags override both.

[practice]
# category = "poetry"        # Initial category (default: random)
# corpus = "/path/texts.json" # Extra passages, same format as the bundled texts
# no-library = false          # Skip passages added with "typerpunk import"

[drill]
# wordlist = "/path/words.txt" # One word per line; enables drill passages
#                              # (default: list saved by "typerpunk wordlist --lang <lang>")
# lang = %q                   # Word filter language
# words = %d                   # Words per drill passage
# passages = %d                # Number of drill passages
# caps = %.2f                 # Probability of capitalized first letter (0-1)
# punct = %.2f                # Punctuation probability per word (0-1)
# punct-set = %q

[log]
# level = %q                # debug, info, warn, error
# file = "/path/typerpunk.log"
`,
		defaultDrillLang,
		defaultDrillWords,
		defaultDrillPassages,
		defaultDrillCaps,
		defaultDrillPunct,
		defaultPunctSet,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		flag := flagNames[fe.Field()]
		if flag == "" {
			flag = fe.Field()
		}
		switch fe.Tag() {
		case "gte":
			if fe.Kind() == reflect.Int {
				msgs = append(msgs, fmt.Sprintf("%s must be >= 0", flag))
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s must be between 0 and 1", flag))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be between 0 and 1", flag))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", flag, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", flag))
		}
	}
	return errors.New(strings.Join(msgs, "\n"))
}

func levelOrInfo(name string) logging.Level {
	level, err := logging.ParseLevel(name)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
