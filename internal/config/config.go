// Package config loads hanzi settings from defaults, a YAML file, HANZI_*
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/hanzi/internal/llm"
)

// EnvPrefix marks environment variables read by Load. A double underscore
// separates nesting levels: HANZI_GRADING__FAIL_OPEN sets grading.fail_open.
const EnvPrefix = "HANZI_"

type Config struct {
	DB       string     `koanf:"db"`
	LogLevel string     `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string     `koanf:"log_file"`
	Practice Practice   `koanf:"practice"`
	Grading  Grading    `koanf:"grading"`
	LLM      llm.Config `koanf:"llm"`
	Decks    Decks      `koanf:"decks"`
}

type Practice struct {
	Mode         string `koanf:"mode" validate:"oneof=deck active"`
	QueueSize    int    `koanf:"queue_size" validate:"gte=1,lte=500"`
	SelectedDeck string `koanf:"selected_deck"`
	// SentenceRetries is how many times a sentence violating the allowed
	// character set is regenerated before it is accepted anyway.
	SentenceRetries int `koanf:"sentence_retries" validate:"gte=0,lte=10"`
}

// Grading configures the remote stroke classifier and recognizer.
type Grading struct {
	ClassifierURL     string        `koanf:"classifier_url" validate:"omitempty,url"`
	RecognizerURL     string        `koanf:"recognizer_url" validate:"omitempty,url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"gte=1"`
	MaxRetries        int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	// FailOpen counts an attempt as correct when the grader cannot answer.
	FailOpen bool `koanf:"fail_open"`
}

// Decks lists git repositories that publish deck documents.
type Decks struct {
	Sources  []string `koanf:"sources" validate:"dive,required"`
	CacheDir string   `koanf:"cache_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Practice: Practice{
			Mode:            "deck",
			QueueSize:       20,
			SentenceRetries: 2,
		},
		Grading: Grading{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             2,
			MaxRetries:        2,
			FailOpen:          true,
		},
		LLM: llm.DefaultConfig(),
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// DefaultPath returns $XDG_CONFIG_HOME/hanzi/config.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "hanzi", "config.yaml"), nil
}

// flagKeys maps flag names to config keys. Other flags land under their
// own names, which match no field.
var flagKeys = map[string]string{
	"db":           "db",
	"log-level":    "log_level",
	"llm-provider": "llm.provider",
	"fail-open":    "grading.fail_open",
	"queue-size":   "practice.queue_size",
}

// BindFlags registers the flags Load understands on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to config file")
	fs.String("db", d.DB, "path to the SQLite database")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("llm-provider", d.LLM.Provider, "sentence provider (anthropic, openai, gemini, openrouter, mock)")
	fs.Bool("fail-open", d.Grading.FailOpen, "count ungraded attempts as correct")
	fs.Int("queue-size", d.Practice.QueueSize, "characters per active-practice queue")
}

// Load builds the configuration. An empty path means DefaultPath, which
// may be absent; an explicit path must exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				key = "flag." + f.Name
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns HANZI_PRACTICE__QUEUE_SIZE into practice.queue_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and returns a single error listing
// every violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
