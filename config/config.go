package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/kova98/lueur/enums"
)

const (
	DefaultConfigFile = "config.json"

	// EnvPrefix marks environment variables that override file values,
	// e.g. LUEUR_BUTTONDOWN_API_KEY overrides buttondown_api_key.
	EnvPrefix = "LUEUR_"
)

type AppConfig struct {
	ButtondownAPIKey string `koanf:"buttondown_api_key" validate:"required"`
	NewsletterID     string `koanf:"newsletter_id"`
	SendTime         string `koanf:"send_time" validate:"datetime=15:04"`
	Timezone         string `koanf:"timezone" validate:"timezone"`
	UTMSource        string `koanf:"utm_source"`
	UTMMedium        string `koanf:"utm_medium"`
	UTMCampaign      string `koanf:"utm_campaign"`
	TipLink          string `koanf:"tip_link"`
	ReportsCSV       string `koanf:"reports_csv" validate:"required"`
	SiteURL          string `koanf:"site_url"`

	QuotesSource   string `koanf:"quotes_source" validate:"required"`
	ProductsSource string `koanf:"products_source" validate:"required"`
	TemplatePath   string `koanf:"template_path" validate:"required"`
	StateFile      string `koanf:"state_file" validate:"required"`
	APIBaseURL     string `koanf:"api_base_url" validate:"required,url"`
	RecipientToken string `koanf:"recipient_token"`
	ProxyURL       string `koanf:"proxy_url"`
	DatabaseURL    string `koanf:"database_url"`
	PushgatewayURL string `koanf:"pushgateway_url"`
	LogLevelName   string `koanf:"log_level"`

	// Derived after loading.
	BaseDir    string         `koanf:"-"`
	Location   *time.Location `koanf:"-"`
	SendHour   int            `koanf:"-"`
	SendMinute int            `koanf:"-"`
	LogLevel   slog.Level     `koanf:"-"`
}

func defaultConfig() AppConfig {
	return AppConfig{
		SendTime:       "08:00",
		Timezone:       "Europe/Paris",
		UTMSource:      "lueurquotidienne",
		UTMMedium:      "email",
		UTMCampaign:    "daily_quote",
		ReportsCSV:     "analytics_report.csv",
		SiteURL:        "https://lueur-quotidienne.netlify.app",
		QuotesSource:   "assets/data/quotes.json",
		ProductsSource: "assets/data/products.json",
		TemplatePath:   "email_template.html",
		StateFile:      ".last_email_id",
		APIBaseURL:     "https://api.buttondown.com/v1",
		RecipientToken: "{{ subscriber.name }}",
		LogLevelName:   "INFO",
	}
}

// Load reads the config file at path, layering it over the defaults and under
// LUEUR_ environment variables. The returned value is never mutated afterwards.
func Load(path string) (AppConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return AppConfig{}, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return AppConfig{}, fmt.Errorf("load config file %s: %w", path, err)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return AppConfig{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}

	if err := cfg.derive(filepath.Dir(path)); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}

func (c *AppConfig) derive(baseDir string) error {
	c.BaseDir = baseDir

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	// Already checked against 15:04 by the validator.
	sendAt, _ := time.Parse("15:04", c.SendTime)
	c.SendHour, c.SendMinute = sendAt.Hour(), sendAt.Minute()

	c.LogLevel, err = parseLogLevel(c.LogLevelName)
	if err != nil {
		slog.Error("Invalid log_level", "error", err)
		c.LogLevel = slog.LevelInfo
	}

	c.ReportsCSV = c.resolve(c.ReportsCSV)
	c.TemplatePath = c.resolve(c.TemplatePath)
	c.StateFile = c.resolve(c.StateFile)
	c.QuotesSource = c.resolve(c.QuotesSource)
	c.ProductsSource = c.resolve(c.ProductsSource)

	return nil
}

// resolve anchors a relative local path at the config file's directory.
// URLs and absolute paths are returned unchanged.
func (c AppConfig) resolve(path string) string {
	if path == "" || IsRemote(path) || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

func (c AppConfig) Backend() enums.StorageBackend {
	if c.DatabaseURL != "" {
		return enums.StorageBackendPostgres
	}
	return enums.StorageBackendFile
}

// IsRemote reports whether ref should be fetched over HTTP rather than read from disk.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

var validate = func() func(AppConfig) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return func(cfg AppConfig) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}

		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
}()

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be HH:MM, got %q", fe.Field(), fe.Value())
	case "timezone":
		return fmt.Sprintf("%s is not a known IANA timezone: %q", fe.Field(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
