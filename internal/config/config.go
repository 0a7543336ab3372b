package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

type CalendarConfig struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Timezone   string        `mapstructure:"timezone"`
	Currencies string        `mapstructure:"currencies"`
}

type ScheduleConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LeadTime     time.Duration `mapstructure:"lead_time"`
	MisfireGrace time.Duration `mapstructure:"misfire_grace"`
}

// TrackedCurrencies splits the comma-separated currency list and uppercases
// each code. An explicitly empty list is honored: nothing gets scheduled.
func (c CalendarConfig) TrackedCurrencies() []string {
	var out []string
	for _, raw := range strings.Split(c.Currencies, ",") {
		if code := strings.ToUpper(strings.TrimSpace(raw)); code != "" {
			out = append(out, code)
		}
	}
	return out
}

// Location resolves the configured timezone, falling back to UTC rather than
// failing: a bad zone name must never prevent startup.
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

// Validate reports fatal configuration errors. Only missing notification
// credentials and a disabled fetch timeout are fatal; everything else has a
// usable default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		return fmt.Errorf("telegram.bot_token is required (set FA_TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required (set FA_TELEGRAM_CHAT_ID)")
	}
	if c.Calendar.Timeout <= 0 {
		return fmt.Errorf("calendar.timeout must be positive; a fetch without a timeout can stall polling forever")
	}
	return nil
}

// Load builds the configuration from the environment (FA_ prefix, dots
// become underscores), layered over the YAML file at path when one is given.
// envOnly skips the file read even with a path set; environment values win
// over file values either way.
func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("calendar.url", "https://www.forexfactory.com/calendar")
	v.SetDefault("calendar.timeout", "30s")
	v.SetDefault("calendar.timezone", "America/New_York")
	v.SetDefault("calendar.currencies", "USD,GBP,EUR")
	v.SetDefault("schedule.poll_interval", "10m")
	v.SetDefault("schedule.lead_time", "15m")
	v.SetDefault("schedule.misfire_grace", "1m")

	if path != "" && !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
