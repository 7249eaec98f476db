package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/location"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/secret"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Board    BoardConfig    `mapstructure:"board"`
	Location LocationConfig `mapstructure:"location"`
	Discord  DiscordConfig  `mapstructure:"discord"`
}

// ServerConfig for the HTTP surface
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address for http.Server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LogConfig selects the zap preset and level
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig picks where sessions live
type StorageConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig is used when Backend is redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BoardConfig holds the posting rules
type BoardConfig struct {
	MaxDuration           time.Duration `mapstructure:"max_duration"`
	MaxLocationLength     int           `mapstructure:"max_location_length"`
	MaxDescriptionLength  int           `mapstructure:"max_description_length"`
	Vibes                 []string      `mapstructure:"vibes"`
	KeyScheme             string        `mapstructure:"key_scheme"`
	Timezone              string        `mapstructure:"timezone"`
	RecomputeCoordsOnEdit bool          `mapstructure:"recompute_coords_on_edit"`
}

// TimeLocation is the zone form dates and times are read in
func (c *BoardConfig) TimeLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LocationConfig overrides the landmark table
type LocationConfig struct {
	Landmarks []location.Landmark  `mapstructure:"landmarks"`
	Fallback  *location.Coordinates `mapstructure:"fallback"`
}

// DiscordConfig for the bot surface
type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	GuildID       string `mapstructure:"guild_id"`
}

// Load reads configuration from defaults, then the config file, then the environment.
// A .env file in the working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)

	v.SetDefault("board.max_duration", "5h")
	v.SetDefault("board.max_location_length", 50)
	v.SetDefault("board.max_description_length", 100)
	v.SetDefault("board.vibes", []string{})
	v.SetDefault("board.key_scheme", string(secret.SchemePlain))
	v.SetDefault("board.timezone", "")
	v.SetDefault("board.recompute_coords_on_edit", false)

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STUDYBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no file: defaults and environment only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings every surface depends on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("invalid config: storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid config: unknown storage.backend %q", c.Storage.Backend)
	}

	if _, err := secret.New(secret.Scheme(c.Board.KeyScheme)); err != nil {
		return fmt.Errorf("invalid config: board.key_scheme: %w", err)
	}

	if c.Board.MaxDuration < 0 {
		return errors.New("invalid config: board.max_duration cannot be negative")
	}

	if _, err := c.Board.TimeLocation(); err != nil {
		return fmt.Errorf("invalid config: board.timezone: %w", err)
	}

	return nil
}

// ValidateDiscord checks what the bot needs on top of Validate
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return errors.New("invalid config: discord.token is required to run the bot")
	}
	return nil
}
