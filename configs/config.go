package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"storefront-bot/pkg/validator"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Log      `mapstructure:"log"`
	Moltin   `mapstructure:"moltin"`
	Line     `mapstructure:"line"`
	Store    `mapstructure:"store"`
	Redis    `mapstructure:"redis"`
	Postgres `mapstructure:"postgres"`
	Bot      `mapstructure:"bot"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port" validate:"required"`
}

// Log struct
type Log struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// Moltin struct - commerce backend settings. Timeout and TokenSkew are in seconds.
type Moltin struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	ClientID  string `mapstructure:"client_id" validate:"required"`
	Timeout   int    `mapstructure:"timeout" validate:"gte=0"`
	TokenSkew int    `mapstructure:"token_skew" validate:"gte=0"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret" validate:"required"`
	ChannelToken  string `mapstructure:"channel_token" validate:"required"`
	AdminUserID   string `mapstructure:"admin_user_id"`
}

// Store struct - per-user conversation state storage. Timeout is in minutes.
type Store struct {
	Driver  string `mapstructure:"driver" validate:"required,oneof=memory redis postgres"`
	Timeout int    `mapstructure:"timeout" validate:"gte=0"`
}

// Redis struct
type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Bot struct
type Bot struct {
	MaxButtonsInRow int `mapstructure:"max_buttons_in_row" validate:"gte=0,lte=5"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	return validator.New().ValidateStruct(c)
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
	if env != "" {
		config.App.Env = env
	}
}

func setDefaults() {
	viper.SetDefault("app.port", "9089")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("moltin.base_url", "https://api.moltin.com")
	viper.SetDefault("moltin.timeout", 15)
	viper.SetDefault("moltin.token_skew", 10)
	viper.SetDefault("store.driver", "memory")
	viper.SetDefault("store.timeout", 60)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("bot.max_buttons_in_row", 5)
}
