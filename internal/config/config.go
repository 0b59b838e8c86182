package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TODOAPP_SERVER_ADDR.
const EnvPrefix = "TODOAPP"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Mock   MockConfig   `mapstructure:"mock"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Client ClientConfig `mapstructure:"client"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// MockConfig holds the artificial latencies of the mock endpoints.
type MockConfig struct {
	LoginDelay time.Duration `mapstructure:"login_delay"`
	UsersDelay time.Duration `mapstructure:"users_delay"`
	UserDelay  time.Duration `mapstructure:"user_delay"`
}

type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// SessionKey is a hex encoded cookie signing key. Empty means a random
	// key per process, so sessions do not survive a restart.
	SessionKey string `mapstructure:"session_key"`
	// BindSession makes a successful login set the guard's auth flag.
	BindSession bool `mapstructure:"bind_session"`
}

type ClientConfig struct {
	Server string `mapstructure:"server"`
	CartDB string `mapstructure:"cart_db"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			StaticDir:       "public",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Mock: MockConfig{
			LoginDelay: time.Second,
			UsersDelay: time.Second,
			UserDelay:  250 * time.Millisecond,
		},
		Auth: AuthConfig{
			Username: "admin",
			Password: "password",
		},
		Client: ClientConfig{
			Server: "http://localhost:3000",
			CartDB: filepath.Join(utils.GetDataDir(), "cart.db"),
		},
	}
}

// Load reads .env, an optional config file and TODOAPP_* environment
// variables, in increasing order of precedence. path may be empty, in which
// case a "config" file in the project root is used if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load(filepath.Join(utils.GetProjectRoot(), ".env"))

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(utils.GetProjectRoot())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr must not be empty")
	}
	if c.Auth.Username == "" {
		return errors.New("config: auth.username must not be empty")
	}
	if c.Mock.LoginDelay < 0 || c.Mock.UsersDelay < 0 || c.Mock.UserDelay < 0 {
		return errors.New("config: mock delays must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("mock.login_delay", d.Mock.LoginDelay)
	v.SetDefault("mock.users_delay", d.Mock.UsersDelay)
	v.SetDefault("mock.user_delay", d.Mock.UserDelay)
	v.SetDefault("auth.username", d.Auth.Username)
	v.SetDefault("auth.password", d.Auth.Password)
	v.SetDefault("auth.session_key", d.Auth.SessionKey)
	v.SetDefault("auth.bind_session", d.Auth.BindSession)
	v.SetDefault("client.server", d.Client.Server)
	v.SetDefault("client.cart_db", d.Client.CartDB)
}
