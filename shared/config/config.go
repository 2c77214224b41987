package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	APIBaseURL       string        `yaml:"api_base_url" validate:"required"`
	FrontendOrigin   string        `yaml:"frontend_origin" validate:"required"`
	JwtTTL           time.Duration `yaml:"jwt_ttl" validate:"required"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	SignupPerIPEvery time.Duration `yaml:"signup_per_ip_every"` // one signup per IP in this window, 0 disables
	TrustedProxies   []string      `yaml:"trusted_proxies"`     // peers whose X-Forwarded-For is believed
	NickMaxLen       int           `yaml:"nick_max_len" validate:"required"`
	NameMaxLen       int           `yaml:"name_max_len" validate:"required"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key" validate:"required"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}

	if err := validator.New().Struct(output); err != nil {
		panic("config validation failed: " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// Frontend deployments have no database and may ship only public.yaml; use MustLoadPublic there.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{Public: public, Private: private}
}

func MustLoadPublic(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	return &Config{Public: public}
}
