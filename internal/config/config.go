package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AuthTTL   string `yaml:"auth_ttl"`
	VerifyTTL string `yaml:"verify_ttl"`
	ResetTTL  string `yaml:"reset_ttl"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type CaptchaConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Secret    string  `yaml:"secret"`
	VerifyURL string  `yaml:"verify_url"`
	Threshold float64 `yaml:"threshold"`
	Timeout   string  `yaml:"timeout"`
}

type MailConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	From         string `yaml:"from"`
	TLS          bool   `yaml:"tls"`
	Timeout      string `yaml:"timeout"`
	ResendWindow string `yaml:"resend_window"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type CasbinConfig struct {
	ModelPath string     `yaml:"model_path"`
	Policies  [][]string `yaml:"policies"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Password PasswordConfig `yaml:"password"`
	Captcha  CaptchaConfig  `yaml:"captcha"`
	Mail     MailConfig     `yaml:"mail"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port    string
	GinMode string
	BaseURL string
	Log     LogConfig

	DatabaseDriver string
	DSN            string
	MongoURI       string
	MongoDatabase  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AuthTTL   time.Duration
	VerifyTTL time.Duration
	ResetTTL  time.Duration

	BcryptCost int

	CaptchaEnabled   bool
	CaptchaSecret    string
	CaptchaURL       string
	CaptchaThreshold float64
	CaptchaTimeout   time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SMTPTLS      bool
	MailTimeout  time.Duration
	ResendWindow time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	CasbinModelPath string
	Policies        [][]string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env (optional), the yaml file named by CONFIG_PATH and the
// environment overrides, then validates the result.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := env("CONFIG_PATH", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err := fromFile(configFile)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// duration parses value, falling back to def when it is empty
func duration(name, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func fromFile(f *ConfigFile) (*Config, error) {
	authTTL, err := duration("JWT auth TTL", f.JWT.AuthTTL, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	verifyTTL, err := duration("JWT verify TTL", f.JWT.VerifyTTL, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	resetTTL, err := duration("JWT reset TTL", f.JWT.ResetTTL, time.Hour)
	if err != nil {
		return nil, err
	}
	captchaTimeout, err := duration("captcha timeout", f.Captcha.Timeout, 5*time.Second)
	if err != nil {
		return nil, err
	}
	mailTimeout, err := duration("mail timeout", f.Mail.Timeout, 30*time.Second)
	if err != nil {
		return nil, err
	}
	resendWindow, err := duration("mail resend window", f.Mail.ResendWindow, time.Minute)
	if err != nil {
		return nil, err
	}

	port := "8080"
	if f.App.Port != 0 {
		port = strconv.Itoa(f.App.Port)
	}
	driver := f.Database.Driver
	if driver == "" {
		driver = DriverMongo
	}
	issuer := f.JWT.Issuer
	if issuer == "" {
		issuer = "blogsvc"
	}

	return &Config{
		Port:             port,
		GinMode:          f.App.GinMode,
		BaseURL:          strings.TrimRight(f.App.BaseURL, "/"),
		Log:              f.Log,
		DatabaseDriver:   driver,
		DSN:              f.Database.DSN,
		MongoURI:         f.Database.MongoURI,
		MongoDatabase:    f.Database.MongoDatabase,
		RedisAddr:        f.Redis.Addr,
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		JWTSecret:        f.JWT.Secret,
		JWTIssuer:        issuer,
		AuthTTL:          authTTL,
		VerifyTTL:        verifyTTL,
		ResetTTL:         resetTTL,
		BcryptCost:       f.Password.BcryptCost,
		CaptchaEnabled:   f.Captcha.Enabled,
		CaptchaSecret:    f.Captcha.Secret,
		CaptchaURL:       f.Captcha.VerifyURL,
		CaptchaThreshold: f.Captcha.Threshold,
		CaptchaTimeout:   captchaTimeout,
		SMTPHost:         f.Mail.Host,
		SMTPPort:         f.Mail.Port,
		SMTPUsername:     f.Mail.Username,
		SMTPPassword:     f.Mail.Password,
		MailFrom:         f.Mail.From,
		SMTPTLS:          f.Mail.TLS,
		MailTimeout:      mailTimeout,
		ResendWindow:     resendWindow,
		KafkaBrokers:     f.Kafka.Brokers,
		KafkaTopic:       f.Kafka.Topic,
		CasbinModelPath:  f.Casbin.ModelPath,
		Policies:         f.Casbin.Policies,
	}, nil
}

// applyEnv lets the environment override secrets and endpoints
func applyEnv(c *Config) {
	c.Port = env("PORT", c.Port)
	c.GinMode = env("GIN_MODE", c.GinMode)
	c.BaseURL = strings.TrimRight(env("APP_BASE_URL", c.BaseURL), "/")
	c.DatabaseDriver = env("DATABASE_DRIVER", c.DatabaseDriver)
	c.DSN = env("DATABASE_DSN", c.DSN)
	c.MongoURI = env("MONGO_URI", c.MongoURI)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = env("REDIS_PASSWORD", c.RedisPassword)
	c.JWTSecret = env("JWT_SECRET", c.JWTSecret)
	c.CaptchaSecret = env("CAPTCHA_SECRET", c.CaptchaSecret)
	c.SMTPPassword = env("SMTP_PASSWORD", c.SMTPPassword)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.KafkaBrokers = strings.Split(brokers, ",")
	}
	c.Log.Level = env("LOG_LEVEL", c.Log.Level)
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	switch c.DatabaseDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("database.mongo_uri (MONGO_URI) is required for the mongo driver"))
		}
	case DriverPostgres, DriverSQLite:
		if c.DSN == "" {
			errs = append(errs, fmt.Errorf("database.dsn (DATABASE_DSN) is required for the %s driver", c.DatabaseDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}
	if c.CaptchaEnabled && c.CaptchaSecret == "" {
		errs = append(errs, errors.New("captcha.secret (CAPTCHA_SECRET) is required when captcha is enabled"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are configured"))
	}
	for _, p := range c.Policies {
		if len(p) != 3 {
			errs = append(errs, fmt.Errorf("casbin policy %v: expected subject, object, action", p))
		}
	}
	return errors.Join(errs...)
}

// PolicyModel returns the casbin model text, or "" for the built-in model
func (c *Config) PolicyModel() (string, error) {
	if c.CasbinModelPath == "" {
		return "", nil
	}
	bytes, err := os.ReadFile(c.CasbinModelPath)
	if err != nil {
		return "", fmt.Errorf("could not read casbin model at %s: %w", c.CasbinModelPath, err)
	}
	return string(bytes), nil
}
