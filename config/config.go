package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	API     APIConfig
	Upload  UploadConfig
	Form    FormConfig
	FakeAPI FakeAPIConfig
}

type ServerConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type APIConfig struct {
	BaseURL string
	Prefix  string // every endpoint is proxied under this path
	Timeout time.Duration
}

type UploadConfig struct {
	Field           string
	ProgressFloor   int
	ProgressStep    int
	ProgressCeiling int // must stay below 100
	ProgressTick    time.Duration
}

type FormConfig struct {
	ProductSuccessDelay  time.Duration
	CategorySuccessDelay time.Duration
	AdminSuccessDelay    time.Duration
}

type FakeAPIConfig struct {
	Addr      string
	URLPrefix string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:6001"),
			Prefix:  getEnv("API_PREFIX", "/api"),
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Upload: UploadConfig{
			Field:           getEnv("UPLOAD_FIELD", "image"),
			ProgressFloor:   getEnvInt("UPLOAD_PROGRESS_FLOOR", 10),
			ProgressStep:    getEnvInt("UPLOAD_PROGRESS_STEP", 10),
			ProgressCeiling: getEnvInt("UPLOAD_PROGRESS_CEILING", 90),
			ProgressTick:    getEnvDuration("UPLOAD_PROGRESS_TICK", 300*time.Millisecond),
		},
		Form: FormConfig{
			ProductSuccessDelay:  getEnvDuration("FORM_PRODUCT_SUCCESS_DELAY", 1500*time.Millisecond),
			CategorySuccessDelay: getEnvDuration("FORM_CATEGORY_SUCCESS_DELAY", time.Second),
			AdminSuccessDelay:    getEnvDuration("FORM_ADMIN_SUCCESS_DELAY", 0),
		},
		FakeAPI: FakeAPIConfig{
			Addr:      getEnv("FAKEAPI_ADDR", ":6001"),
			URLPrefix: getEnv("FAKEAPI_URL_PREFIX", "http://localhost:6001/uploads"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("1.5s") or plain milliseconds ("1500").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
