package inits

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Endpoint addresses one remote function. Code may be empty when the
// function URL already carries it.
type Endpoint struct {
	URL  string
	Code string
}

type Config struct {
	Port    string
	GinMode string

	UploadBlob          Endpoint
	StoreTableInfo      Endpoint
	ProcessQueueMessage Endpoint
	UploadFile          Endpoint

	ImageContainer   string
	ContractShare    string
	StorageConnection string

	RemoteTimeout        time.Duration
	AllowedDomains       []string
	MaxRequestsPerMinute float64
	MaxMultipartMemory   int64
	RelayRetention       time.Duration

	TurnstileSecret  string
	TurnstileSiteKey string
	TestToken        string
}

func (c *Config) Release() bool {
	return c.GinMode == "release"
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up .env.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		GinMode:          getenv("GIN_MODE", "debug"),
		ImageContainer:   getenv("IMAGE_CONTAINER", "product-images"),
		ContractShare:    getenv("CONTRACT_SHARE", "contracts-logs"),
		StorageConnection: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AllowedDomains:   splitList(os.Getenv("ALLOWED_DOMAINS")),
		TurnstileSecret:  os.Getenv("TURNSTILE_SECRET_KEY"),
		TurnstileSiteKey: os.Getenv("TURNSTILE_SITE_KEY"),
		TestToken:        os.Getenv("TEST_TOKEN"),
	}

	base := strings.TrimRight(os.Getenv("FUNCTIONS_BASE_URL"), "/")
	cfg.UploadBlob = endpoint(base, "UploadBlob", "UPLOAD_BLOB")
	cfg.StoreTableInfo = endpoint(base, "StoreTableInfo", "STORE_TABLE")
	cfg.ProcessQueueMessage = endpoint(base, "ProcessQueueMessage", "PROCESS_QUEUE")
	cfg.UploadFile = endpoint(base, "UploadFile", "UPLOAD_FILE")
	for _, e := range []Endpoint{cfg.UploadBlob, cfg.StoreTableInfo, cfg.ProcessQueueMessage, cfg.UploadFile} {
		if e.URL == "" {
			return nil, errors.New("FUNCTIONS_BASE_URL is required")
		}
	}

	var err error
	if cfg.RemoteTimeout, err = durationEnv("REMOTE_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.RelayRetention, err = durationEnv("RELAY_RETENTION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.MaxRequestsPerMinute, err = floatEnv("MAX_REQUESTS_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.MaxRequestsPerMinute <= 0 {
		return nil, fmt.Errorf("MAX_REQUESTS_PER_MINUTE must be positive, got %v", cfg.MaxRequestsPerMinute)
	}
	memory, err := floatEnv("MAX_MULTIPART_MEMORY", 8<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxMultipartMemory = int64(memory)

	return cfg, nil
}

// endpoint derives a function URL from the base URL. <PREFIX>_URL overrides
// it, <PREFIX>_CODE supplies the access code.
func endpoint(base, function, prefix string) Endpoint {
	e := Endpoint{
		URL:  os.Getenv(prefix + "_URL"),
		Code: os.Getenv(prefix + "_CODE"),
	}
	if e.URL == "" && base != "" {
		e.URL = base + "/" + function
	}
	return e
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
