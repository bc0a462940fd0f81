package inits

import (
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/CorrelAid/function_relay/functions"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "FUNCTIONS_BASE_URL",
	"UPLOAD_BLOB_URL", "UPLOAD_BLOB_CODE", "STORE_TABLE_URL", "STORE_TABLE_CODE",
	"PROCESS_QUEUE_URL", "PROCESS_QUEUE_CODE", "UPLOAD_FILE_URL", "UPLOAD_FILE_CODE",
	"IMAGE_CONTAINER", "CONTRACT_SHARE", "AZURE_STORAGE_CONNECTION_STRING",
	"REMOTE_TIMEOUT", "ALLOWED_DOMAINS", "MAX_REQUESTS_PER_MINUTE", "MAX_MULTIPART_MEMORY",
	"RELAY_RETENTION", "TURNSTILE_SECRET_KEY", "TURNSTILE_SITE_KEY", "TEST_TOKEN",
}

// clearEnv blanks every variable LoadConfig reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUNCTIONS_BASE_URL", "https://relay.azurewebsites.net/api/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Release() {
		t.Error("expected debug mode")
	}
	if cfg.ImageContainer != "product-images" || cfg.ContractShare != "contracts-logs" {
		t.Errorf("locations = %q, %q", cfg.ImageContainer, cfg.ContractShare)
	}
	if cfg.UploadBlob.URL != "https://relay.azurewebsites.net/api/UploadBlob" {
		t.Errorf("UploadBlob.URL = %q", cfg.UploadBlob.URL)
	}
	if cfg.ProcessQueueMessage.URL != "https://relay.azurewebsites.net/api/ProcessQueueMessage" {
		t.Errorf("ProcessQueueMessage.URL = %q", cfg.ProcessQueueMessage.URL)
	}
	if cfg.RemoteTimeout != 0 {
		t.Errorf("RemoteTimeout = %v, want none", cfg.RemoteTimeout)
	}
	if cfg.RelayRetention != 24*time.Hour {
		t.Errorf("RelayRetention = %v", cfg.RelayRetention)
	}
	if cfg.MaxRequestsPerMinute != 60 {
		t.Errorf("MaxRequestsPerMinute = %v", cfg.MaxRequestsPerMinute)
	}
	if cfg.MaxMultipartMemory != 8<<20 {
		t.Errorf("MaxMultipartMemory = %d", cfg.MaxMultipartMemory)
	}
	if cfg.AllowedDomains != nil {
		t.Errorf("AllowedDomains = %v", cfg.AllowedDomains)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUNCTIONS_BASE_URL", "https://relay.azurewebsites.net/api")
	t.Setenv("UPLOAD_FILE_URL", "https://files.example.com/api/UploadFile?code=abc")
	t.Setenv("STORE_TABLE_CODE", "table-code")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("REMOTE_TIMEOUT", "30s")
	t.Setenv("ALLOWED_DOMAINS", " relay.example.com, ,localhost:8080 ")
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "5")
	t.Setenv("RELAY_RETENTION", "72h")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.Release() {
		t.Error("expected release mode")
	}
	if cfg.UploadFile.URL != "https://files.example.com/api/UploadFile?code=abc" {
		t.Errorf("UploadFile.URL = %q", cfg.UploadFile.URL)
	}
	if cfg.StoreTableInfo.Code != "table-code" {
		t.Errorf("StoreTableInfo.Code = %q", cfg.StoreTableInfo.Code)
	}
	if cfg.RemoteTimeout != 30*time.Second {
		t.Errorf("RemoteTimeout = %v", cfg.RemoteTimeout)
	}
	if want := []string{"relay.example.com", "localhost:8080"}; !reflect.DeepEqual(cfg.AllowedDomains, want) {
		t.Errorf("AllowedDomains = %v, want %v", cfg.AllowedDomains, want)
	}
	if cfg.MaxRequestsPerMinute != 5 {
		t.Errorf("MaxRequestsPerMinute = %v", cfg.MaxRequestsPerMinute)
	}
	if cfg.RelayRetention != 72*time.Hour {
		t.Errorf("RelayRetention = %v", cfg.RelayRetention)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{}},
		{"partial overrides", map[string]string{"UPLOAD_BLOB_URL": "https://x.example.com/UploadBlob"}},
		{"bad timeout", map[string]string{"FUNCTIONS_BASE_URL": "https://x", "REMOTE_TIMEOUT": "soon"}},
		{"bad rate", map[string]string{"FUNCTIONS_BASE_URL": "https://x", "MAX_REQUESTS_PER_MINUTE": "many"}},
		{"zero rate", map[string]string{"FUNCTIONS_BASE_URL": "https://x", "MAX_REQUESTS_PER_MINUTE": "0"}},
		{"bad retention", map[string]string{"FUNCTIONS_BASE_URL": "https://x", "RELAY_RETENTION": "1 day"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestServicesInitUsesStorageWhenConfigured(t *testing.T) {
	cfg := &Config{
		UploadBlob:          Endpoint{URL: "https://x.example.com/api/UploadBlob"},
		StoreTableInfo:      Endpoint{URL: "https://x.example.com/api/StoreTableInfo"},
		ProcessQueueMessage: Endpoint{URL: "https://x.example.com/api/ProcessQueueMessage"},
		UploadFile:          Endpoint{URL: "https://x.example.com/api/UploadFile"},
		StorageConnection:   "DefaultEndpointsProtocol=https;AccountName=relay;AccountKey=a2V5;EndpointSuffix=core.windows.net",
	}

	s, err := ServicesInit(cfg, &http.Client{})
	if err != nil {
		t.Fatalf("ServicesInit: %v", err)
	}
	if _, ok := s.Blobs.(*functions.StorageBlobService); !ok {
		t.Errorf("Blobs = %T, want *functions.StorageBlobService", s.Blobs)
	}
	if _, ok := s.Files.(*functions.FileFunction); !ok {
		t.Errorf("Files = %T, want *functions.FileFunction", s.Files)
	}
}

func TestServicesInitDefaultsToFunctions(t *testing.T) {
	cfg := &Config{
		UploadBlob:          Endpoint{URL: "https://x.example.com/api/UploadBlob"},
		StoreTableInfo:      Endpoint{URL: "https://x.example.com/api/StoreTableInfo"},
		ProcessQueueMessage: Endpoint{URL: "https://x.example.com/api/ProcessQueueMessage"},
		UploadFile:          Endpoint{URL: "https://x.example.com/api/UploadFile"},
	}

	s, err := ServicesInit(cfg, &http.Client{})
	if err != nil {
		t.Fatalf("ServicesInit: %v", err)
	}
	if _, ok := s.Blobs.(*functions.BlobFunction); !ok {
		t.Errorf("Blobs = %T, want *functions.BlobFunction", s.Blobs)
	}
	if _, err := ServicesInit(cfg, nil); err == nil {
		t.Error("expected error for nil http client")
	}
}

func TestServicesInitRejectsBadURL(t *testing.T) {
	cfg := &Config{
		UploadBlob:          Endpoint{URL: "https://x.example.com/api/UploadBlob"},
		StoreTableInfo:      Endpoint{URL: "not a url"},
		ProcessQueueMessage: Endpoint{URL: "https://x.example.com/api/ProcessQueueMessage"},
		UploadFile:          Endpoint{URL: "https://x.example.com/api/UploadFile"},
	}
	if _, err := ServicesInit(cfg, &http.Client{}); err == nil {
		t.Fatal("expected error")
	}
}
