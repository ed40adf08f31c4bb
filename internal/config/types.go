package config

import "time"

// Config represents the complete wabridge configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Listen   string         `yaml:"listen"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	Media    MediaConfig    `yaml:"media"`
	Chat     ChatConfig     `yaml:"chat"`
	Transact TransactConfig `yaml:"transact"`
	State    StateConfig    `yaml:"state"`
	API      APIConfig      `yaml:"api,omitempty"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name      string        `yaml:"name"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	DedupeTTL time.Duration `yaml:"dedupe_ttl"`
}

// WhatsAppConfig defines credentials and endpoints for the WhatsApp
// Business Platform (Meta Graph API).
type WhatsAppConfig struct {
	// VerifyToken is the pre-shared token for the GET handshake.
	VerifyToken string `yaml:"verify_token"`

	// AppSecret is the HMAC key for delivery signature verification.
	AppSecret string `yaml:"app_secret"`

	// AccessToken is the bearer credential for Graph API calls
	// (media metadata, media download, outbound sends).
	AccessToken string `yaml:"access_token"`

	// PhoneNumberID identifies the business phone number for outbound sends.
	PhoneNumberID string `yaml:"phone_number_id"`

	// GraphBaseURL is the Graph API base, e.g. "https://graph.facebook.com/v18.0".
	GraphBaseURL string `yaml:"graph_base_url"`

	// MaxBodySize is the maximum allowed delivery body size (e.g. "1MB").
	MaxBodySize string `yaml:"max_body_size,omitempty"`

	// MetadataTimeout bounds the media metadata fetch.
	MetadataTimeout time.Duration `yaml:"metadata_timeout,omitempty"`

	// DownloadTimeout bounds the media binary fetch.
	DownloadTimeout time.Duration `yaml:"download_timeout,omitempty"`
}

// MediaConfig defines local media storage settings.
type MediaConfig struct {
	// StoragePath is the base directory for downloaded media.
	// Empty disables saving media to disk.
	StoragePath string `yaml:"storage_path"`
}

// ChatConfig defines the downstream conversational API.
type ChatConfig struct {
	BaseURL        string        `yaml:"base_url"`
	AccessToken    string        `yaml:"access_token"`
	ConversationID string        `yaml:"conversation_id"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// TransactConfig defines the downstream document-processing API.
type TransactConfig struct {
	BaseURL       string        `yaml:"base_url"`
	AccessToken   string        `yaml:"access_token"`
	UploadTimeout time.Duration `yaml:"upload_timeout,omitempty"`
}

// StateConfig defines message log storage settings.
type StateConfig struct {
	// Path is the SQLite database path. Empty disables the message log.
	Path string `yaml:"path"`
}

// APIConfig defines settings for the operational endpoints (/events, /status).
type APIConfig struct {
	// AuthToken is the bearer token required for /events and /status.
	// Empty disables both endpoints.
	AuthToken string `yaml:"auth_token"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:      "wabridge",
			LogLevel:  "info",
			LogFormat: "json",
			DedupeTTL: time.Hour,
		},
		Listen: "127.0.0.1:8080",
		WhatsApp: WhatsAppConfig{
			GraphBaseURL:    "https://graph.facebook.com/v18.0",
			MetadataTimeout: 10 * time.Second,
			DownloadTimeout: 30 * time.Second,
		},
		Chat: ChatConfig{
			Timeout: 30 * time.Second,
		},
		Transact: TransactConfig{
			UploadTimeout: 60 * time.Second,
		},
	}
}
