// Package config holds the service configuration and its defaults.
package config

// Config is the process configuration. Keys are flat koanf tags, so the env var
// TUKERANK_MONGODB_URI maps onto MongoURI.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StoreDriver selects the document store: "mongo" or "memory".
	StoreDriver string `koanf:"store_driver"`

	MongoURI            string `koanf:"mongodb_uri"`
	DBName              string `koanf:"db_name"`
	UsersCollection     string `koanf:"users_collection"`
	FeedbacksCollection string `koanf:"feedbacks_collection"`

	// SeedUsers are created with the default rating when StoreDriver is "memory".
	SeedUsers []string `koanf:"seed_users"`

	// ClassifierURL is the model-serving endpoint that scores review text.
	ClassifierURL       string `koanf:"classifier_url"`
	ClassifierToken     string `koanf:"classifier_token"`
	ClassifierTimeoutMS int    `koanf:"classifier_timeout_ms"`

	// MaxInputRunes bounds the text handed to the classifier; longer input is truncated.
	MaxInputRunes int `koanf:"max_input_runes"`

	// RatingRetries caps compare-and-set attempts when a rating update races.
	RatingRetries int `koanf:"rating_retries"`

	CORSOrigins []string `koanf:"cors_origins"`

	// Negative feedback alerts. Empty ResendAPIKey logs alerts instead of mailing them.
	ResendAPIKey string `koanf:"resend_api_key"`
	AlertFrom    string `koanf:"alert_from"`
	AlertTo      string `koanf:"alert_to"`
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:                ":8080",
		LogLevel:            "info",
		StoreDriver:         DriverMongo,
		DBName:              "tukerank",
		UsersCollection:     "users",
		FeedbacksCollection: "feedbacks",
		ClassifierTimeoutMS: 10_000,
		MaxInputRunes:       512,
		RatingRetries:       5,
		CORSOrigins:         []string{"*"},
	}
}
