package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	ReferenceDate    string        `env:"REFERENCE_DATE"`
	SeedFile         string        `env:"SEED_FILE"`
	PostgresDSN      string        `env:"POSTGRES_DSN"`
	PostgresMaxConns int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	UploadMaxBytes   int64         `env:"UPLOAD_MAX_BYTES" envDefault:"20971520"`
	AnalysisDelay    time.Duration `env:"ANALYSIS_DELAY" envDefault:"2500ms"`
	JWTSecret        string        `env:"JWT_SECRET"`
	Fetch            Fetch
	Blob             Blob
	AI               AI
	Mailer           Mailer
	Kafka            Kafka
	Jobs             Jobs
}

// Fetch configures downloads of permit documents stored behind remote URLs.
type Fetch struct {
	RetryMax     int      `env:"FETCH_RETRY_MAX" envDefault:"3"`
	AllowedHosts []string `env:"FETCH_ALLOWED_HOSTS"`
	AllowPrivate bool     `env:"FETCH_ALLOW_PRIVATE"`
	MaxBytes     int64    `env:"FETCH_MAX_BYTES" envDefault:"67108864"`
}

type Blob struct {
	Driver    string `env:"BLOB_DRIVER" envDefault:"memory"`
	Bucket    string `env:"BLOB_S3_BUCKET"`
	Region    string `env:"BLOB_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"BLOB_S3_ENDPOINT"`
	PathStyle bool   `env:"BLOB_S3_PATH_STYLE"`
}

type AI struct {
	APIKey          string        `env:"GEMINI_API_KEY"`
	Model           string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL         string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Temperature     float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	Timeout         time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`
	ContextMaxBytes int           `env:"AI_CONTEXT_MAX_BYTES" envDefault:"65536"`
	MaxSessions     int           `env:"AI_MAX_SESSIONS" envDefault:"1000"`
	SessionTTL      time.Duration `env:"AI_SESSION_TTL" envDefault:"24h"`
}

type Mailer struct {
	Host     string   `env:"MAILER_HOST"`
	Port     int      `env:"MAILER_PORT" envDefault:"587"`
	Username string   `env:"MAILER_USERNAME"`
	Password string   `env:"MAILER_PASSWORD"`
	From     string   `env:"MAILER_FROM"`
	To       []string `env:"MAILER_TO"`
}

type Kafka struct {
	Brokers           []string `env:"KAFKA_BROKERS"`
	ConsumerID        string   `env:"KAFKA_CONSUMER_ID" envDefault:"compliance"`
	EventsTopic       string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"compliance.events"`
	NotificationTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"notification"`
	EvidenceTopic     string   `env:"KAFKA_EVIDENCE_TOPIC" envDefault:"compliance.evidence"`
}

type Jobs struct {
	WeeklyDigestInterval  time.Duration `env:"JOB_WEEKLY_DIGEST_INTERVAL" envDefault:"168h"`
	RemindersInterval     time.Duration `env:"JOB_REMINDERS_INTERVAL" envDefault:"24h"`
	StatusRefreshInterval time.Duration `env:"JOB_STATUS_REFRESH_INTERVAL" envDefault:"1h"`
	StatusRefreshEnabled  bool          `env:"JOB_STATUS_REFRESH_ENABLED"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

func (m Mailer) Enabled() bool {
	return m.Host != ""
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
