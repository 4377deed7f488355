package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lexdocs/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Upload     UploadConfig
	OCR        OCRConfig
	Classifier ClassifierConfig
	Pipeline   PipelineConfig
	Review     ReviewConfig
	CORS       CORSConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig holds intake validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload size limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// OCRConfig holds Tier-4 OCR settings.
type OCRConfig struct {
	TesseractBin string `mapstructure:"tesseract_bin"`
	PdftoppmBin  string `mapstructure:"pdftoppm_bin"`
	Language     string `mapstructure:"language"`
	MaxPages     int    `mapstructure:"max_pages"`
	DPI          int    `mapstructure:"dpi"`
	Concurrency  int    `mapstructure:"concurrency"`
}

// ClassifierConfig holds Tier-3 AI classifier settings. An empty APIKey
// disables the AI path entirely; the rule-based fallback still runs.
type ClassifierConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MinTextLen  int    `mapstructure:"min_text_len"`
}

// PipelineConfig holds background worker pool settings.
type PipelineConfig struct {
	Workers        int `mapstructure:"workers"`
	QueueSize      int `mapstructure:"queue_size"`
	RunTimeoutSecs int `mapstructure:"run_timeout_secs"`
}

// RunTimeout returns the per-run wall-clock limit.
func (p *PipelineConfig) RunTimeout() time.Duration {
	return time.Duration(p.RunTimeoutSecs) * time.Second
}

// ReviewConfig holds the confidence thresholds for the review policy.
type ReviewConfig struct {
	OCRTrigger            float64 `mapstructure:"ocr_trigger"`
	ClassificationReview  float64 `mapstructure:"classification_review"`
	OCRReview             float64 `mapstructure:"ocr_review"`
	RuleConfidenceCeiling float64 `mapstructure:"rule_confidence_ceiling"`
}

// Policy builds the domain review policy from configured thresholds.
func (r *ReviewConfig) Policy() domain.ReviewPolicy {
	return domain.ReviewPolicy{
		OCRTrigger:            r.OCRTrigger,
		ClassificationReview:  r.ClassificationReview,
		OCRReview:             r.OCRReview,
		RuleConfidenceCeiling: r.RuleConfidenceCeiling,
	}
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LEXDOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEXDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lexdocs")
	v.SetDefault("db.password", "lexdocs_secret")
	v.SetDefault("db.name", "lexdocs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-2")
	v.SetDefault("s3.bucket", "lexdocs-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// OCR defaults
	v.SetDefault("ocr.tesseract_bin", "tesseract")
	v.SetDefault("ocr.pdftoppm_bin", "pdftoppm")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.max_pages", 20)
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.concurrency", 2)

	// Classifier defaults
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.model", "gpt-4o")
	v.SetDefault("classifier.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("classifier.timeout_secs", 60)
	v.SetDefault("classifier.min_text_len", 50)

	// Pipeline defaults
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.queue_size", 100)
	v.SetDefault("pipeline.run_timeout_secs", 300)

	// Review threshold defaults
	v.SetDefault("review.ocr_trigger", 0.5)
	v.SetDefault("review.classification_review", 0.8)
	v.SetDefault("review.ocr_review", 0.9)
	v.SetDefault("review.rule_confidence_ceiling", 0.85)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "LEXDOCS_SERVER_PORT",
		"server.read_timeout":            "LEXDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "LEXDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":             "LEXDOCS_SERVER_ENVIRONMENT",
		"db.host":                        "LEXDOCS_DB_HOST",
		"db.port":                        "LEXDOCS_DB_PORT",
		"db.user":                        "LEXDOCS_DB_USER",
		"db.password":                    "LEXDOCS_DB_PASSWORD",
		"db.name":                        "LEXDOCS_DB_NAME",
		"db.sslmode":                     "LEXDOCS_DB_SSLMODE",
		"db.max_open":                    "LEXDOCS_DB_MAX_OPEN",
		"db.max_idle":                    "LEXDOCS_DB_MAX_IDLE",
		"s3.region":                      "LEXDOCS_S3_REGION",
		"s3.bucket":                      "LEXDOCS_S3_BUCKET",
		"s3.endpoint":                    "LEXDOCS_S3_ENDPOINT",
		"s3.access_key":                  "LEXDOCS_S3_ACCESS_KEY",
		"s3.secret_key":                  "LEXDOCS_S3_SECRET_KEY",
		"s3.presign_expiry":              "LEXDOCS_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb":        "LEXDOCS_UPLOAD_MAX_FILE_SIZE_MB",
		"ocr.tesseract_bin":              "LEXDOCS_OCR_TESSERACT_BIN",
		"ocr.pdftoppm_bin":               "LEXDOCS_OCR_PDFTOPPM_BIN",
		"ocr.language":                   "LEXDOCS_OCR_LANGUAGE",
		"ocr.max_pages":                  "LEXDOCS_OCR_MAX_PAGES",
		"ocr.dpi":                        "LEXDOCS_OCR_DPI",
		"ocr.concurrency":                "LEXDOCS_OCR_CONCURRENCY",
		"classifier.api_key":             "LEXDOCS_CLASSIFIER_API_KEY",
		"classifier.model":               "LEXDOCS_CLASSIFIER_MODEL",
		"classifier.endpoint":            "LEXDOCS_CLASSIFIER_ENDPOINT",
		"classifier.timeout_secs":        "LEXDOCS_CLASSIFIER_TIMEOUT_SECS",
		"classifier.min_text_len":        "LEXDOCS_CLASSIFIER_MIN_TEXT_LEN",
		"pipeline.workers":               "LEXDOCS_PIPELINE_WORKERS",
		"pipeline.queue_size":            "LEXDOCS_PIPELINE_QUEUE_SIZE",
		"pipeline.run_timeout_secs":      "LEXDOCS_PIPELINE_RUN_TIMEOUT_SECS",
		"review.ocr_trigger":             "LEXDOCS_REVIEW_OCR_TRIGGER",
		"review.classification_review":   "LEXDOCS_REVIEW_CLASSIFICATION_REVIEW",
		"review.ocr_review":              "LEXDOCS_REVIEW_OCR_REVIEW",
		"review.rule_confidence_ceiling": "LEXDOCS_REVIEW_RULE_CONFIDENCE_CEILING",
		"cors.allowed_origins":           "LEXDOCS_CORS_ALLOWED_ORIGINS",
		"log.level":                      "LEXDOCS_LOG_LEVEL",
		"log.format":                     "LEXDOCS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LEXDOCS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEXDOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.OCR = OCRConfig{
		TesseractBin: v.GetString("ocr.tesseract_bin"),
		PdftoppmBin:  v.GetString("ocr.pdftoppm_bin"),
		Language:     v.GetString("ocr.language"),
		MaxPages:     v.GetInt("ocr.max_pages"),
		DPI:          v.GetInt("ocr.dpi"),
		Concurrency:  v.GetInt("ocr.concurrency"),
	}
	cfg.Classifier = ClassifierConfig{
		APIKey:      v.GetString("classifier.api_key"),
		Model:       v.GetString("classifier.model"),
		Endpoint:    v.GetString("classifier.endpoint"),
		TimeoutSecs: v.GetInt("classifier.timeout_secs"),
		MinTextLen:  v.GetInt("classifier.min_text_len"),
	}
	cfg.Pipeline = PipelineConfig{
		Workers:        v.GetInt("pipeline.workers"),
		QueueSize:      v.GetInt("pipeline.queue_size"),
		RunTimeoutSecs: v.GetInt("pipeline.run_timeout_secs"),
	}
	cfg.Review = ReviewConfig{
		OCRTrigger:            v.GetFloat64("review.ocr_trigger"),
		ClassificationReview:  v.GetFloat64("review.classification_review"),
		OCRReview:             v.GetFloat64("review.ocr_review"),
		RuleConfidenceCeiling: v.GetFloat64("review.rule_confidence_ceiling"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
