package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3UseSSL        bool
	S3Region        string
	S3PublicBaseURL string
	PresignExpiry   time.Duration

	ElasticsearchAddresses []string
	ElasticsearchUsername  string
	ElasticsearchPassword  string
	ElasticsearchIndex     string
	ElasticsearchInsecure  bool

	GeminiAPIKey            string
	GeminiModel             string
	GeminiRequestsPerSecond float64

	AnnotationTimeout     time.Duration
	AnnotationLanguage    string
	GoogleCredentialsFile string

	RedisAddr       string
	RedisPassword   string
	AnalysisLockTTL time.Duration

	JWTPublicKey string

	PubSubProjectID       string
	TranscodeSubscription string
}

var required = []string{
	"MARIADB_DSN",
	"MARIADB_MAX_OPEN_CONN",
	"MARIADB_MAX_IDLE_CONNS",
	"MARIADB_CONN_MAX_LIFETIME",
	"SERVER_PORT",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_BUCKET",
	"ELASTICSEARCH_ADDRESSES",
	"GEMINI_API_KEY",
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("PRESIGN_EXPIRY", 3600)
	viper.SetDefault("ELASTICSEARCH_INDEX", "videos")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_REQUESTS_PER_SECOND", 2)
	viper.SetDefault("ANNOTATION_TIMEOUT", 300)
	viper.SetDefault("ANNOTATION_LANGUAGE", "en-US")
	viper.SetDefault("ANALYSIS_LOCK_TTL", 1200)

	bucket := viper.GetString("S3_BUCKET")
	publicBase := viper.GetString("S3_PUBLIC_BASE_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	addresses := splitList(viper.GetString("ELASTICSEARCH_ADDRESSES"))
	if len(addresses) == 0 {
		return nil, fmt.Errorf("ELASTICSEARCH_ADDRESSES is required")
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		S3Endpoint:      viper.GetString("S3_ENDPOINT"),
		S3AccessKey:     viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:     viper.GetString("S3_SECRET_KEY"),
		S3Bucket:        bucket,
		S3UseSSL:        viper.GetBool("S3_USE_SSL"),
		S3Region:        viper.GetString("S3_REGION"),
		S3PublicBaseURL: strings.TrimRight(publicBase, "/"),
		PresignExpiry:   time.Duration(viper.GetInt("PRESIGN_EXPIRY")) * time.Second,

		ElasticsearchAddresses: addresses,
		ElasticsearchUsername:  viper.GetString("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword:  viper.GetString("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndex:     viper.GetString("ELASTICSEARCH_INDEX"),
		ElasticsearchInsecure:  viper.GetBool("ELASTICSEARCH_INSECURE"),

		GeminiAPIKey:            viper.GetString("GEMINI_API_KEY"),
		GeminiModel:             viper.GetString("GEMINI_MODEL"),
		GeminiRequestsPerSecond: viper.GetFloat64("GEMINI_REQUESTS_PER_SECOND"),

		AnnotationTimeout:     time.Duration(viper.GetInt("ANNOTATION_TIMEOUT")) * time.Second,
		AnnotationLanguage:    viper.GetString("ANNOTATION_LANGUAGE"),
		GoogleCredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILE"),

		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		AnalysisLockTTL: time.Duration(viper.GetInt("ANALYSIS_LOCK_TTL")) * time.Second,

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		PubSubProjectID:       viper.GetString("PUBSUB_PROJECT_ID"),
		TranscodeSubscription: viper.GetString("TRANSCODE_SUBSCRIPTION"),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
