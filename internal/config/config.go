package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by StorageConfig.Driver.
const (
	DriverFile  = "file"
	DriverMongo = "mongo"
	DriverS3    = "s3"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Client   ClientConfig   `mapstructure:"client"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	StaticDir    string        `mapstructure:"static_dir"` // Optional built UI bundle to serve at /
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	ReleaseMode  bool          `mapstructure:"release_mode"`
}

// StorageConfig selects where the workout collection is kept.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // file, mongo or s3
	Path   string `mapstructure:"path"`   // JSON file used by the file driver
}

type DatabaseConfig struct {
	URI        string `mapstructure:"uri"`
	Name       string `mapstructure:"name"`
	Collection string `mapstructure:"collection"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	ObjectKey       string `mapstructure:"object_key"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// ClientConfig is used by workoutctl to reach the server.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path, if present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Nested keys map to env vars: server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file; rely on defaults and env vars.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.max_body_bytes", 5<<20)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.release_mode", false)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "data/workouts.json")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_tracker")
	v.SetDefault("database.collection", "workouts")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.object_key", "workouts.json")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.timeout", "10s")
}
