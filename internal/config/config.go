package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	POS      POSConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// POSConfig holds the point-of-sale business constants
type POSConfig struct {
	// CommissionRate is the fixed fraction of gross sales retained by
	// the till operator.
	CommissionRate float64
	// PrizeMultiplier is the fixed payout multiplier applied to a stake.
	PrizeMultiplier float64
	// BoundaryTimeout bounds every call to the persistence boundary;
	// after it elapses the operation is reported as a failure, never
	// retried automatically.
	BoundaryTimeout time.Duration
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "animalitos-pos")
	viper.SetDefault("JWT.ExpiresIn", 12*60*60) // one shift
	viper.SetDefault("POS.CommissionRate", 0.15)
	viper.SetDefault("POS.PrizeMultiplier", 30.0)
	viper.SetDefault("POS.BoundaryTimeout", 10*time.Second)
	viper.SetDefault("LogLevel", "info")
}
