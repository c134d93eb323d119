// Package config reads runtime configuration from the environment.
package config

import (
	"math"
	"os"
	"strconv"
	"time"

	"leasefee/internal/logger"
	"leasefee/internal/services/fee"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file found")
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetFloatEnv returns a float environment variable or a default value.
func GetFloatEnv(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// FeeConstants returns the fee rate regime, with env overrides.
// The total rate is always the sum of the two shares.
func FeeConstants() fee.Constants {
	c := fee.DefaultConstants()
	c.PlatformRate = feeOverride("FEE_PLATFORM_RATE", c.PlatformRate)
	c.LandlordRate = feeOverride("FEE_LANDLORD_RATE", c.LandlordRate)
	c.TraditionalMarkup = feeOverride("FEE_TRADITIONAL_MARKUP", c.TraditionalMarkup)
	c.MinFeeAmount = feeOverride("FEE_MIN_AMOUNT", c.MinFeeAmount)
	c.TotalRate = c.PlatformRate + c.LandlordRate
	return c
}

// feeOverride reads a fee constant override. Negative or non-finite values
// are ignored.
func feeOverride(key string, defaultVal float64) float64 {
	v := GetFloatEnv(key, defaultVal)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		log.Warn().Str("key", key).Float64("value", v).Msg("invalid fee override, using default")
		return defaultVal
	}
	return v
}

// Logger returns the logger configuration.
func Logger() logger.Config {
	return logger.Config{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Pretty: GetBoolEnv("LOG_PRETTY", !IsProduction()),
	}
}
