// Package config loads the run configuration from a profile-selected env
// file plus the process environment. Configuration is read-only after Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultProductURL = "https://www.amazon.com/dp/B075CYMYK6?ref_=cm_sw_r_cp_ud_ct_FM9M699VKHTT47YD50Q6&th=1"
	defaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	defaultAcceptLang = "en-US,en;q=0.9"

	defaultTargetPrice = "100"
	defaultMaxRetries  = "5"
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = "587"
	defaultTimeoutSecs = "10"
)

// requiredVars must all be present; each missing one is reported before the
// load fails so a broken deployment shows every gap at once.
var requiredVars = []string{"EMAIL", "PASSWORD", "RECIPIENT"}

type Config struct {
	Email     string
	Password  string
	Recipient string

	ProductURL  string
	TargetPrice decimal.Decimal
	MaxRetries  int
	Headers     map[string]string

	SMTPHost    string
	SMTPPort    int
	HTTPTimeout time.Duration
}

// Load reads .env.<profile> and assembles the configuration. A missing
// profile file or missing required key is fatal for the whole process.
func Load(profile string, log zerolog.Logger) (*Config, error) {
	filename := ".env." + profile
	if err := godotenv.Load(filename); err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	log.Info().Str("file", filename).Msg("environment file loaded")

	values := make(map[string]string, len(requiredVars))
	ok := true
	for _, name := range requiredVars {
		v := os.Getenv(name)
		if v == "" {
			log.Error().Str("var", name).Msg("environment variable failed to load")
			ok = false
			continue
		}
		values[name] = v
		log.Info().Str("var", name).Msg("loaded environment variable")
	}
	if !ok {
		return nil, errors.New("failed to load required environment variables")
	}

	targetPrice, err := decimal.NewFromString(getenv("TARGET_PRICE", defaultTargetPrice))
	if err != nil {
		return nil, fmt.Errorf("parsing TARGET_PRICE: %w", err)
	}

	maxRetries, err := strconv.Atoi(getenv("MAX_RETRIES", defaultMaxRetries))
	if err != nil {
		return nil, fmt.Errorf("parsing MAX_RETRIES: %w", err)
	}

	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", defaultSMTPPort))
	if err != nil {
		return nil, fmt.Errorf("parsing SMTP_PORT: %w", err)
	}

	timeoutSecs, err := strconv.Atoi(getenv("HTTP_TIMEOUT", defaultTimeoutSecs))
	if err != nil {
		return nil, fmt.Errorf("parsing HTTP_TIMEOUT: %w", err)
	}

	return &Config{
		Email:       values["EMAIL"],
		Password:    values["PASSWORD"],
		Recipient:   values["RECIPIENT"],
		ProductURL:  getenv("PRODUCT_URL", defaultProductURL),
		TargetPrice: targetPrice,
		MaxRetries:  maxRetries,
		Headers: map[string]string{
			"User-Agent":      getenv("USER_AGENT", defaultUserAgent),
			"Accept-Language": defaultAcceptLang,
		},
		SMTPHost:    getenv("SMTP_HOST", defaultSMTPHost),
		SMTPPort:    smtpPort,
		HTTPTimeout: time.Duration(timeoutSecs) * time.Second,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
