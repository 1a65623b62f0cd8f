package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// clearEnv blanks every variable Load reads so values set by godotenv in a
// previous test (it writes into the process environment) cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EMAIL", "PASSWORD", "RECIPIENT",
		"PRODUCT_URL", "TARGET_PRICE", "MAX_RETRIES",
		"SMTP_HOST", "SMTP_PORT", "HTTP_TIMEOUT", "USER_AGENT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func writeEnvFile(t *testing.T, dir, profile, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".env."+profile), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingProfileFile(t *testing.T) {
	clearEnv(t)
	chdirTemp(t)

	if _, err := Load("nonexistent", zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing profile file")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeEnvFile(t, dir, "test", "EMAIL=alerts@example.com\nPASSWORD=hunter2\nRECIPIENT=buyer@example.com\n")

	cfg, err := Load("test", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Email != "alerts@example.com" || cfg.Password != "hunter2" || cfg.Recipient != "buyer@example.com" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if !cfg.TargetPrice.Equal(decimal.NewFromInt(100)) {
		t.Errorf("wrong default target price: %s", cfg.TargetPrice)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("wrong default max retries: %d", cfg.MaxRetries)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("wrong default SMTP endpoint: %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("wrong default timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.Headers["Accept-Language"] != "en-US,en;q=0.9" {
		t.Errorf("wrong Accept-Language: %q", cfg.Headers["Accept-Language"])
	}
	if cfg.Headers["User-Agent"] == "" {
		t.Error("User-Agent header not set")
	}
}

func TestLoadMissingRequiredVar(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeEnvFile(t, dir, "test", "EMAIL=alerts@example.com\nPASSWORD=hunter2\n")

	if _, err := Load("test", zerolog.Nop()); err == nil {
		t.Fatal("expected error when RECIPIENT is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeEnvFile(t, dir, "test",
		"EMAIL=a@b.c\nPASSWORD=p\nRECIPIENT=r@b.c\n"+
			"TARGET_PRICE=55.50\nMAX_RETRIES=2\nHTTP_TIMEOUT=3\n"+
			"PRODUCT_URL=https://shop.example.com/widget\nSMTP_HOST=mail.example.com\nSMTP_PORT=2525\n")

	cfg, err := Load("test", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.TargetPrice.Equal(decimal.RequireFromString("55.5")) {
		t.Errorf("wrong target price: %s", cfg.TargetPrice)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("wrong max retries: %d", cfg.MaxRetries)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("wrong timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.ProductURL != "https://shop.example.com/widget" {
		t.Errorf("wrong product URL: %q", cfg.ProductURL)
	}
	if cfg.SMTPHost != "mail.example.com" || cfg.SMTPPort != 2525 {
		t.Errorf("wrong SMTP endpoint: %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	writeEnvFile(t, dir, "test", "EMAIL=a@b.c\nPASSWORD=p\nRECIPIENT=r@b.c\nTARGET_PRICE=cheap\n")

	if _, err := Load("test", zerolog.Nop()); err == nil {
		t.Fatal("expected error for malformed TARGET_PRICE")
	}
}
