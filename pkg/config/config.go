package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config sdružuje konfiguraci aplikace (čtení přes Viper z env a volitelně
// ze souboru .env).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Billing BillingConfig
}

// AppConfig obecná konfigurace aplikace.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig konfigurace PostgreSQL. Pokud je DatabaseURL neprázdné, použije
// se jako kompletní connection string (např. DATABASE_URL ze Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString vrací DSN: DatabaseURL, pokud je definované, jinak DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN složí connection string s URL encodingem hesla.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig konfigurace HTTP serveru.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr vrací adresu pro naslouchání (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig konfigurace ověřování tokenů. Tokeny vydává hostovaná
// autentizace; tady se jen validují stejným tajemstvím.
type JWTConfig struct {
	Secret string
	Issuer string
}

// BillingConfig výchozí hodnoty fakturace, použité jen když uživatel nemá
// vlastní nastavení.
type BillingConfig struct {
	DefaultHourlyRate decimal.Decimal
	DefaultDueDays    int
	DefaultTaxRate    decimal.Decimal
	Currency          string
}

// Load načte konfiguraci z proměnných prostředí (a volitelně ze souboru).
// Env proměnné mají přednost. Očekávaná jména: APP_ENV, DB_HOST, DB_PORT,
// JWT_SECRET, BILLING_DEFAULT_DUE_DAYS atd.
func Load() (*Config, error) {
	v := viper.New()

	// Volitelný konfigurační soubor .env; chybě nevadí, env stačí.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	taxRate, err := decimal.NewFromString(getString(v, "BILLING_DEFAULT_TAX_RATE", "0"))
	if err != nil {
		return nil, fmt.Errorf("BILLING_DEFAULT_TAX_RATE: %w", err)
	}
	hourlyRate, err := decimal.NewFromString(getString(v, "BILLING_DEFAULT_HOURLY_RATE", "850"))
	if err != nil {
		return nil, fmt.Errorf("BILLING_DEFAULT_HOURLY_RATE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fakturace-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "fakturace"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "fakturace"),
		},
		Billing: BillingConfig{
			DefaultHourlyRate: hourlyRate,
			DefaultDueDays:    getInt(v, "BILLING_DEFAULT_DUE_DAYS", 14),
			DefaultTaxRate:    taxRate,
			Currency:          getString(v, "BILLING_CURRENCY", "Kč"),
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
