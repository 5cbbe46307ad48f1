package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBLogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string
	SQLitePath  string

	// RedisAddr is host:port or a redis:// URL; empty disables idempotency replay.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	AuthProvider            string
	FirebaseCredentialsFile string
	FirebaseProjectID       string
	JWTSecret               string

	StripeSecretKey string
	ClientDomain    string
	CORSOrigin      string

	FeeCents    int64
	FeeCurrency string

	BootstrapAdminEmail string
	RequestTimeout      time.Duration

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// LoadDotenv reads the given .env files (".env" when none) into the process
// environment. Missing files are not an error; real env vars win.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", getenv("PORT", "3000")),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		DBLogLevel: getenv("DB_LOG_LEVEL", "warn"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanlink"),
		MySQLUser: getenv("MYSQL_USER", "loanlink"),
		MySQLPass: getenv("MYSQL_PASS", "loanlink"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		SQLitePath:  getenv("SQLITE_PATH", "loanlink.db"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		AuthProvider:            strings.ToLower(getenv("AUTH_PROVIDER", AuthFirebase)),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		JWTSecret:               os.Getenv("JWT_SECRET"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		ClientDomain:    os.Getenv("CLIENT_DOMAIN"),
		CORSOrigin:      getenv("CORS_ORIGIN", "http://localhost:5173"),

		FeeCents:    int64(getint("APPLICATION_FEE_CENTS", 1000)),
		FeeCurrency: strings.ToLower(getenv("APPLICATION_FEE_CURRENCY", "usd")),

		BootstrapAdminEmail: strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))),
		RequestTimeout:      time.Duration(getint("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}

	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	switch c.AuthProvider {
	case AuthFirebase:
	case AuthJWT:
		if c.JWTSecret == "" {
			return errors.New("AUTH_PROVIDER=jwt needs JWT_SECRET")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.FeeCents <= 0 {
		return errors.New("APPLICATION_FEE_CENTS must be positive")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Warnings lists settings that are optional at boot but break a feature.
func (c *Config) Warnings() []string {
	var w []string
	if c.StripeSecretKey == "" {
		w = append(w, "STRIPE_SECRET_KEY is not set; checkout will fail")
	}
	if c.ClientDomain == "" {
		w = append(w, "CLIENT_DOMAIN is not set; checkout redirects will be relative")
	}
	return w
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN is the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.PostgresDSN
	case DriverSQLite:
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}
