package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port     string
	LogLevel string

	StorageBackend string
	SQLiteDBPath   string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	OperatorWorkers int

	JWTSecret    string
	DemoEmail    string
	DemoPassword string
	DemoName     string
	SeedDemoData bool

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	BudgetRolloverSchedule string
}

// ProcessEnvironmentVariables loads an optional .env file and then applies
// environment overrides on top of the local development defaults.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// In all cases the default behavior should be a single local process with in-memory storage
	env := Config{
		Port:     "9446",
		LogLevel: "info",

		StorageBackend: BackendMemory,
		SQLiteDBPath:   "./data/expense-tracker.db",

		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		OperatorWorkers: 4,

		JWTSecret:    "secret",
		DemoEmail:    "demo@example.com",
		DemoPassword: "password",
		DemoName:     "Demo User",
		SeedDemoData: true,

		AMQPExchange: "expense-tracker",
		AMQPQueue:    "ledger_events",

		BudgetRolloverSchedule: "@monthly",
	}

	overrideString(&env.Port, "PORT")
	overrideString(&env.LogLevel, "LOG_LEVEL")
	overrideString(&env.StorageBackend, "STORAGE_BACKEND")
	overrideString(&env.SQLiteDBPath, "SQLITE_DB_PATH")
	overrideString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	overrideString(&env.PostgresPort, "POSTGRES_PORT")
	overrideString(&env.PostgresDB, "POSTGRES_DB")
	overrideString(&env.PostgresUsername, "POSTGRES_USERNAME")
	overrideString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	overrideString(&env.JWTSecret, "JWT_SECRET")
	overrideString(&env.DemoEmail, "DEMO_EMAIL")
	overrideString(&env.DemoPassword, "DEMO_PASSWORD")
	overrideString(&env.DemoName, "DEMO_NAME")
	overrideString(&env.AMQPURL, "AMQP_URL")
	overrideString(&env.AMQPExchange, "AMQP_EXCHANGE")
	overrideString(&env.AMQPQueue, "AMQP_QUEUE")
	overrideString(&env.BudgetRolloverSchedule, "BUDGET_ROLLOVER_SCHEDULE")

	if v := os.Getenv("OPERATOR_WORKERS"); len(v) != 0 {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OPERATOR_WORKERS %q: %w", v, err)
		}
		env.OperatorWorkers = workers
	}

	if v := os.Getenv("SEED_DEMO_DATA"); len(v) != 0 {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DEMO_DATA %q: %w", v, err)
		}
		env.SeedDemoData = seed
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Validate returns every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number between 1 and 65535", c.Port))
	}

	switch c.StorageBackend {
	case BackendMemory, BackendPostgres:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of memory, sqlite, postgres", c.StorageBackend))
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator workers %d: must be at least 1", c.OperatorWorkers))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.DemoEmail == "" || c.DemoPassword == "" {
		problems = append(problems, "DEMO_EMAIL and DEMO_PASSWORD are required")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" || c.AMQPQueue == "" {
			problems = append(problems, "AMQP exchange and queue are required when AMQP_URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*dst = v
	}
}
