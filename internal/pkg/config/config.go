package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"

	DecisionSinkNoop  = "noop"
	DecisionSinkMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session   SessionConfig
	Gateway   GatewayConfig
	Decisions DecisionConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type SessionConfig struct {
	Secret  string        `env:"SESSION_SECRET"`
	TTL     time.Duration `env:"SESSION_TTL,     default=168h"`
	Backend string        `env:"SESSION_BACKEND, default=redis"`
	Secure  bool          `env:"COOKIE_SECURE,   default=false"`
}

// GatewayConfig holds one URL per remote operation. For operations that
// address a single record (role lookup, update/delete) the id is appended
// as the last path segment.
type GatewayConfig struct {
	Timeout time.Duration `env:"GATEWAY_TIMEOUT, default=10s"`

	LoginURL           string `env:"LOGIN_URL,            default=http://localhost:3002/auth/login"`
	LogoutURL          string `env:"LOGOUT_URL,           default=http://localhost:3002/auth/logout"`
	RecoverPasswordURL string `env:"RECOVER_PASSWORD_URL, default=http://localhost:4000/password/recover"`
	RegisterUserURL    string `env:"REGISTER_USER_URL,    default=http://localhost:3000/user/register"`
	ListUsersURL       string `env:"LIST_USERS_URL,       default=http://localhost:3005/users/list"`
	DeleteUserURL      string `env:"DELETE_USER_URL,      default=http://localhost:8085/users"`
	RoleLookupURL      string `env:"ROLE_LOOKUP_URL,      default=http://localhost:3003/roles/user-role"`
	ListPetsURL        string `env:"LIST_PETS_URL,        default=http://localhost:3009/pets/list"`
	RegisterPetURL     string `env:"REGISTER_PET_URL,     default=http://localhost:3006/pets/register"`
	UpdatePetURL       string `env:"UPDATE_PET_URL,       default=http://localhost:3007/pets"`
	DeletePetURL       string `env:"DELETE_PET_URL,       default=http://localhost:3008/pets"`
	SearchPetsURL      string `env:"SEARCH_PETS_URL,      default=http://localhost:3011/graphql/search/pets"`
	SubmitAdoptionURL  string `env:"SUBMIT_ADOPTION_URL,  default=http://localhost:3015/adoption-requests"`
	ListAdoptionsURL   string `env:"LIST_ADOPTIONS_URL,   default=http://localhost:3016/list/adoption-requests"`
}

type DecisionConfig struct {
	Sink      string `env:"DECISION_SINK,      default=noop"`
	Workers   int    `env:"DECISION_WORKERS,   default=4"`
	QueueSize int    `env:"DECISION_QUEUE_SIZE, default=64"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shaggy_mission"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("config: SESSION_SECRET is required outside development")
		}
		c.Session.Secret = "dev-session-secret"
	}
	switch c.Session.Backend {
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Decisions.Sink {
	case DecisionSinkNoop, DecisionSinkMongo:
	default:
		return fmt.Errorf("config: unknown DECISION_SINK %q", c.Decisions.Sink)
	}
	if c.Decisions.Workers < 1 {
		return fmt.Errorf("config: DECISION_WORKERS must be at least 1")
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("config: GATEWAY_TIMEOUT must not be negative")
	}
	return nil
}
