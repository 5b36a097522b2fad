package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Ledger    LedgerConfig
	Signer    SignerConfig
	Challenge ChallengeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=worklock"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LedgerConfig struct {
	// Mode selects the ledger backend: "memory" for the in-process ledger,
	// "rpc" for a JSON-RPC gateway.
	Mode       string        `env:"LEDGER_MODE,    default=memory"`
	GatewayURL string        `env:"LEDGER_GATEWAY, default=http://localhost:8000/rpc"`
	Timeout    time.Duration `env:"LEDGER_TIMEOUT, default=15s"`
	Network    string        `env:"LEDGER_NETWORK, default=testnet"`

	AttendanceContract string `env:"CONTRACT_ATTENDANCE"`
	EscrowContract     string `env:"CONTRACT_ESCROW"`
	TokenContract      string `env:"CONTRACT_TOKEN"`
}

type SignerConfig struct {
	// Seed is the hex-encoded ed25519 seed for the local signer. Empty means
	// every signing request is declined.
	Seed string `env:"SIGNER_SEED"`
}

type ChallengeConfig struct {
	TTL time.Duration `env:"CHALLENGE_TTL, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
