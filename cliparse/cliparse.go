package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store types, mirrored from ledger so this package stays dependency-free.
const (
	StoreMemory   = "memory"
	StoreLevelDB  = "leveldb"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const (
	defaultPort     = 3318
	defaultDuration = 7 * 24 * 60 * 60 // one week, in seconds
	defaultMaxHops  = 1024
)

type Config struct {
	Port        int
	StoreType   string
	DatabaseURL string

	// Poll parameters, used only the first time the ledger is opened
	PollText     string
	Duration     uint64
	EarlyResults bool

	MaxHops   int
	TokenSalt string

	// IssueToken, when set, asks main to print the voter token for this
	// address and exit.
	IssueToken string
}

// LoadEnv reads KEY=value pairs from the given files into the environment.
// Variables already set win; missing files are ignored.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("liquid-poll", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "store", "", "Ledger store (memory, leveldb, sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or LevelDB directory")

	// Poll
	fs.StringVar(&cfg.PollText, "poll", "", "Yes/no question asked by the poll")
	fs.Uint64Var(&cfg.Duration, "duration", 0, "Voting window length in seconds")
	fs.BoolVar(&cfg.EarlyResults, "early-results", false, "Disclose the tally before the poll ends")
	fs.IntVar(&cfg.MaxHops, "max-hops", 0, "Longest delegation chain followed")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSalt, "token-salt", "", "Voter token salt (prefer env)")

	fs.StringVar(&cfg.IssueToken, "issue-token", "", "Print the voter token for this address and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreSQLite
		}
	}
	switch cfg.StoreType {
	case StoreMemory, StoreLevelDB, StoreSQLite, StorePostgres:
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.PollText == "" {
		cfg.PollText = os.Getenv("POLL_TEXT")
	}
	if !set["duration"] {
		d, err := envUint("POLL_DURATION", defaultDuration)
		if err != nil {
			return Config{}, err
		}
		cfg.Duration = d
	}
	if !set["early-results"] {
		if v := os.Getenv("EARLY_RESULTS"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid EARLY_RESULTS env variable")
			}
			cfg.EarlyResults = b
		}
	}
	if cfg.MaxHops == 0 {
		hops, err := envInt("MAX_DELEGATION_HOPS", defaultMaxHops)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxHops = hops
	}
	if cfg.MaxHops < 1 {
		return Config{}, errors.New("max hops must be at least 1")
	}

	// Secrets - MUST be provided
	if cfg.TokenSalt == "" {
		cfg.TokenSalt = os.Getenv("VOTER_TOKEN_SALT")
	}
	if cfg.TokenSalt == "" {
		return Config{}, errors.New("VOTER_TOKEN_SALT required")
	}

	// Issuing a token touches no storage
	if cfg.IssueToken != "" {
		return cfg, nil
	}

	if cfg.DatabaseURL == "" && cfg.StoreType != StoreMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envUint(key string, def uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
