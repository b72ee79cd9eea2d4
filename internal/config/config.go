package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/smartcp/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath     = "database.path"
	KeyNLPEnabled       = "nlp.enabled"
	KeyNLPModelPath     = "nlp.model_path"
	KeyMaxClauseLength  = "extraction.max_clause_length"
	KeyMaxDocumentBytes = "ingest.max_document_bytes"
	KeyMetricsTextfile  = "metrics.textfile"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
)

// EnvPrefix is the prefix of environment variables overriding configuration,
// e.g. SMARTCP_DATABASE_PATH.
const EnvPrefix = "SMARTCP"

// Config holds the resolved application configuration.
type Config struct {
	DatabasePath     string
	NLPModelPath     string
	MetricsTextfile  string
	LogLevel         string
	LogFormat        string
	MaxClauseLength  int
	MaxDocumentBytes int64
	NLPEnabled       bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "~/.config/smartcp/contracts.db")
	v.SetDefault(KeyNLPEnabled, true)
	v.SetDefault(KeyNLPModelPath, "")
	v.SetDefault(KeyMaxClauseLength, 0)
	v.SetDefault(KeyMaxDocumentBytes, 16<<20)
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// BindEnv makes every key overridable from SMARTCP_ environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load resolves configuration from v, expanding paths, and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DatabasePath:     ExpandPath(v.GetString(KeyDatabasePath)),
		NLPEnabled:       v.GetBool(KeyNLPEnabled),
		NLPModelPath:     ExpandPath(v.GetString(KeyNLPModelPath)),
		MaxClauseLength:  v.GetInt(KeyMaxClauseLength),
		MaxDocumentBytes: v.GetInt64(KeyMaxDocumentBytes),
		MetricsTextfile:  ExpandPath(v.GetString(KeyMetricsTextfile)),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, KeyDatabasePath)
	}
	if c.MaxClauseLength < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyMaxClauseLength)
	}
	if c.MaxDocumentBytes < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyMaxDocumentBytes)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
