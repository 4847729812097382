package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvRoot            = "CSVDB_ROOT"
	EnvLogLevel        = "CSVDB_LOG_LEVEL"
	EnvLogFormat       = "CSVDB_LOG_FORMAT"
	EnvPasswordHashing = "CSVDB_PASSWORD_HASHING"
	EnvMaxIDAttempts   = "CSVDB_MAX_ID_ATTEMPTS"
	EnvPrompt          = "CSVDB_PROMPT"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// loadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvRoot, &c.RootDir},
		{EnvLogLevel, &c.LogLevel},
		{EnvLogFormat, &c.LogFormat},
		{EnvPasswordHashing, &c.PasswordHashing},
		{EnvPrompt, &c.Prompt},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvMaxIDAttempts); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxIDAttempts, err)
		}
		c.MaxIDAttempts = n
	}
	return nil
}
