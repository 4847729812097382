// Package config loads runtime configuration for csvdb.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in .yaml
//     or .yml are decoded as YAML, anything else as JSON.
//  3. A .env file in the working directory, then CSVDB_* environment
//     variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-c, --config string            path to a JSON or YAML config file
//	-r, --root string              data root holding account/ and database/
//	    --log-level string         debug, info, warn or error
//	    --log-format string        text or json
//	    --password-hashing string  plain or argon2
//	    --max-id-attempts int      row id generation attempts per insert
//	    --prompt string            REPL prompt prefix
//
// # File schema
//
//	root_dir: /var/lib/csvdb
//	log_level: info
//	log_format: text
//	password_hashing: plain
//	max_id_attempts: 8
//	prompt: csvdb
package config
