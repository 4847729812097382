package config

import "github.com/spf13/pflag"

const (
	FlagConfig          = "config"
	FlagRoot            = "root"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
	FlagPasswordHashing = "password-hashing"
	FlagMaxIDAttempts   = "max-id-attempts"
	FlagPrompt          = "prompt"
)

// RegisterFlags defines the configuration flags on fs. Defaults shown in the
// help text come from LoadDefaults; only flags the user actually set take
// part in Load.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagRoot, "r", d.RootDir, "data root holding account/ and database/")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, d.LogFormat, "log format (text, json)")
	fs.String(FlagPasswordHashing, d.PasswordHashing, "password storage for new credentials (plain, argon2)")
	fs.Int(FlagMaxIDAttempts, d.MaxIDAttempts, "row id generation attempts per insert")
	fs.String(FlagPrompt, d.Prompt, "REPL prompt prefix")
}

func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{FlagRoot, &c.RootDir},
		{FlagLogLevel, &c.LogLevel},
		{FlagLogFormat, &c.LogFormat},
		{FlagPasswordHashing, &c.PasswordHashing},
		{FlagPrompt, &c.Prompt},
	}
	for _, s := range strs {
		if !fs.Changed(s.name) {
			continue
		}
		v, err := fs.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if fs.Changed(FlagMaxIDAttempts) {
		n, err := fs.GetInt(FlagMaxIDAttempts)
		if err != nil {
			return err
		}
		c.MaxIDAttempts = n
	}
	return nil
}
