package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/csvdb/internal/config"
	"github.com/dmitrijs2005/csvdb/internal/logging"
	"github.com/dmitrijs2005/csvdb/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(root string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	if root != "" {
		c.RootDir = root
	}
	return c
}

func discardLogger() logging.Logger { return logging.Discard() }

func newInterpreter(a *App) *query.Interpreter {
	return query.NewInterpreter(a.accounts, a, a.logger)
}

func TestApp_Session(t *testing.T) {
	out := captureOutput(t)
	stubTerminal(t, false, nil, nil)

	input := strings.Join([]string{
		"show",
		"login",
		"admin",
		"admin",
		"create shop",
		"open shop",
		"create table items (name, price)",
		"insert into items (widget, 9.99)",
		"select from items",
		"logout",
		"show",
		"exit",
	}, "\n") + "\n"

	var screen, logs bytes.Buffer
	app, err := NewApp(newTestConfig(t.TempDir()), strings.NewReader(input), &screen, &logs)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, screen.String(), "created user 'admin' with password 'admin'")

	got := *out
	require.Len(t, got, 9)
	assert.Equal(t, "Not logged in. Please login first.", got[0])
	assert.Equal(t, "Successfully logged in as admin", got[1])
	assert.Equal(t, "Database 'shop' created successfully", got[2])
	assert.Equal(t, "Opened database 'shop'\nAvailable tables:", got[3])
	assert.Equal(t, "Table 'items' created successfully", got[4])
	assert.Regexp(t, regexp.MustCompile(`^Inserted row [0-9a-z]{12}$`), got[5])

	id := strings.TrimPrefix(got[5], "Inserted row ")
	assert.Equal(t, "unique_id,name,price\n"+id+",widget,9.99", got[6])
	assert.Equal(t, "Not logged in. Please login first.", got[7])
	assert.Equal(t, "Bye!", got[8])
	assert.Contains(t, screen.String(), "Logged out\n")
}

func TestApp_Prompt(t *testing.T) {
	captureOutput(t)
	stubTerminal(t, false, nil, nil)

	app, err := NewApp(newTestConfig(t.TempDir()), strings.NewReader("admin\nadmin\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, app.Bootstrap(context.Background()))

	assert.Equal(t, "csvdb> ", app.prompt())

	require.Equal(t, "Successfully logged in as admin", app.Execute(context.Background(), "login"))
	assert.Equal(t, "csvdb (admin)> ", app.prompt())

	app.Execute(context.Background(), "open default")
	assert.Equal(t, "csvdb (admin:default)> ", app.prompt())
}

func TestApp_BootstrapOnce(t *testing.T) {
	root := t.TempDir()

	var first bytes.Buffer
	app, err := NewApp(newTestConfig(root), strings.NewReader(""), &first, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, app.Bootstrap(context.Background()))
	assert.NotEmpty(t, first.String())

	var second bytes.Buffer
	app, err = NewApp(newTestConfig(root), strings.NewReader(""), &second, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, app.Bootstrap(context.Background()))
	assert.Empty(t, second.String())

	_, err = os.Stat(filepath.Join(root, "account", "users.csv"))
	require.NoError(t, err)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := newTestConfig(t.TempDir())
	cfg.LogFormat = "xml"
	_, err := NewApp(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)

	cfg = newTestConfig(t.TempDir())
	cfg.PasswordHashing = "rot13"
	_, err = NewApp(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}
