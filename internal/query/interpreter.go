package query

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/csvdb/internal/accounts"
	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/logging"
	"github.com/dmitrijs2005/csvdb/internal/storage"
)

const (
	msgEmptyQuery  = "Empty query"
	msgNotLoggedIn = "Not logged in. Please login first."
	msgNoDatabase  = "No database opened. Use 'open <database>' first."
	msgUnknown     = "Unknown command"
)

// AccountService is the part of the account manager the interpreter needs.
type AccountService interface {
	Login(ctx context.Context, name string, password []byte) (*accounts.Account, error)
	CreateDatabase(ctx context.Context, acct *accounts.Account, name string) (*storage.Database, error)
	DropDatabase(ctx context.Context, acct *accounts.Account, name string) error
}

// CredentialsPrompter supplies the user name and password for login.
// The returned password slice is wiped after use.
type CredentialsPrompter interface {
	Credentials(ctx context.Context) (name string, password []byte, err error)
}

type handlerFunc func(ctx context.Context, cmd Command) string

type route struct {
	needsAuth     bool
	needsDatabase bool
	handler       handlerFunc
}

// Interpreter executes command lines for a single session.
type Interpreter struct {
	accounts AccountService
	prompter CredentialsPrompter
	logger   logging.Logger

	account *accounts.Account
	current *storage.Database

	routes map[Kind]route
}

func NewInterpreter(svc AccountService, prompter CredentialsPrompter, logger logging.Logger) *Interpreter {
	i := &Interpreter{
		accounts: svc,
		prompter: prompter,
		logger:   logger,
	}

	i.routes = map[Kind]route{
		KindEmpty:          {handler: i.handleEmpty},
		KindLogin:          {handler: i.handleLogin},
		KindShow:           {needsAuth: true, handler: i.handleShow},
		KindCreateDatabase: {needsAuth: true, handler: i.handleCreateDatabase},
		KindOpen:           {needsAuth: true, handler: i.handleOpen},
		KindDrop:           {needsAuth: true, handler: i.handleDrop},
		KindCreateTable:    {needsAuth: true, needsDatabase: true, handler: i.handleCreateTable},
		KindInsert:         {needsAuth: true, needsDatabase: true, handler: i.handleInsert},
		KindDelete:         {needsAuth: true, needsDatabase: true, handler: i.handleDelete},
		KindSelect:         {needsAuth: true, needsDatabase: true, handler: i.handleSelect},
		KindUnknown:        {needsAuth: true, needsDatabase: true, handler: i.handleUnknown},
	}

	return i
}

// Execute runs one input line and returns its result text.
func (i *Interpreter) Execute(ctx context.Context, line string) string {
	cmd, parseErr := Parse(line)
	if cmd.Kind == KindCreateTable && i.current == nil {
		if alt, ok := asCreateDatabase(line); ok {
			cmd, parseErr = alt, nil
		}
	}

	r, ok := i.routes[cmd.Kind]
	if !ok {
		return msgUnknown
	}

	if err := i.checkSession(r); err != nil {
		if errors.Is(err, common.ErrNotLoggedIn) {
			return msgNotLoggedIn
		}
		return msgNoDatabase
	}

	if parseErr != nil {
		var se *SyntaxError
		if errors.As(parseErr, &se) {
			return se.Usage
		}
		i.logger.Error(ctx, "parse command", "error", parseErr)
		return msgUnknown
	}

	i.logger.Debug(ctx, "executing command", "kind", cmd.Kind.String())
	return r.handler(ctx, cmd)
}

// checkSession reports whether the session state allows route r.
func (i *Interpreter) checkSession(r route) error {
	if r.needsAuth && i.account == nil {
		return common.ErrNotLoggedIn
	}
	if r.needsDatabase && i.current == nil {
		return common.ErrNoDatabase
	}
	return nil
}

// UserName returns the logged-in user, or "" when there is none.
func (i *Interpreter) UserName() string {
	if i.account == nil {
		return ""
	}
	return i.account.Name()
}

// DatabaseName returns the open database, or "" when there is none.
func (i *Interpreter) DatabaseName() string {
	if i.current == nil {
		return ""
	}
	return i.current.Name()
}

// Logout ends the session and closes the open database.
func (i *Interpreter) Logout() {
	i.account = nil
	i.current = nil
}

func (i *Interpreter) handleEmpty(context.Context, Command) string { return msgEmptyQuery }

func (i *Interpreter) handleUnknown(context.Context, Command) string { return msgUnknown }
