package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/csvdb/internal/accounts"
	"github.com/dmitrijs2005/csvdb/internal/config"
	"github.com/dmitrijs2005/csvdb/internal/cryptox"
	"github.com/dmitrijs2005/csvdb/internal/filex"
	"github.com/dmitrijs2005/csvdb/internal/logging"
	"github.com/dmitrijs2005/csvdb/internal/query"
	"github.com/dmitrijs2005/csvdb/internal/storage"
	"github.com/google/uuid"
)

// AccountService is what the shell needs from the account manager.
type AccountService interface {
	query.AccountService
	EnsureBootstrap(ctx context.Context) (bool, error)
	CreateUser(ctx context.Context, name string, password []byte) error
	ListUsers(ctx context.Context) ([]string, error)
}

// App is one shell session over a data root.
type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts AccountService
	interp   *query.Interpreter
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires storage, accounts and the interpreter for cfg. Diagnostics go
// to logOut; prompts are written to out and answers read from in.
func NewApp(cfg *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	base, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	logger := base.With("session_id", uuid.NewString())

	verifier, err := cryptox.NewVerifier(cfg.PasswordHashing)
	if err != nil {
		return nil, err
	}

	layout := filex.NewLayout(cfg.RootDir)
	catalog := storage.NewCatalog(layout, storage.Options{
		Logger:        logger,
		MaxIDAttempts: cfg.MaxIDAttempts,
	})
	svc := accounts.NewService(accounts.NewFileRepository(layout), catalog, verifier, logger)

	a := &App{
		config:   cfg,
		logger:   logger,
		accounts: svc,
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.interp = query.NewInterpreter(svc, a, logger)
	return a, nil
}

// Accounts exposes the account service for non-interactive commands.
func (a *App) Accounts() AccountService { return a.accounts }

// Bootstrap creates the administrator account on a fresh data root and
// tells the user about it.
func (a *App) Bootstrap(ctx context.Context) error {
	created, err := a.accounts.EnsureBootstrap(ctx)
	if err != nil {
		a.logger.Error(ctx, "bootstrap", "root", a.config.RootDir, "error", err)
		return err
	}
	if created {
		fmt.Fprintf(a.out, "Initialized %s: created user '%s' with password '%s'\n",
			a.config.RootDir, accounts.AdminUser, accounts.AdminPassword)
	}
	return nil
}

// Run bootstraps the data root and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to csvdb (type 'help' for commands)")
	a.logger.Debug(ctx, "session started", "root", a.config.RootDir)

	runREPL(ctx, a, a.prompt, a.reader)

	a.logger.Debug(ctx, "session finished")
	return nil
}

func (a *App) Execute(ctx context.Context, line string) string {
	return a.interp.Execute(ctx, line)
}

func (a *App) isLoggedIn() bool {
	return a.interp.UserName() != ""
}

// getStatus renders "(user)" or "(user:db)" for the prompt.
func (a *App) getStatus() string {
	user := a.interp.UserName()
	if user == "" {
		return ""
	}
	if db := a.interp.DatabaseName(); db != "" {
		return fmt.Sprintf("(%s:%s)", user, db)
	}
	return fmt.Sprintf("(%s)", user)
}

func (a *App) prompt() string {
	if s := a.getStatus(); s != "" {
		return fmt.Sprintf("%s %s> ", a.config.Prompt, s)
	}
	return a.config.Prompt + "> "
}
