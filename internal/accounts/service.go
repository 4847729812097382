// Package accounts authenticates users and manages the databases they own.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/cryptox"
	"github.com/dmitrijs2005/csvdb/internal/logging"
	"github.com/dmitrijs2005/csvdb/internal/storage"
)

const (
	AdminUser       = "admin"
	AdminPassword   = "admin"
	DefaultDatabase = "default"
)

type Service struct {
	repo     Repository
	catalog  *storage.Catalog
	verifier cryptox.Verifier
	logger   logging.Logger
}

func NewService(repo Repository, catalog *storage.Catalog, verifier cryptox.Verifier, logger logging.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, verifier: verifier, logger: logger}
}

// EnsureBootstrap creates the admin account and its default database when the
// user registry does not exist yet. It reports whether anything was created.
func (s *Service) EnsureBootstrap(ctx context.Context) (bool, error) {
	ok, err := s.repo.Initialized(ctx)
	if err != nil {
		return false, fmt.Errorf("check registry: %w", err)
	}
	if ok {
		return false, nil
	}

	s.logger.Info(ctx, "creating admin user and default database")

	credential, err := s.verifier.Encode([]byte(AdminPassword))
	if err != nil {
		return false, err
	}

	admin := &User{Name: AdminUser, Credential: credential, Databases: []string{DefaultDatabase}}
	if err := s.repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	if _, err := s.catalog.Create(ctx, AdminUser, DefaultDatabase); err != nil {
		return false, fmt.Errorf("create default database: %w", err)
	}
	return true, nil
}

// Login checks the credentials and opens every database the user owns.
// Unknown users and wrong passwords both yield common.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, name string, password []byte) (*Account, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		s.logger.Error(ctx, "load user", "user", name, "error", err)
		return nil, common.ErrInternal
	}

	if !s.verifier.Verify(user.Credential, password) {
		return nil, common.ErrUnauthorized
	}

	acct := newAccount(user)
	for _, dbName := range user.Databases {
		db, err := s.catalog.Open(ctx, name, dbName)
		if err != nil {
			s.logger.Warn(ctx, "skipping database", "user", name, "db", dbName, "error", err)
			continue
		}
		acct.databases[dbName] = db
	}

	if name == AdminUser && len(acct.databases) == 0 {
		s.logger.Info(ctx, "creating default database for admin")
		if _, err := s.CreateDatabase(ctx, acct, DefaultDatabase); err != nil {
			s.logger.Error(ctx, "create default database", "error", err)
		}
	}

	s.logger.Info(ctx, "user logged in", "user", name, "databases", len(acct.databases))
	return acct, nil
}

// CreateUser registers a new account with an empty database list.
func (s *Service) CreateUser(ctx context.Context, name string, password []byte) error {
	if err := common.ValidateName(name); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return fmt.Errorf("user %s: %w", name, common.ErrAlreadyExists)
	}

	credential, err := s.verifier.Encode(password)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, &User{Name: name, Credential: credential}); err != nil {
		s.logger.Error(ctx, "create user", "user", name, "error", err)
		return err
	}

	s.logger.Info(ctx, "user created", "user", name)
	return nil
}

// ListUsers returns the registry contents in file order.
func (s *Service) ListUsers(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// CreateDatabase creates a database owned by acct and persists the updated
// database list.
func (s *Service) CreateDatabase(ctx context.Context, acct *Account, name string) (*storage.Database, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, err
	}
	if acct.Owns(name) {
		return nil, fmt.Errorf("database %s: %w", name, common.ErrAlreadyExists)
	}

	db, err := s.catalog.Create(ctx, acct.Name(), name)
	if err != nil {
		return nil, err
	}

	acct.databases[name] = db
	if !slices.Contains(acct.user.Databases, name) {
		acct.user.Databases = append(acct.user.Databases, name)
	}

	if err := s.repo.UpdateDatabases(ctx, acct.user); err != nil {
		s.logger.Error(ctx, "update user databases", "user", acct.Name(), "error", err)
		return nil, err
	}
	return db, nil
}

// DropDatabase deletes an owned database with all its tables and persists the
// updated database list.
func (s *Service) DropDatabase(ctx context.Context, acct *Account, name string) error {
	if !acct.Owns(name) {
		return fmt.Errorf("database %s: %w", name, common.ErrNotFound)
	}

	if err := s.catalog.Drop(ctx, acct.Name(), name); err != nil {
		return err
	}

	delete(acct.databases, name)
	acct.user.Databases = slices.DeleteFunc(acct.user.Databases, func(n string) bool { return n == name })

	if err := s.repo.UpdateDatabases(ctx, acct.user); err != nil {
		s.logger.Error(ctx, "update user databases", "user", acct.Name(), "error", err)
		return err
	}
	return nil
}
