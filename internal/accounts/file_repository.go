package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/csvdb/internal/codec"
	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/filex"
)

// FileRepository keeps accounts in the registry file and one credential
// file per user.
type FileRepository struct {
	layout filex.Layout
}

func NewFileRepository(layout filex.Layout) *FileRepository {
	return &FileRepository{layout: layout}
}

func (r *FileRepository) Initialized(ctx context.Context) (bool, error) {
	return filex.Exists(r.layout.RegistryPath())
}

func (r *FileRepository) List(ctx context.Context) ([]string, error) {
	lines, err := codec.ReadLines(r.layout.RegistryPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	names := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			names = append(names, l)
		}
	}
	return names, nil
}

func (r *FileRepository) Exists(ctx context.Context, name string) (bool, error) {
	names, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *FileRepository) Create(ctx context.Context, user *User) error {
	if err := filex.EnsureDir(r.layout.UserDir(user.Name)); err != nil {
		return err
	}

	if err := r.writeCredentialFile(user); err != nil {
		return err
	}

	if err := codec.AppendLine(r.layout.RegistryPath(), user.Name); err != nil {
		return fmt.Errorf("append registry: %w", err)
	}
	return nil
}

func (r *FileRepository) GetUserByName(ctx context.Context, name string) (*User, error) {
	lines, err := codec.ReadLines(r.layout.CredentialPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	credential, databases, err := codec.DecodeCredential(lines)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", name, err)
	}

	return &User{Name: name, Credential: credential, Databases: databases}, nil
}

// UpdateDatabases rewrites the credential file with the user's current
// database list. The stored credential is written back unchanged.
func (r *FileRepository) UpdateDatabases(ctx context.Context, user *User) error {
	return r.writeCredentialFile(user)
}

func (r *FileRepository) writeCredentialFile(user *User) error {
	lines := codec.EncodeCredential(user.Credential, user.Databases)
	if err := codec.WriteLines(r.layout.CredentialPath(user.Name), lines); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}
