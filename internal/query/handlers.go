package query

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/storage"
)

func (i *Interpreter) handleLogin(ctx context.Context, _ Command) string {
	if i.prompter == nil {
		return "Login failed"
	}

	name, password, err := i.prompter.Credentials(ctx)
	defer common.WipeByteArray(password)
	if err != nil {
		i.logger.Warn(ctx, "read credentials", "error", err)
		return "Login failed"
	}

	acct, err := i.accounts.Login(ctx, name, password)
	if err != nil {
		if !errors.Is(err, common.ErrUnauthorized) {
			i.logger.Error(ctx, "login", "user", name, "error", err)
		} else {
			i.logger.Info(ctx, "login rejected", "user", name)
		}
		return "Login failed"
	}

	i.account = acct
	i.current = nil
	return fmt.Sprintf("Successfully logged in as %s", acct.Name())
}

func (i *Interpreter) handleShow(context.Context, Command) string {
	lines := []string{"Available databases:"}
	for _, name := range i.account.DatabaseNames() {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n")
}

func (i *Interpreter) handleCreateDatabase(ctx context.Context, cmd Command) string {
	_, err := i.accounts.CreateDatabase(ctx, i.account, cmd.Name)
	switch {
	case err == nil:
		return fmt.Sprintf("Database '%s' created successfully", cmd.Name)
	case errors.Is(err, common.ErrAlreadyExists):
		return fmt.Sprintf("Database '%s' already exists", cmd.Name)
	case errors.Is(err, common.ErrInvalidName):
		return fmt.Sprintf("Invalid database name '%s'", cmd.Name)
	default:
		i.logger.Error(ctx, "create database", "db", cmd.Name, "error", err)
		return "Failed to create database"
	}
}

func (i *Interpreter) handleOpen(ctx context.Context, cmd Command) string {
	db, ok := i.account.Database(cmd.Name)
	if !ok {
		return "Database not found or access denied"
	}
	i.current = db
	i.logger.Debug(ctx, "database opened", "owner", db.Owner(), "db", db.Name(), "path", db.Path())

	lines := []string{fmt.Sprintf("Opened database '%s'", cmd.Name), "Available tables:"}
	for _, t := range db.Tables() {
		lines = append(lines, "- "+t.Name())
	}
	return strings.Join(lines, "\n")
}

// handleDrop drops a table of the open database, or a whole database when
// none is open.
func (i *Interpreter) handleDrop(ctx context.Context, cmd Command) string {
	if i.current != nil {
		return i.dropTable(ctx, cmd.Name)
	}
	return i.dropDatabase(ctx, cmd.Name)
}

func (i *Interpreter) dropTable(ctx context.Context, name string) string {
	err := i.current.DropTable(ctx, name)
	switch {
	case err == nil:
		return fmt.Sprintf("Table '%s' dropped successfully", name)
	case errors.Is(err, common.ErrNotFound):
		return fmt.Sprintf("Table '%s' not found", name)
	case errors.Is(err, os.ErrNotExist):
		return "Table file not found"
	default:
		i.logger.Error(ctx, "drop table", "table", name, "error", err)
		return "Failed to drop table"
	}
}

func (i *Interpreter) dropDatabase(ctx context.Context, name string) string {
	err := i.accounts.DropDatabase(ctx, i.account, name)
	switch {
	case err == nil:
		if i.current != nil && i.current.Name() == name {
			i.current = nil
		}
		return fmt.Sprintf("Database '%s' dropped successfully", name)
	case errors.Is(err, common.ErrNotFound):
		return fmt.Sprintf("Database '%s' not found or access denied", name)
	default:
		i.logger.Error(ctx, "drop database", "db", name, "error", err)
		return "Failed to drop database"
	}
}

func (i *Interpreter) handleCreateTable(ctx context.Context, cmd Command) string {
	_, err := i.current.CreateTable(ctx, cmd.Name, cmd.Fields)
	switch {
	case err == nil:
		return fmt.Sprintf("Table '%s' created successfully", cmd.Name)
	case errors.Is(err, common.ErrAlreadyExists):
		return fmt.Sprintf("Table '%s' already exists", cmd.Name)
	case errors.Is(err, common.ErrInvalidName):
		return fmt.Sprintf("Failed to create table: %v", err)
	case errors.Is(err, storage.ErrEmptySchema):
		return "Failed to create table"
	default:
		i.logger.Error(ctx, "create table", "table", cmd.Name, "error", err)
		return "Failed to create table"
	}
}

func (i *Interpreter) handleInsert(ctx context.Context, cmd Command) string {
	t, ok := i.current.GetTable(cmd.Name)
	if !ok {
		return "Table not found"
	}

	id, err := t.InsertRow(ctx, cmd.Fields)
	switch {
	case err == nil:
		return "Inserted row " + id
	case errors.Is(err, storage.ErrSchemaMismatch):
		return fmt.Sprintf("Failed to insert data: expected %d values, got %d", len(t.Schema()), len(cmd.Fields))
	case errors.Is(err, storage.ErrInvalidValue):
		return "Failed to insert data: values must not contain line breaks"
	default:
		i.logger.Error(ctx, "insert row", "table", cmd.Name, "error", err)
		return "Failed to insert data"
	}
}

// handleDelete validates the target but removes nothing.
func (i *Interpreter) handleDelete(ctx context.Context, cmd Command) string {
	if _, ok := i.current.GetTable(cmd.Name); !ok {
		return "Table not found"
	}
	i.logger.Warn(ctx, "delete is not applied to storage", "table", cmd.Name, "unique_id", cmd.ID)
	return "Record deleted successfully"
}

func (i *Interpreter) handleSelect(ctx context.Context, cmd Command) string {
	t, ok := i.current.GetTable(cmd.Name)
	if !ok {
		return "Table not found"
	}

	header, rows, err := t.Rows(ctx)
	if err != nil {
		i.logger.Error(ctx, "read table", "table", cmd.Name, "path", t.Path(), "error", err)
		return "Failed to open table file"
	}

	return selectRows(header, rows, cmd.Limit, cmd.Last)
}
