package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/filex"
)

type catalogKey struct {
	owner string
	name  string
}

// Catalog is the single in-process registry of live databases. Opening the
// same (owner, name) twice returns the same *Database.
type Catalog struct {
	layout    filex.Layout
	opts      Options
	databases map[catalogKey]*Database
}

func NewCatalog(layout filex.Layout, opts Options) *Catalog {
	return &Catalog{
		layout:    layout,
		opts:      opts.withDefaults(),
		databases: make(map[catalogKey]*Database),
	}
}

// Open returns the live database, reconstructing it from disk on first use.
// A database whose directory does not exist yet opens with no tables.
func (c *Catalog) Open(ctx context.Context, owner, name string) (*Database, error) {
	if db, ok := c.Lookup(owner, name); ok {
		return db, nil
	}
	if err := common.ValidateName(name); err != nil {
		return nil, err
	}

	db := newDatabase(name, owner, c.layout, c.opts)
	if err := db.loadExistingTables(ctx); err != nil {
		return nil, err
	}

	c.databases[catalogKey{owner, name}] = db
	return db, nil
}

// Create makes the database directory and registers the database. Tables
// already present in a leftover directory are adopted.
func (c *Catalog) Create(ctx context.Context, owner, name string) (*Database, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, err
	}
	if _, ok := c.Lookup(owner, name); ok {
		return nil, fmt.Errorf("database %s: %w", name, common.ErrAlreadyExists)
	}

	if err := filex.EnsureDir(c.layout.DatabasePath(owner, name)); err != nil {
		c.opts.Logger.Error(ctx, "create database", "owner", owner, "db", name, "error", err)
		return nil, err
	}

	db, err := c.Open(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	c.opts.Logger.Info(ctx, "database created", "owner", owner, "db", name)
	return db, nil
}

// Lookup returns a database that is already live.
func (c *Catalog) Lookup(owner, name string) (*Database, bool) {
	db, ok := c.databases[catalogKey{owner, name}]
	return db, ok
}

// Drop removes the database directory with all its tables and forgets it.
func (c *Catalog) Drop(ctx context.Context, owner, name string) error {
	if err := common.ValidateName(name); err != nil {
		return err
	}

	path := c.layout.DatabasePath(owner, name)
	if err := os.RemoveAll(path); err != nil {
		c.opts.Logger.Error(ctx, "drop database", "path", path, "error", err)
		return fmt.Errorf("remove %s: %w", path, err)
	}

	delete(c.databases, catalogKey{owner, name})
	c.opts.Logger.Info(ctx, "database dropped", "owner", owner, "db", name)
	return nil
}
