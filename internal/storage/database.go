package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/csvdb/internal/codec"
	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/filex"
	"github.com/dmitrijs2005/csvdb/internal/logging"
)

// Database owns the tables of one (owner, name) pair.
type Database struct {
	name     string
	owner    string
	layout   filex.Layout
	basePath string
	tables   []*Table
	opts     Options
	logger   logging.Logger
}

func newDatabase(name, owner string, layout filex.Layout, opts Options) *Database {
	return &Database{
		name:     name,
		owner:    owner,
		layout:   layout,
		basePath: layout.DatabasePath(owner, name),
		opts:     opts,
		logger:   opts.Logger.With("owner", owner, "db", name),
	}
}

func (d *Database) Name() string { return d.name }

func (d *Database) Owner() string { return d.owner }

func (d *Database) Path() string { return d.basePath }

// Tables returns the table handles in creation/discovery order.
func (d *Database) Tables() []*Table { return slices.Clone(d.tables) }

// CreateTable initializes a new table file and registers it.
func (d *Database) CreateTable(ctx context.Context, name string, schema []string) (*Table, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, err
	}
	for _, field := range schema {
		if err := validateField(field); err != nil {
			return nil, err
		}
	}
	if _, ok := d.GetTable(name); ok {
		return nil, fmt.Errorf("table %s: %w", name, common.ErrAlreadyExists)
	}

	if err := filex.EnsureDir(d.basePath); err != nil {
		d.logger.Error(ctx, "create table", "table", name, "error", err)
		return nil, err
	}

	t := NewTable(name, schema, d.tablePath(name), d.opts)
	if err := t.Initialize(ctx); err != nil {
		return nil, err
	}

	d.tables = append(d.tables, t)
	d.logger.Info(ctx, "table created", "table", name, "fields", len(schema))
	return t, nil
}

// validateField accepts any field name that survives the header line:
// non-empty, without the delimiter or line breaks.
func validateField(field string) error {
	if field == "" || strings.ContainsAny(field, codec.Delimiter+"\r\n") {
		return fmt.Errorf("%w: field %q", common.ErrInvalidName, field)
	}
	return nil
}

// GetTable looks a table up by name.
func (d *Database) GetTable(name string) (*Table, bool) {
	for _, t := range d.tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// DropTable removes the table's row file and forgets the handle.
func (d *Database) DropTable(ctx context.Context, name string) error {
	t, ok := d.GetTable(name)
	if !ok {
		return fmt.Errorf("table %s: %w", name, common.ErrNotFound)
	}

	err := t.Drop(ctx)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	d.tables = slices.DeleteFunc(d.tables, func(t *Table) bool { return t.Name() == name })
	if err != nil {
		return fmt.Errorf("table file %s: %w", t.Path(), err)
	}

	d.logger.Info(ctx, "table dropped", "table", name)
	return nil
}

func (d *Database) tablePath(table string) string {
	return d.layout.TablePath(d.owner, d.name, table)
}

// loadExistingTables registers every readable row file found in the base
// path. Files whose header cannot be parsed are skipped.
func (d *Database) loadExistingTables(ctx context.Context) error {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("scan %s: %w", d.basePath, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != filex.FileExt {
			continue
		}

		name := strings.TrimSuffix(e.Name(), filex.FileExt)
		t := NewTable(name, nil, d.tablePath(name), d.opts)
		if err := t.Load(ctx); err != nil {
			d.logger.Warn(ctx, "skipping unreadable table", "file", e.Name(), "error", err)
			continue
		}
		d.tables = append(d.tables, t)
	}

	d.logger.Debug(ctx, "tables discovered", "count", len(d.tables))
	return nil
}
