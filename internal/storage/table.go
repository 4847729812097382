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
	"github.com/dmitrijs2005/csvdb/internal/filex"
	"github.com/dmitrijs2005/csvdb/internal/logging"
)

// Table is one schema-bound row file.
type Table struct {
	name   string
	schema []string
	path   string
	opts   Options
	logger logging.Logger
}

// NewTable builds a handle for the row file at path. Nothing is touched on
// disk until Initialize or Load is called.
func NewTable(name string, schema []string, path string, opts Options) *Table {
	opts = opts.withDefaults()
	return &Table{
		name:   name,
		schema: slices.Clone(schema),
		path:   path,
		opts:   opts,
		logger: opts.Logger.With("table", name),
	}
}

func (t *Table) Name() string { return t.name }

func (t *Table) Path() string { return t.path }

// Schema returns a copy of the field names.
func (t *Table) Schema() []string { return slices.Clone(t.schema) }

// Initialize creates the row file and writes the header line. Any existing
// file at the path is replaced.
func (t *Table) Initialize(ctx context.Context) error {
	if len(t.schema) == 0 {
		return ErrEmptySchema
	}

	if err := filex.EnsureDir(filepath.Dir(t.path)); err != nil {
		t.logger.Error(ctx, "initialize table", "path", t.path, "error", err)
		return err
	}

	if err := codec.WriteLines(t.path, []string{codec.EncodeHeader(t.schema)}); err != nil {
		t.logger.Error(ctx, "initialize table", "path", t.path, "error", err)
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// Load recovers the schema from the header of an existing row file.
func (t *Table) Load(ctx context.Context) error {
	header, err := codec.ReadFirstLine(t.path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	schema, err := codec.DecodeHeader(header)
	if err != nil {
		return fmt.Errorf("%s: %w", t.path, err)
	}

	t.schema = schema
	return nil
}

// InsertRow appends values under a freshly generated id and returns that id.
// Nothing is written when the value count does not match the schema.
func (t *Table) InsertRow(ctx context.Context, values []string) (string, error) {
	if len(values) != len(t.schema) {
		return "", fmt.Errorf("%w: expected %d values, got %d", ErrSchemaMismatch, len(t.schema), len(values))
	}
	for _, v := range values {
		if strings.ContainsAny(v, codec.Delimiter+"\r\n") {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, v)
		}
	}

	existing, err := t.IDs(ctx)
	if err != nil {
		return "", err
	}

	id, err := t.nextID(existing)
	if err != nil {
		t.logger.Error(ctx, "generate row id", "attempts", t.opts.MaxIDAttempts, "existing", len(existing))
		return "", err
	}

	if err := codec.AppendLine(t.path, codec.EncodeRow(id, values)); err != nil {
		t.logger.Error(ctx, "append row", "path", t.path, "error", err)
		return "", fmt.Errorf("append row: %w", err)
	}

	t.logger.Debug(ctx, "row inserted", "unique_id", id)
	return id, nil
}

func (t *Table) nextID(existing map[string]struct{}) (string, error) {
	for range t.opts.MaxIDAttempts {
		id := t.opts.IDs.NewID()
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

// Rows returns the header line and every data line in file order.
func (t *Table) Rows(ctx context.Context) (string, []string, error) {
	lines, err := codec.ReadLines(t.path)
	if err != nil {
		return "", nil, fmt.Errorf("read rows: %w", err)
	}
	if len(lines) == 0 {
		return "", nil, fmt.Errorf("%s: %w", t.path, codec.ErrEmptyHeader)
	}
	return lines[0], lines[1:], nil
}

// IDs returns the set of row ids currently stored.
func (t *Table) IDs(ctx context.Context) (map[string]struct{}, error) {
	_, rows, err := t.Rows(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		ids[codec.RowID(r)] = struct{}{}
	}
	return ids, nil
}

// Drop removes the row file. A file that is already gone is reported as
// os.ErrNotExist.
func (t *Table) Drop(ctx context.Context) error {
	if err := os.Remove(t.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			t.logger.Error(ctx, "drop table", "path", t.path, "error", err)
		}
		return err
	}
	return nil
}
