package storage

import (
	"testing"

	"github.com/dmitrijs2005/csvdb/internal/filex"
	"github.com/dmitrijs2005/csvdb/internal/logging"
)

// sequenceIDs hands out ids from a fixed list, repeating the last one.
type sequenceIDs struct {
	ids   []string
	calls int
}

func (s *sequenceIDs) NewID() string {
	i := s.calls
	if i >= len(s.ids) {
		i = len(s.ids) - 1
	}
	s.calls++
	return s.ids[i]
}

func testOptions() Options {
	return Options{Logger: logging.Discard(), IDs: NewSeededIDGenerator(42)}
}

func newTestCatalog(t *testing.T) (*Catalog, filex.Layout) {
	t.Helper()
	layout := filex.NewLayout(t.TempDir())
	return NewCatalog(layout, testOptions()), layout
}
