package storage

import "github.com/dmitrijs2005/csvdb/internal/logging"

// Options are shared by every Database and Table opened through a Catalog.
type Options struct {
	Logger logging.Logger
	IDs    IDGenerator

	// MaxIDAttempts bounds how many candidate ids InsertRow draws before
	// giving up with ErrIDCollision.
	MaxIDAttempts int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.IDs == nil {
		o.IDs = NewIDGenerator()
	}
	if o.MaxIDAttempts <= 0 {
		o.MaxIDAttempts = DefaultMaxIDAttempts
	}
	return o
}
