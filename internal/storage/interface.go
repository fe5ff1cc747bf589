package storage

import (
	"context"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// Storage defines the interface for table persistence within a session
type Storage interface {
	// Table operations
	SaveTable(ctx context.Context, table *model.Table) error
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
	DeleteTable(ctx context.Context, id model.TableID) error

	// Active table pointer (one table per process)
	SetActiveTable(ctx context.Context, id model.TableID) error
	GetActiveTable(ctx context.Context) (model.TableID, error)
	ClearActiveTable(ctx context.Context) error
}
