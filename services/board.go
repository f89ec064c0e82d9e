package services

import (
	"sort"
	"sync"

	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/repository"
)

// Board holds the in-memory view of the floor that the API serves. It is
// updated from two sources that converge on the same mapping: an optimistic
// single-table apply after each successful local write, and a wholesale
// refresh whenever the change feed reports any write to the tables relation.
// The wholesale refresh deliberately avoids per-field merge logic; change
// volume is human-paced and the read is bounded by the size of the floor.
type Board struct {
	repo *repository.TableRepository

	mu     sync.RWMutex
	tables map[uint]models.Table
}

func NewBoard(repo *repository.TableRepository) *Board {
	return &Board{
		repo:   repo,
		tables: make(map[uint]models.Table),
	}
}

// Refresh discards the current mapping and replaces it with the full table
// list from the store. The last refresh always wins over any earlier
// optimistic apply.
func (b *Board) Refresh() error {
	tables, err := b.repo.ListTables()
	if err != nil {
		return err
	}

	fresh := make(map[uint]models.Table, len(tables))
	for _, t := range tables {
		fresh[t.ID] = t
	}

	b.mu.Lock()
	b.tables = fresh
	b.mu.Unlock()
	return nil
}

// ApplyLocal records a table the caller just wrote successfully, so the
// board reflects it without waiting for the change feed to come around.
func (b *Board) ApplyLocal(table models.Table) {
	b.mu.Lock()
	b.tables[table.ID] = table
	b.mu.Unlock()
}

func (b *Board) Get(id uint) (models.Table, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	table, ok := b.tables[id]
	return table, ok
}

// Snapshot returns the tables ordered by table number for rendering.
func (b *Board) Snapshot() []models.Table {
	b.mu.RLock()
	tables := make([]models.Table, 0, len(b.tables))
	for _, t := range b.tables {
		tables = append(tables, t)
	}
	b.mu.RUnlock()

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].TableNumber < tables[j].TableNumber
	})
	return tables
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tables)
}
