package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/hangbot/internal/database"
	"github.com/example/hangbot/pkg/models"
)

// memoryStore is an in-memory stand-in for the SQL store, good enough
// for exercising the session state machine without a database
type memoryStore struct {
	nextID  int64
	tables  map[string][]database.Row
	failErr error // when set, the next mutating call fails once
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tables: make(map[string][]database.Row)}
}

// gameDefaults mirrors the column defaults of the games table schema
var gameDefaults = database.Fields{
	"lost_health":   int64(DefaultLives),
	"input_letters": "",
	"status":        int64(models.StatusInProgress),
	"point":         int64(0),
	"time_finish":   int64(0),
}

func (m *memoryStore) Insert(ctx context.Context, table string, data database.Fields) (int64, error) {
	if err := m.takeFailure(); err != nil {
		return 0, err
	}

	m.nextID++
	row := database.Row{"id": m.nextID}
	if table == "games" {
		for column, value := range gameDefaults {
			row[column] = value
		}
	}
	for column, value := range data {
		row[column] = value
	}
	m.tables[table] = append(m.tables[table], row)
	return m.nextID, nil
}

func (m *memoryStore) SelectOne(ctx context.Context, table string, columns []string, where database.Fields) (database.Row, error) {
	for _, row := range m.tables[table] {
		if matches(row, where) {
			return copyRow(row), nil
		}
	}
	return nil, nil
}

func (m *memoryStore) SelectAll(ctx context.Context, table string, columns []string, where database.Fields) ([]database.Row, error) {
	var result []database.Row
	for _, row := range m.tables[table] {
		if matches(row, where) {
			result = append(result, copyRow(row))
		}
	}
	return result, nil
}

func (m *memoryStore) Update(ctx context.Context, table string, data, where database.Fields) error {
	if err := m.takeFailure(); err != nil {
		return err
	}

	for _, row := range m.tables[table] {
		if matches(row, where) {
			for column, value := range data {
				row[column] = value
			}
		}
	}
	return nil
}

func (m *memoryStore) takeFailure() error {
	if m.failErr != nil {
		err := m.failErr
		m.failErr = nil
		return err
	}
	return nil
}

func matches(row database.Row, where database.Fields) bool {
	for column, value := range where {
		if fmt.Sprint(row[column]) != fmt.Sprint(value) {
			return false
		}
	}
	return true
}

func copyRow(row database.Row) database.Row {
	out := make(database.Row, len(row))
	for column, value := range row {
		out[column] = value
	}
	return out
}

// fakeCatalog is a fixed in-memory word catalog
type fakeCatalog struct {
	words      map[int64]models.Word
	categories map[int64]models.Category
}

func (c *fakeCatalog) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	if word, ok := c.words[id]; ok {
		return &word, nil
	}
	return nil, nil
}

func (c *fakeCatalog) IDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(c.words))
	for id := range c.words {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (c *fakeCatalog) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	if category, ok := c.categories[id]; ok {
		return &category, nil
	}
	return nil, nil
}
