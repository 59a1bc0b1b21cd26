package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that concurrent requirement
// listings do not block or see half-written rows while writes are in progress.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	clients := NewSQLClientRepo(database)
	categories := NewSQLCategoryRepo(database)
	reqs := NewSQLRequirementRepo(database)

	client := testutil.NewTestClient("Acme")
	require.NoError(t, clients.Create(ctx, client))
	cat := testutil.NewTestCategory("Web")
	require.NoError(t, categories.Create(ctx, cat))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			r := testutil.NewTestRequirement(client.ID, cat.ID, fmt.Sprintf("Req-%d", i))
			if err := reqs.Create(ctx, r); err != nil {
				t.Errorf("writer: create requirement %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				views, err := reqs.List(ctx, RequirementFilter{}, domain.IncludeRelations)
				if err != nil {
					t.Errorf("reader %d: list requirements: %v", reader, err)
					return
				}
				for _, v := range views {
					if v.ID == 0 || v.ClientName != "Acme" {
						t.Errorf("reader %d: got inconsistent row %+v", reader, v)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	views, err := reqs.List(ctx, RequirementFilter{}, domain.IncludeNone)
	require.NoError(t, err)
	assert.Len(t, views, 20)
}
