package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens, creating it if needed, the report database at dbPath and
// returns a connection pool for it. One write transaction per run keeps the
// pool small; NumCPU is plenty.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	// sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report pool at %s: %w", dbPath, err)
	}
	return pool, nil
}
