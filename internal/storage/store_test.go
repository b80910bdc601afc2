package storage

import (
	"context"
	"database/sql"
	"testing"
)

func TestOpenConfiguresEveryConnection(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	// Hold several connections open at once so the pool has to dial new
	// ones; the busy timeout must come from the DSN on each of them.
	var conns []*sql.Conn
	for i := 0; i < 3; i++ {
		conn, err := s.db.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		conns = append(conns, conn)
	}
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	for i, conn := range conns {
		var timeout int
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("conn %d: query busy_timeout: %v", i, err)
		}
		if timeout != 5000 {
			t.Fatalf("conn %d: busy_timeout = %d, want 5000", i, timeout)
		}
	}
}
