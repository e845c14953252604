package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unklstewy/flapsim/pkg/config"
)

// fakeDriverName is registered for tests that go through Connect.
const fakeDriverName = "flapsim-fake"

func init() {
	sql.Register(fakeDriverName, fakeDriver{})
}

// fakeRun is one row of sweep_runs with its samples and best configuration.
type fakeRun struct {
	id       int64
	variant  string
	model    string
	reynolds float64
	created  time.Time
	samples  [][]driver.Value
	best     []driver.Value
}

// fakeStore is an in-memory stand-in for the sweep tables. It understands
// exactly the statements the repository issues.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	runs    []*fakeRun
	commits int

	// failCommit fails the numbered commit attempts (1-based)
	failCommit map[int]error

	// failBestAt fails the numbered best_configurations insert (1-based)
	failBestAt  int
	bestInserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{failCommit: make(map[int]error)}
}

func (s *fakeStore) runCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

func (s *fakeStore) sampleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.runs {
		n += len(r.samples)
	}
	return n
}

func (s *fakeStore) bestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.runs {
		if r.best != nil {
			n++
		}
	}
	return n
}

// newTestDB opens a DB backed by a fresh store.
func newTestDB(t *testing.T) (*fakeStore, *DB) {
	t.Helper()
	store := newFakeStore()
	sqlDB := sql.OpenDB(fakeConnector{store: store})
	t.Cleanup(func() { sqlDB.Close() })
	return store, &DB{DB: sqlDB, config: config.DefaultConfig().Database}
}

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{store: newFakeStore()}, nil
}

type fakeConnector struct {
	store *fakeStore
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{store: c.store}, nil
}

func (c fakeConnector) Driver() driver.Driver {
	return fakeDriver{}
}

type fakeConn struct {
	store *fakeStore
	tx    *fakeTx
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: strings.TrimSpace(query)}, nil
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	if c.tx != nil {
		return nil, fmt.Errorf("transaction already open")
	}
	c.tx = &fakeTx{conn: c}
	return c.tx, nil
}

// fakeTx buffers inserted runs until commit.
type fakeTx struct {
	conn    *fakeConn
	pending []*fakeRun
}

func (tx *fakeTx) Commit() error {
	s := tx.conn.store
	tx.conn.tx = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits++
	if err, ok := s.failCommit[s.commits]; ok {
		return err
	}
	s.runs = append(s.runs, tx.pending...)
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.conn.tx = nil
	return nil
}

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (st *fakeStmt) Close() error {
	return nil
}

func (st *fakeStmt) NumInput() int {
	return -1
}

// findRun looks in the open transaction first, then in committed rows.
// Callers hold the store lock.
func (st *fakeStmt) findRun(id int64) *fakeRun {
	if st.conn.tx != nil {
		for _, r := range st.conn.tx.pending {
			if r.id == id {
				return r
			}
		}
	}
	for _, r := range st.conn.store.runs {
		if r.id == id {
			return r
		}
	}
	return nil
}

func (st *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	s := st.conn.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case strings.HasPrefix(st.query, "CREATE"):
		return driver.RowsAffected(0), nil

	case strings.HasPrefix(st.query, "COPY"):
		if len(args) == 0 {
			return driver.RowsAffected(0), nil
		}
		run := st.findRun(args[0].(int64))
		if run == nil {
			return nil, fmt.Errorf("no run %v", args[0])
		}
		run.samples = append(run.samples, args[2:])
		return driver.RowsAffected(1), nil

	case strings.HasPrefix(st.query, "INSERT INTO best_configurations"):
		s.bestInserts++
		if s.bestInserts == s.failBestAt {
			return nil, fmt.Errorf(`pq: null value in column "optimal_angle"`)
		}
		run := st.findRun(args[0].(int64))
		if run == nil {
			return nil, fmt.Errorf("no run %v", args[0])
		}
		run.best = args[1:]
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unexpected exec: %s", st.query)
}

func (st *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	s := st.conn.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case st.query == "SELECT 1":
		return &fakeRows{cols: []string{"?column?"}, vals: [][]driver.Value{{int64(1)}}}, nil

	case strings.HasPrefix(st.query, "SELECT COUNT(*) FROM"):
		table := strings.TrimPrefix(st.query, "SELECT COUNT(*) FROM ")
		var n int
		switch table {
		case "sweep_runs":
			n = len(s.runs)
		case "sweep_samples":
			for _, r := range s.runs {
				n += len(r.samples)
			}
		case "best_configurations":
			for _, r := range s.runs {
				if r.best != nil {
					n++
				}
			}
		}
		return &fakeRows{cols: []string{"count"}, vals: [][]driver.Value{{int64(n)}}}, nil

	case strings.HasPrefix(st.query, "INSERT INTO sweep_runs"):
		if st.conn.tx == nil {
			return nil, fmt.Errorf("run insert outside a transaction")
		}
		s.nextID++
		run := &fakeRun{
			id:       s.nextID,
			variant:  args[0].(string),
			model:    args[1].(string),
			reynolds: args[2].(float64),
			created:  args[3].(time.Time),
		}
		st.conn.tx.pending = append(st.conn.tx.pending, run)
		return &fakeRows{cols: []string{"id"}, vals: [][]driver.Value{{run.id}}}, nil

	case strings.HasPrefix(st.query, "SELECT r.id"):
		return st.listRuns(args[0].(string), args[1].(int64)), nil

	case strings.HasPrefix(st.query, "SELECT variant, model, reynolds"):
		rows := &fakeRows{cols: []string{"variant", "model", "reynolds"}}
		if run := st.findRun(args[0].(int64)); run != nil {
			rows.vals = append(rows.vals, []driver.Value{run.variant, run.model, run.reynolds})
		}
		return rows, nil

	case strings.HasPrefix(st.query, "SELECT angle_deg"):
		rows := &fakeRows{cols: []string{"angle_deg", "lift", "drag", "lift_to_drag"}}
		if run := st.findRun(args[0].(int64)); run != nil {
			rows.vals = append(rows.vals, run.samples...)
		}
		return rows, nil

	case strings.HasPrefix(st.query, "SELECT DISTINCT ON"):
		return st.latestBest(), nil
	}
	return nil, fmt.Errorf("unexpected query: %s", st.query)
}

// newestFirst returns committed runs ordered by created_at DESC, id DESC.
func (st *fakeStmt) newestFirst() []*fakeRun {
	runs := append([]*fakeRun(nil), st.conn.store.runs...)
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].created.Equal(runs[j].created) {
			return runs[i].created.After(runs[j].created)
		}
		return runs[i].id > runs[j].id
	})
	return runs
}

func (st *fakeStmt) listRuns(filter string, limit int64) driver.Rows {
	wanted := make(map[string]bool)
	for _, v := range strings.Split(strings.Trim(filter, "{}"), ",") {
		if v = strings.Trim(v, `"`); v != "" {
			wanted[v] = true
		}
	}

	rows := &fakeRows{cols: []string{"id", "variant", "model", "reynolds", "created_at", "count"}}
	for _, r := range st.newestFirst() {
		if len(wanted) > 0 && !wanted[r.variant] {
			continue
		}
		if int64(len(rows.vals)) >= limit {
			break
		}
		rows.vals = append(rows.vals, []driver.Value{r.id, r.variant, r.model, r.reynolds, r.created, int64(len(r.samples))})
	}
	return rows
}

func (st *fakeStmt) latestBest() driver.Rows {
	rows := &fakeRows{cols: []string{"variant", "optimal_index", "optimal_angle",
		"max_lift_to_drag", "lift_coefficient", "drag_coefficient"}}
	seen := make(map[string]bool)
	for _, r := range st.newestFirst() {
		if r.best == nil || seen[r.variant] {
			continue
		}
		seen[r.variant] = true
		rows.vals = append(rows.vals, r.best)
	}
	return rows
}

type fakeRows struct {
	cols []string
	vals [][]driver.Value
	next int
}

func (r *fakeRows) Columns() []string {
	return r.cols
}

func (r *fakeRows) Close() error {
	return nil
}

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.vals) {
		return io.EOF
	}
	copy(dest, r.vals[r.next])
	r.next++
	return nil
}
