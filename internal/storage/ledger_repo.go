package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lifetrack/internal/core"
)

// LedgerRepo persists ledger aggregates keyed by id. The facade only ever
// uses core.DefaultLedgerID; the keying exists so multi-tenancy needs no
// contract change later.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(s *Store) *LedgerRepo {
	return &LedgerRepo{db: s.db}
}

// Load returns the aggregate or core.ErrLedgerNotFound. It never creates.
func (r *LedgerRepo) Load(ctx context.Context, id string) (*core.Ledger, error) {
	return loadLedger(ctx, r.db, id)
}

// LoadOrCreate returns the aggregate, inserting a zeroed default one if
// none exists yet (get-or-create read semantics).
func (r *LedgerRepo) LoadOrCreate(ctx context.Context, id string) (*core.Ledger, error) {
	l, err := r.Load(ctx, id)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, core.ErrLedgerNotFound) {
		return nil, err
	}

	l = core.NewLedger(id)
	if err := r.save(ctx, r.db, l); err != nil {
		return nil, fmt.Errorf("create default ledger: %w", err)
	}
	slog.InfoContext(ctx, "Created default ledger", "ledger_id", id)
	return l, nil
}

// Update runs one load-modify-store round trip inside a single write
// transaction. With createIfMissing the missing aggregate is built fresh
// (mutating writes like set-capital and add-income get-or-create); without
// it the caller gets core.ErrLedgerNotFound (removals and clears).
func (r *LedgerRepo) Update(ctx context.Context, id string, createIfMissing bool, fn func(*core.Ledger) error) (*core.Ledger, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLedger(ctx, tx, id)
	if errors.Is(err, core.ErrLedgerNotFound) && createIfMissing {
		l = core.NewLedger(id)
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if err := fn(l); err != nil {
		return nil, err
	}

	if err := r.save(ctx, tx, l); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger update: %w", err)
	}
	return l, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func loadLedger(ctx context.Context, q querier, id string) (*core.Ledger, error) {
	var body string
	err := q.QueryRowContext(ctx, `SELECT body FROM ledgers WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrLedgerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", id, err)
	}

	var l core.Ledger
	if err := json.Unmarshal([]byte(body), &l); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", id, err)
	}
	if l.MonthlyIncome == nil {
		l.MonthlyIncome = []core.Entry{}
	}
	if l.MonthlyExpenses == nil {
		l.MonthlyExpenses = []core.Entry{}
	}
	return &l, nil
}

func (r *LedgerRepo) save(ctx context.Context, q querier, l *core.Ledger) error {
	body, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger %s: %w", l.ID, err)
	}

	now := time.Now().UTC()
	_, err = q.ExecContext(ctx, `
		INSERT INTO ledgers (id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		l.ID, string(body), now, now)
	if err != nil {
		return fmt.Errorf("save ledger %s: %w", l.ID, err)
	}
	return nil
}
