package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db             *sql.DB
	insertStmt     *sql.Stmt
	topStmt        *sql.Stmt
	topSpeciesStmt *sql.Stmt
	now            func() time.Time
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) is the recommended pairing with WAL
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection serializes every profile transaction.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.prepare(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) prepare() error {
	var err error
	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO catches (guild_id, user_id, species, size_hundredths, weight_hundredths, value_cents, caught_at)
		VALUES (?,?,?,?,?,?,?)
	`)
	if err != nil {
		return err
	}

	s.topStmt, err = s.db.Prepare(`
		SELECT id, guild_id, user_id, species, size_hundredths, weight_hundredths, value_cents, caught_at
		FROM catches
		WHERE guild_id = ?
		ORDER BY size_hundredths DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		return err
	}

	s.topSpeciesStmt, err = s.db.Prepare(`
		SELECT id, guild_id, user_id, species, size_hundredths, weight_hundredths, value_cents, caught_at
		FROM catches
		WHERE guild_id = ? AND species = ? COLLATE NOCASE
		ORDER BY size_hundredths DESC, id DESC
		LIMIT ?
	`)
	return err
}

func (s *SQLiteStore) Close() error {
	for _, st := range []*sql.Stmt{s.insertStmt, s.topStmt, s.topSpeciesStmt} {
		if st != nil {
			_ = st.Close()
		}
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			guild_id       TEXT    NOT NULL,
			user_id        TEXT    NOT NULL,
			balance_cents  INTEGER NOT NULL DEFAULT 0,
			total_catches  INTEGER NOT NULL DEFAULT 0,
			species        TEXT    NOT NULL DEFAULT '[]',
			inventory      TEXT    NOT NULL,
			updated_at     INTEGER NOT NULL,
			PRIMARY KEY (guild_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS catches (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id           TEXT    NOT NULL,
			user_id            TEXT    NOT NULL,
			species            TEXT    NOT NULL,
			size_hundredths    INTEGER NOT NULL,
			weight_hundredths  INTEGER NOT NULL,
			value_cents        INTEGER NOT NULL,
			caught_at          INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leader_all
			ON catches (guild_id, size_hundredths DESC, id DESC);

		CREATE INDEX IF NOT EXISTS idx_leader_species
			ON catches (guild_id, species COLLATE NOCASE, size_hundredths DESC, id DESC);
	`)
	return err
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadProfile(ctx context.Context, q querier, id player.ID) (player.Profile, error) {
	var (
		balance, total   int64
		species, invJSON string
	)
	err := q.QueryRowContext(ctx, `
		SELECT balance_cents, total_catches, species, inventory
		FROM profiles
		WHERE guild_id = ? AND user_id = ?
	`, id.Guild, id.User).Scan(&balance, &total, &species, &invJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return player.Profile{}, ErrNotFound
	}
	if err != nil {
		return player.Profile{}, err
	}

	p := player.Profile{ID: id, Balance: fish.Money(balance), TotalCatches: int(total)}
	if err := json.Unmarshal([]byte(species), &p.Species); err != nil {
		return player.Profile{}, fmt.Errorf("decoding species of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(invJSON), &p.Inventory); err != nil {
		return player.Profile{}, fmt.Errorf("decoding inventory of %s: %w", id, err)
	}
	return p, nil
}

func (s *SQLiteStore) saveProfile(ctx context.Context, tx *sql.Tx, p player.Profile) error {
	species := p.Species
	if species == nil {
		species = []string{}
	}
	speciesJSON, err := json.Marshal(species)
	if err != nil {
		return err
	}
	invJSON, err := json.Marshal(p.Inventory)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (guild_id, user_id, balance_cents, total_catches, species, inventory, updated_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET
			balance_cents = excluded.balance_cents,
			total_catches = excluded.total_catches,
			species       = excluded.species,
			inventory     = excluded.inventory,
			updated_at    = excluded.updated_at
	`, p.ID.Guild, p.ID.User, int64(p.Balance), p.TotalCatches, string(speciesJSON), string(invJSON), s.now().Unix())
	return err
}

// update loads the profile, applies fn and writes it back in one
// transaction. extra runs in the same transaction after the write.
func (s *SQLiteStore) update(ctx context.Context, id player.ID, fn func(p *player.Profile) error, extra func(tx *sql.Tx) error) (player.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return player.Profile{}, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := loadProfile(ctx, tx, id)
	if errors.Is(err, ErrNotFound) {
		p = player.NewProfile(id)
	} else if err != nil {
		return player.Profile{}, err
	}

	if err := fn(&p); err != nil {
		return player.Profile{}, err
	}
	if err := s.saveProfile(ctx, tx, p); err != nil {
		return player.Profile{}, err
	}
	if extra != nil {
		if err := extra(tx); err != nil {
			return player.Profile{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return player.Profile{}, err
	}
	return p, nil
}

func (s *SQLiteStore) Profile(ctx context.Context, id player.ID) (player.Profile, error) {
	return loadProfile(ctx, s.db, id)
}

func (s *SQLiteStore) GetLoadout(ctx context.Context, id player.ID) (gear.Loadout, error) {
	p, err := s.Profile(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return gear.DefaultLoadout(), nil
	case err != nil:
		return gear.Loadout{}, err
	}
	return p.Inventory.Loadout(), nil
}

func (s *SQLiteStore) ConsumeActiveBait(ctx context.Context, id player.ID) error {
	_, err := s.update(ctx, id, consumeBait, nil)
	return err
}

func (s *SQLiteStore) ClearActiveBait(ctx context.Context, id player.ID) error {
	_, err := s.update(ctx, id, clearBait, nil)
	return err
}

func (s *SQLiteStore) UpdateInventory(ctx context.Context, id player.ID, fn func(inv *gear.Inventory) error) (player.Profile, error) {
	return s.update(ctx, id, func(p *player.Profile) error { return fn(&p.Inventory) }, nil)
}

func (s *SQLiteStore) Credit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error) {
	p, err := s.update(ctx, id, credit(amount), nil)
	return p.Balance, err
}

func (s *SQLiteStore) Debit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error) {
	p, err := s.update(ctx, id, debit(amount), nil)
	return p.Balance, err
}

func (s *SQLiteStore) Purchase(ctx context.Context, id player.ID, price fish.Money, fn func(inv *gear.Inventory) error) (player.Profile, error) {
	return s.update(ctx, id, purchase(price, fn), nil)
}

// RecordCatch updates the collection and appends to the catch history
// atomically.
func (s *SQLiteStore) RecordCatch(ctx context.Context, id player.ID, f *fish.Fish) (bool, error) {
	var fresh bool
	c := newCatch(id, f, s.now())
	_, err := s.update(ctx, id,
		func(p *player.Profile) error {
			fresh = p.RecordCatch(f.Name())
			return nil
		},
		func(tx *sql.Tx) error {
			_, err := tx.StmtContext(ctx, s.insertStmt).ExecContext(ctx,
				c.GuildId,
				c.UserId,
				c.Species,
				hundredths(c.Size),
				hundredths(c.Weight),
				int64(c.Value),
				c.CaughtAt.Unix(),
			)
			return err
		},
	)
	if err != nil {
		return false, err
	}
	return fresh, nil
}

func (s *SQLiteStore) TopBySize(ctx context.Context, guild string, limit int) ([]fish.Catch, error) {
	limit = normLimit(limit)
	rows, err := s.topStmt.QueryContext(ctx, guild, limit)
	if err != nil {
		return nil, err
	}
	return scanCatches(rows, limit)
}

func (s *SQLiteStore) TopBySizeSpecies(ctx context.Context, guild, species string, limit int) ([]fish.Catch, error) {
	limit = normLimit(limit)
	rows, err := s.topSpeciesStmt.QueryContext(ctx, guild, species, limit)
	if err != nil {
		return nil, err
	}
	return scanCatches(rows, limit)
}

func scanCatches(rows *sql.Rows, limit int) ([]fish.Catch, error) {
	defer rows.Close()

	out := make([]fish.Catch, 0, limit)
	for rows.Next() {
		var (
			c                   fish.Catch
			size, weight, value int64
			caughtUnix          int64
		)
		if err := rows.Scan(&c.Id, &c.GuildId, &c.UserId, &c.Species, &size, &weight, &value, &caughtUnix); err != nil {
			return nil, err
		}
		c.Size = float64(size) / 100.0
		c.Weight = float64(weight) / 100.0
		c.Value = fish.Money(value)
		c.CaughtAt = time.Unix(caughtUnix, 0).UTC()
		out = append(out, c)
	}

	return out, rows.Err()
}
