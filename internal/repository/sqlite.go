package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sairajesh711/premier-top6/internal/models"
)

// Managed table names.
const (
	TableVotes     = "votes"
	TableTrollLogs = "troll_logs"
)

// Repository provides data access methods backed by SQLite.
type Repository struct {
	db       *sql.DB
	notifier *notifier
	clubs    []string // normalized column names, canonical order
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{
		db:       db,
		notifier: newNotifier(),
		clubs:    models.ClubKeys(),
	}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations. The votes table carries one integer
// column per club so every row has the full uniform schema.
func (r *Repository) migrate() error {
	var cols []string
	for _, club := range r.clubs {
		cols = append(cols, fmt.Sprintf("%s INTEGER NOT NULL CHECK (%s BETWEEN 1 AND %d)",
			club, club, models.SentinelRank))
	}

	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			%s
		)`, strings.Join(cols, ",\n\t\t\t")),
		`CREATE TABLE IF NOT EXISTS troll_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			picks TEXT NOT NULL,
			reason TEXT NOT NULL,
			ip TEXT NOT NULL DEFAULT 'unknown'
		)`,
	}

	for _, m := range migrations {
		if _, err := r.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// InsertVote persists one accepted ballot. The record must hold a rank for
// every known club; a partial record is rejected before touching the store.
func (r *Repository) InsertVote(ctx context.Context, record models.RankRecord) error {
	args := make([]interface{}, 0, len(r.clubs))
	placeholders := make([]string, 0, len(r.clubs))
	for _, club := range r.clubs {
		rank, ok := record[club]
		if !ok {
			return fmt.Errorf("rank record missing club %q", club)
		}
		args = append(args, rank)
		placeholders = append(placeholders, "?")
	}

	query := fmt.Sprintf("INSERT INTO votes (%s) VALUES (%s)",
		strings.Join(r.clubs, ", "), strings.Join(placeholders, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	r.notifier.publish(Change{Table: TableVotes, Event: EventInsert})
	return nil
}

// ListVotes returns every persisted ballot as a full rank record.
func (r *Repository) ListVotes(ctx context.Context) ([]models.RankRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM votes ORDER BY id", strings.Join(r.clubs, ", "))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RankRecord
	for rows.Next() {
		ranks := make([]int, len(r.clubs))
		dest := make([]interface{}, len(r.clubs))
		for i := range ranks {
			dest[i] = &ranks[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := make(models.RankRecord, len(r.clubs))
		for i, club := range r.clubs {
			record[club] = ranks[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountVotes returns the total number of persisted ballots.
func (r *Repository) CountVotes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM votes").Scan(&count)
	return count, err
}

// InsertTrollLog appends one audit entry for a blocked ballot. Picks are
// stored as a JSON array in a text column.
func (r *Repository) InsertTrollLog(ctx context.Context, record models.TrollLogRecord) error {
	picksJSON, err := json.Marshal(record.Picks)
	if err != nil {
		return err
	}

	ip := record.IP
	if ip == "" {
		ip = "unknown"
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO troll_logs (picks, reason, ip) VALUES (?, ?, ?)",
		string(picksJSON), record.Reason, ip)
	if err != nil {
		return err
	}

	r.notifier.publish(Change{Table: TableTrollLogs, Event: EventInsert})
	return nil
}

// ListTrollLogs returns all troll audit entries, oldest first.
func (r *Repository) ListTrollLogs(ctx context.Context) ([]models.TrollLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT picks, reason, ip FROM troll_logs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TrollLogRecord
	for rows.Next() {
		var picksJSON string
		var record models.TrollLogRecord
		if err := rows.Scan(&picksJSON, &record.Reason, &record.IP); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(picksJSON), &record.Picks); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Subscribe registers fn for row-level changes on table matching mask.
func (r *Repository) Subscribe(table string, mask Event, fn func(Change)) (*Subscription, error) {
	if table != TableVotes && table != TableTrollLogs {
		return nil, ErrUnknownTable
	}
	return r.notifier.subscribe(table, mask, fn), nil
}

// Unsubscribe removes a subscription; safe to call more than once.
func (r *Repository) Unsubscribe(sub *Subscription) {
	r.notifier.unsubscribe(sub)
}
