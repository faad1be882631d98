package blacklist

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresStore persists the blacklist in a single-column table,
// selected when DB_CONNECTION is set.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the table exists.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS blacklist (username VARCHAR(50) PRIMARY KEY)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Load() ([]string, error) {
	rows, err := p.db.Query("SELECT username FROM blacklist")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Save replaces the stored set with the given one in one transaction.
func (p *PostgresStore) Save(names []string) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM blacklist"); err != nil {
		tx.Rollback()
		return err
	}
	for _, name := range names {
		if _, err := tx.Exec("INSERT INTO blacklist (username) VALUES ($1)", name); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
