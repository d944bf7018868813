package database

import (
	"database/sql"
)

type PgParleyRepository struct {
	conn *sql.DB
}

func NewPgParleyRepository(dsn string) (*PgParleyRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgParleyRepository{conn: db}, nil
}

func (db *PgParleyRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgParleyRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
