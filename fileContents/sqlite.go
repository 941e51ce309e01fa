package fileContents

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DocumentsTable is the table FromSQLite reads from.
const DocumentsTable = "documents"

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		name    TEXT NOT NULL PRIMARY KEY,
		content TEXT NOT NULL
	);
`

// dsn builds an absolute file: URI for dbPath so that characters such as '?'
// or '#' in the path are escaped rather than read as parameters.
func dsn(dbPath string, mode string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", err
	}
	uri := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: url.Values{"mode": {mode}}.Encode()}
	return uri.String(), nil
}

func connect(dbPath string, mode string) (*sql.DB, error) {
	source, err := dsn(dbPath, mode)
	if err != nil {
		return nil, fmt.Errorf("connect: cannot resolve `%s`: %w", dbPath, err)
	}
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("connect: cannot connect to db `%s`: %w", dbPath, err)
	}
	return db, nil
}

// FromSQLite loads every row of the documents table as (name, content).
func FromSQLite(dbPath string) (map[string]string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("FromSQLite: %w", err)
	}
	db, err := connect(dbPath, "ro")
	if err != nil {
		return nil, fmt.Errorf("FromSQLite: %w", err)
	}
	defer db.Close()
	rows, err := db.Query("SELECT name, content FROM " + DocumentsTable + ";")
	if err != nil {
		return nil, fmt.Errorf("FromSQLite: cannot load data from the db `%s`, table: %s: %w", dbPath, DocumentsTable, err)
	}
	defer rows.Close()
	fileContents := map[string]string{}
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("FromSQLite: cannot parse the rows into name string, content string: %w", err)
		}
		fileContents[name] = content
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FromSQLite: %w", err)
	}
	if len(fileContents) == 0 {
		return nil, fmt.Errorf("FromSQLite: `%s`: %w", dbPath, ErrNoDocuments)
	}
	return fileContents, nil
}

// ToSQLite stores corpus in the documents table of dbPath, replacing rows
// with the same name. The database is created when missing.
func ToSQLite(dbPath string, corpus map[string]string) error {
	db, err := connect(dbPath, "rwc")
	if err != nil {
		return fmt.Errorf("ToSQLite: %w", err)
	}
	defer db.Close()
	if _, err := db.Exec(createDocumentsTable); err != nil {
		return fmt.Errorf("ToSQLite: cannot create the table: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("ToSQLite: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO documents (name, content) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET content = excluded.content
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ToSQLite: cannot prepare the statement: %w", err)
	}
	defer stmt.Close()
	for name, content := range corpus {
		if _, err := stmt.Exec(name, content); err != nil {
			tx.Rollback()
			return fmt.Errorf("ToSQLite: cannot store `%s`: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ToSQLite: %w", err)
	}
	return nil
}
