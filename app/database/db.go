package database

import "database/sql"

// Queryer is the subset of database/sql shared by *sql.DB and *sql.Tx. Query
// functions that take a Queryer can run standalone or inside a transaction.
type Queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}
