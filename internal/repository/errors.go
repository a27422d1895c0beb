// Package repository holds the data access logic for every entity.  Reads
// of an absent row return ErrNotFound; unique-key rejections come back as
// ErrSeatTaken or ErrEmailExists so higher layers can tell a refusal from
// a storage failure.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// ErrSeatTaken is returned when a ticket insert hits the
// (session_id, row_number, place_number) unique key.
var ErrSeatTaken = errors.New("seat already taken")

// ErrEmailExists is returned when a user insert hits the email unique key.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isUniqueViolation reports whether err comes from a unique index.  Other
// drivers (SQLite in tests) are matched by message.
func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

type scanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
