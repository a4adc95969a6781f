package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation matches a Postgres unique-constraint failure on the
// named constraint. The domain invariants (one winner per prize, one
// score per judge per project, one assignment per judge per team) lean
// on these constraints instead of check-then-write sequences.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, constraint)
}
