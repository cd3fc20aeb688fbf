package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a user lookup produces an empty
	// result set. Callers must not surface the distinction between this and
	// a bad password to the end user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrIdentityNotFound is returned when an identity lookup (by id, type,
	// or secret hash) matches no row.
	ErrIdentityNotFound = errors.New("identity was not found")

	// ErrIdentityAlreadyExists is returned when an INSERT violates the
	// unique (type, secret) index. Given token entropy this indicates either
	// a duplicated insert or a catastrophically broken random source.
	ErrIdentityAlreadyExists = errors.New("identity already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. no usable filter columns).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrTransientDBFault additionally wraps an execution error when the
	// backend's [ErrorClassificator] reports the driver error as retryable
	// (connection loss, deadlock rollback). Callers with a natural retry
	// point, such as periodic workers, may treat it as temporary.
	ErrTransientDBFault = errors.New("transient database fault")
)
