package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert violates the unique
	// email index.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound is returned when a lookup by id or email matches no user.
	ErrUserNotFound = errors.New("no user was found")

	// ErrItemNotFound is returned when a read, update or delete targets an
	// item id that does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrSessionNotFound is returned by the client session repository when
	// nothing has been saved yet.
	ErrSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
