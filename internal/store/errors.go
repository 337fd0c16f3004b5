package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when no sync document exists for the
	// requested secret key.
	ErrDocumentNotFound = errors.New("sync document not found")

	// ErrSettingsNotFound is returned when the client settings record has not
	// been created yet.
	ErrSettingsNotFound = errors.New("settings record not found")

	// ErrUnknownCollection is returned when a planner collection name is not
	// part of the snapshot layout.
	ErrUnknownCollection = errors.New("unknown planner collection")

	// ErrUnsupportedBackend is returned when the DSN scheme selects no known
	// document store.
	ErrUnsupportedBackend = errors.New("unsupported document store backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a driver-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrBeginningTransaction is returned when the driver cannot start a new
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
