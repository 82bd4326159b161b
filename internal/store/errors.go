package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameOrEmailTaken is returned when an attempt to register a new
	// user fails because the username or the email address is already
	// registered. Comparison is exact-match (case-sensitive).
	ErrUsernameOrEmailTaken = errors.New("username or email already exists")

	// ErrUserNotFound is returned when a lookup by username or email
	// produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrEventNotFound is returned when a queried or mutated event does not
	// exist for the given (event_id, user_id) pair. It deliberately covers
	// both "absent" and "owned by someone else" so that callers cannot
	// distinguish the two cases.
	ErrEventNotFound = errors.New("event not found or no permission")

	// ErrNoFieldsToUpdate is returned when a partial event update carries no
	// updatable fields after the identity fields have been excluded.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty update field set).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
