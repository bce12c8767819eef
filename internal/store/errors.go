package store

import "errors"

// Sentinel errors returned by tree stores. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrTreeNotFound is returned by Load when nothing is stored at the
	// requested path.
	ErrTreeNotFound = errors.New("tree not found")

	// ErrTreeCorrupted is returned by Load when something is stored at the
	// requested path but it is not a JSON object.
	ErrTreeCorrupted = errors.New("stored tree is corrupted")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// storage driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrStoreUnavailable wraps a transient database failure that persisted
	// through a retry. The stored data is presumed intact.
	ErrStoreUnavailable = errors.New("tree store temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// statement fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when reading the body of a tree row fails.
	ErrScanningRow = errors.New("failed to scan tree row")
)
