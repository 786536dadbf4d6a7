package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert into users violates
	// the unique index on email (or the primary key on user_id).
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a lookup matches no user record.
	ErrUserNotFound = errors.New("no user was found")

	// ErrFileAlreadyExists is returned when a file id is reused.
	ErrFileAlreadyExists = errors.New("file already exists")

	// ErrFileNotFound is returned when a file does not exist or belongs to
	// another user.
	ErrFileNotFound = errors.New("file was not found")

	// ErrBlobNotFound is returned by [BlobStorage] when no blob is stored
	// under the given id.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobID is returned for ids that would escape the blob root.
	ErrInvalidBlobID = errors.New("invalid blob id")

	// ErrUnknownDriver is returned by [NewConnectDB] for unsupported drivers.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
