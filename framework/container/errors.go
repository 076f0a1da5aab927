package container

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for the four failure kinds the engine produces.
// Concrete error values carry context and unwrap to one of these, so
// callers can branch with errors.Is and still inspect details with
// errors.As.
var (
	// ErrNotFound is the kind for aliases absent from every backend
	// (or from the explicitly named one) when building on demand is
	// disallowed or impossible.
	ErrNotFound = errors.New("container: not found")

	// ErrContainer is the kind for generic resolution failures:
	// invalid extractors, parameter/extractor mismatches, duplicate
	// registrations, malformed extraction parameters.
	ErrContainer = errors.New("container: error")

	// ErrStorageNotFound is the kind for explicitly requested storage
	// backends that were never registered.
	ErrStorageNotFound = errors.New("container: storage not found")

	// ErrCircular is the kind for aliases re-appended to an active
	// dependency chain.
	ErrCircular = errors.New("container: circular dependency")
)

// NotFoundError reports an alias no backend could answer for.
type NotFoundError struct{ Alias string }

// Error implements the error interface.
func (e NotFoundError) Error() string {
	// Example: container: alias "db" not found
	return "container: alias " + strconv.Quote(e.Alias) + " not found"
}

// Unwrap makes the error match ErrNotFound under errors.Is.
func (e NotFoundError) Unwrap() error { return ErrNotFound }

// StorageNotFoundError reports an explicitly requested backend name
// that is not registered with the engine.
type StorageNotFoundError struct{ Storage string }

// Error implements the error interface.
func (e StorageNotFoundError) Error() string {
	// Example: container: storage "values" not registered
	return "container: storage " + strconv.Quote(e.Storage) + " not registered"
}

// Unwrap makes the error match ErrStorageNotFound under errors.Is.
func (e StorageNotFoundError) Unwrap() error { return ErrStorageNotFound }

// CircularDependencyError reports an alias that re-entered the active
// dependency chain. Chain is the full resolution path at the moment of
// failure, offending alias excluded.
type CircularDependencyError struct {
	Alias string
	Chain []string
}

// Error implements the error interface.
func (e CircularDependencyError) Error() string {
	// Example: container: circular dependency on "a" (chain: a -> b)
	return "container: circular dependency on " + strconv.Quote(e.Alias) +
		" (chain: " + strings.Join(e.Chain, " -> ") + ")"
}

// Unwrap makes the error match ErrCircular under errors.Is.
func (e CircularDependencyError) Unwrap() error { return ErrCircular }

// DuplicateKeyError reports a second registration under an occupied
// key. Registry names the registry involved ("storage", "extractor",
// "type", "func").
type DuplicateKeyError struct {
	Registry string
	Key      string
}

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	// Example: container: duplicate storage key "values"
	return "container: duplicate " + e.Registry + " key " + strconv.Quote(e.Key)
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e DuplicateKeyError) Unwrap() error { return ErrContainer }

// ExtractorMismatchError reports a definition whose parameter variant
// is not the one its selected extractor validates.
type ExtractorMismatchError struct {
	Extractor string
	Parameter ParameterKind
}

// Error implements the error interface.
func (e ExtractorMismatchError) Error() string {
	// Example: container: extractor "callable" cannot extract value parameter
	return "container: extractor " + strconv.Quote(e.Extractor) +
		" cannot extract " + e.Parameter.String() + " parameter"
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e ExtractorMismatchError) Unwrap() error { return ErrContainer }

// UnknownExtractorError reports a definition selecting an extractor
// key the engine has no extractor for.
type UnknownExtractorError struct{ Key string }

// Error implements the error interface.
func (e UnknownExtractorError) Error() string {
	return "container: unknown extractor " + strconv.Quote(e.Key)
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e UnknownExtractorError) Unwrap() error { return ErrContainer }

// InvalidParameterError reports a malformed extraction parameter or a
// malformed argument to a registration call. Parameters validate their
// shape at construction, so this surfaces before any extraction runs.
type InvalidParameterError struct{ Reason string }

// Error implements the error interface.
func (e InvalidParameterError) Error() string {
	return "container: invalid parameter: " + e.Reason
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e InvalidParameterError) Unwrap() error { return ErrContainer }

// UnknownTypeError reports a type name with no registered constructor.
type UnknownTypeError struct{ TypeName string }

// Error implements the error interface.
func (e UnknownTypeError) Error() string {
	return "container: type " + strconv.Quote(e.TypeName) + " not registered"
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e UnknownTypeError) Unwrap() error { return ErrContainer }

// UnknownCallableError reports a named callable with no registered
// function.
type UnknownCallableError struct{ Name string }

// Error implements the error interface.
func (e UnknownCallableError) Error() string {
	return "container: callable " + strconv.Quote(e.Name) + " not registered"
}

// Unwrap makes the error match ErrContainer under errors.Is.
func (e UnknownCallableError) Unwrap() error { return ErrContainer }
