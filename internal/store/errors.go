package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/lcsouza2/fittude-data-repo/pkg"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInternal = errors.New("internal error")
)

// Error is the failure every repository returns. Kind is one of ErrNotFound,
// ErrConflict or ErrInternal; Reason is the caller-facing message and Err the
// storage cause, if any.
type Error struct {
	Kind   error
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == ErrInternal {
		// storage details stay behind Unwrap
		return ErrInternal.Error()
	}
	return e.Reason
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(reason string) error {
	return &Error{Kind: ErrNotFound, Reason: reason}
}

func Conflict(reason string, cause error) error {
	return &Error{Kind: ErrConflict, Reason: reason, Err: cause}
}

func Internal(reason string, cause error) error {
	return &Error{Kind: ErrInternal, Reason: reason, Err: cause}
}

// Reason returns the caller-facing reason of a store error, or a generic
// message for anything else.
func Reason(err error) string {
	var storeErr *Error
	if errors.As(err, &storeErr) && storeErr.Kind != ErrInternal {
		return storeErr.Reason
	}
	return ErrInternal.Error()
}

// Op is the kind of statement whose error is being translated.
type Op int

const (
	OpRead Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// Translate maps a storage error of a single-statement operation on entity
// into the error taxonomy:
//   - integrity constraint violations become Conflict, logged at debug level
//     with the violated constraint
//   - no returned row is NotFound for reads, updates and deletes scoped by key
//     and owner, and Internal for creates (an insert must return its key)
//   - everything else is Internal
func Translate(op Op, entity string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if op == OpCreate {
			return Internal(fmt.Sprintf("failed to create %s", entity), err)
		}
		return NotFound(fmt.Sprintf("%s not found", entity))
	case pkg.IsIntegrityViolationError(err):
		reason := conflictReason(op, entity, err)
		log.WithError(err).
			WithField("constraint", pkg.PgConstraintName(err)).
			Debugln(reason)
		return Conflict(reason, err)
	default:
		reason := fmt.Sprintf("%s %s", opVerb(op), entity)
		log.WithError(err).Errorln(reason)
		return Internal(reason, err)
	}
}

func conflictReason(op Op, entity string, err error) string {
	switch {
	case pkg.IsUniqueViolationError(err):
		return fmt.Sprintf("%s already exists", entity)
	case pkg.IsForeignKeyViolationError(err) && op == OpDelete:
		return fmt.Sprintf("%s is still referenced", entity)
	case pkg.IsForeignKeyViolationError(err):
		return fmt.Sprintf("%s references a row that does not exist", entity)
	default:
		return fmt.Sprintf("%s violates a data constraint", entity)
	}
}

func opVerb(op Op) string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "read"
	}
}
