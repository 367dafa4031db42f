// Package rdumperr defines the sentinel error kinds shared across rdump's
// core packages, along with the CLIError wrapper used for JSON-mode fatal
// output.
package rdumperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checking, one per error kind in the
// core's error handling design.
var (
	ErrQueryParse      = errors.New("query parse error")
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrInvalidValue    = errors.New("invalid predicate value")
	ErrRoot            = errors.New("root directory error")
	ErrFileAccess      = errors.New("file access error")
	ErrParseTree       = errors.New("syntax tree parse error")
	ErrInterrupt       = errors.New("search interrupted")
)

// Code is a machine-readable error identifier for JSON output.
type Code string

const (
	CodeNone             Code = ""
	CodeQueryParse       Code = "ERR_QUERY_PARSE"
	CodeUnknownPredicate Code = "ERR_UNKNOWN_PREDICATE"
	CodeInvalidValue     Code = "ERR_INVALID_VALUE"
	CodeRoot             Code = "ERR_ROOT"
	CodeFileAccess       Code = "ERR_FILE_ACCESS"
	CodeParseTree        Code = "ERR_PARSE_TREE"
	CodeInterrupt        Code = "ERR_INTERRUPT"
	CodeUnknown          Code = "ERR_UNKNOWN"
)

// CLIError wraps a fatal error with a machine-readable code for the CLI's
// JSON output mode.
type CLIError struct {
	Code    Code
	Message string
	Pos     int // byte offset, meaningful for CodeQueryParse; -1 otherwise
}

func (e CLIError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at byte %d: %s", e.Code, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Wrap builds a CLIError from a sentinel kind and an underlying cause.
func Wrap(kind error, msg string, cause error) CLIError {
	code := CodeForKind(kind)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return CLIError{Code: code, Message: msg, Pos: -1}
}

// CodeForKind maps a sentinel error to its machine-readable code.
func CodeForKind(kind error) Code {
	switch {
	case errors.Is(kind, ErrQueryParse):
		return CodeQueryParse
	case errors.Is(kind, ErrUnknownPredicate):
		return CodeUnknownPredicate
	case errors.Is(kind, ErrInvalidValue):
		return CodeInvalidValue
	case errors.Is(kind, ErrRoot):
		return CodeRoot
	case errors.Is(kind, ErrFileAccess):
		return CodeFileAccess
	case errors.Is(kind, ErrParseTree):
		return CodeParseTree
	case errors.Is(kind, ErrInterrupt):
		return CodeInterrupt
	default:
		return CodeUnknown
	}
}
