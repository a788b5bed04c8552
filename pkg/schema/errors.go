package schema

import "fmt"

// Kind enumerates the SchemaError taxonomy from the error handling design.
type Kind int

const (
	MissingField Kind = iota
	UnknownFieldType
	DuplicateMethodId
	DuplicateMessageName
	UndefinedMessageReference
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case UnknownFieldType:
		return "UnknownFieldType"
	case DuplicateMethodId:
		return "DuplicateMethodId"
	case DuplicateMessageName:
		return "DuplicateMessageName"
	case UndefinedMessageReference:
		return "UndefinedMessageReference"
	default:
		return "Unknown"
	}
}

// SchemaError names the offending element (its path within the schema) so
// the build driver can produce an actionable diagnostic line.
type SchemaError struct {
	Kind Kind
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Msg)
}

func (e *SchemaError) Is(target error) bool {
	other, ok := target.(*SchemaError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(kind Kind, path, format string, args ...any) *SchemaError {
	return &SchemaError{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}
