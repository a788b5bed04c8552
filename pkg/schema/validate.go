package schema

import "fmt"

// Validate checks a parsed Schema against the syntactic rules of §4.5.2,
// run before ID assignment. Any violation returns a *SchemaError naming
// the offending element. Validation stops at the first problem found and
// returns only that one (batching is left to the caller, which may call
// Validate repeatedly against fixed-up input during development).
func Validate(s *Schema) error {
	if s.Service == "" {
		return newErr(MissingField, "service", "service name must not be empty")
	}
	if s.ID != nil && *s.ID <= 0 {
		return newErr(MissingField, "service.id", "explicit service id must be positive, got %d", *s.ID)
	}
	if len(s.Methods) == 0 {
		return newErr(MissingField, "service.methods", "service must declare at least one method")
	}

	seenMessageNames := make(map[string]bool)
	for _, m := range s.Messages {
		if m.Name == "" {
			return newErr(MissingField, "messages[].name", "message name must not be empty")
		}
		if seenMessageNames[m.Name] {
			return newErr(DuplicateMessageName, fmt.Sprintf("messages.%s", m.Name), "message name %q is declared more than once", m.Name)
		}
		seenMessageNames[m.Name] = true
		if m.ID != nil && *m.ID <= 0 {
			return newErr(MissingField, fmt.Sprintf("messages.%s.id", m.Name), "explicit message id must be positive, got %d", *m.ID)
		}

		if len(m.Fields) == 0 {
			return newErr(MissingField, fmt.Sprintf("messages.%s.fields", m.Name), "message %q must declare at least one field", m.Name)
		}
		for _, f := range m.Fields {
			if f.Name == "" {
				return newErr(MissingField, fmt.Sprintf("messages.%s.fields[]", m.Name), "field name must not be empty")
			}
			if !SupportedTypes[f.Type] {
				return newErr(UnknownFieldType, fmt.Sprintf("messages.%s.fields.%s", m.Name, f.Name), "unsupported field type %q", f.Type)
			}
		}
	}

	seenMethodIDs := make(map[int]string)
	for _, method := range s.Methods {
		path := fmt.Sprintf("methods.%s", method.Name)
		if method.Name == "" {
			return newErr(MissingField, "methods[].name", "method name must not be empty")
		}
		if method.ID != nil {
			if *method.ID <= 0 {
				return newErr(MissingField, path+".id", "explicit method id must be positive, got %d", *method.ID)
			}
			if owner, used := seenMethodIDs[*method.ID]; used {
				return newErr(DuplicateMethodId, path, "method id %d is already used by method %q", *method.ID, owner)
			}
			seenMethodIDs[*method.ID] = method.Name
		}
		if method.Request == "" {
			return newErr(MissingField, path+".request", "method %q must name a request message", method.Name)
		}
		if method.Response == "" {
			return newErr(MissingField, path+".response", "method %q must name a response message", method.Name)
		}
		if _, ok := seenMessageNames[method.Request]; !ok {
			return newErr(UndefinedMessageReference, path+".request", "method %q references undefined message %q", method.Name, method.Request)
		}
		if _, ok := seenMessageNames[method.Response]; !ok {
			return newErr(UndefinedMessageReference, path+".response", "method %q references undefined message %q", method.Name, method.Response)
		}
	}

	return nil
}
