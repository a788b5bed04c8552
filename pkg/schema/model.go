// Package schema holds the format-agnostic IDL model described in §3 and
// §4.5.1: a Schema tree of one Service, its Methods, and its Messages. The
// YAML front-end lives in parser.go; any other front-end that produces the
// same tree is equally valid.
package schema

// SupportedTypes is the closed set of field logical types §4.5.2 allows,
// using the codec's canonical tags rather than the YAML surface spelling.
var SupportedTypes = map[string]bool{
	"string": true,
	"i32":    true,
	"i64":    true,
	"bool":   true,
	"f32":    true,
	"f64":    true,
	"bytes":  true,
}

// Field is one declared field of a Message: a name, a canonical logical
// type tag, whether it is nullable, and an optional default literal.
type Field struct {
	Name     string
	Type     string
	Optional bool
	Default  string
	HasDefault bool
}

// Message is a named, ordered list of Fields. ID is the optional explicit
// numeric id from §3's data model; the YAML surface in §6.2 omits it from
// its worked example but does not forbid it, and the allocator (§4.4.3)
// needs somewhere to read an explicit message id from.
type Message struct {
	Name   string
	ID     *int
	Fields []Field
}

// Method is one RPC operation: a name, an optional explicit numeric id,
// and the names of its request/response Messages.
type Method struct {
	Name     string
	ID       *int
	Request  string
	Response string
}

// Schema is the root of the IDL tree for one service: its name, an
// optional explicit numeric id, its Methods, and the Messages they
// reference.
type Schema struct {
	Service  string
	ID       *int
	Methods  []Method
	Messages []Message
}

// MessageByName returns the Message definition with the given name, if
// present.
func (s *Schema) MessageByName(name string) (*Message, bool) {
	for i := range s.Messages {
		if s.Messages[i].Name == name {
			return &s.Messages[i], true
		}
	}
	return nil, false
}
