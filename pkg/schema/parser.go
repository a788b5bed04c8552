package schema

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// rawField/rawMethod/rawMessage/rawSchema mirror the YAML surface format
// from §6.2 before type-name normalization (int32/int64/boolean/float/
// double map onto the codec's i32/i64/bool/f32/f64 tags).
type rawField struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Optional bool        `yaml:"optional"`
	Default  interface{} `yaml:"default"`
}

type rawMessage struct {
	Name   string     `yaml:"name"`
	ID     *int       `yaml:"id"`
	Fields []rawField `yaml:"fields"`
}

type rawMethod struct {
	Name     string `yaml:"name"`
	ID       *int   `yaml:"id"`
	Request  string `yaml:"request"`
	Response string `yaml:"response"`
}

type rawSchema struct {
	Service  string       `yaml:"service"`
	ID       *int         `yaml:"id"`
	Methods  []rawMethod  `yaml:"methods"`
	Messages []rawMessage `yaml:"messages"`
}

// surfaceTypeToTag maps the YAML-surface type spelling from §6.2 onto the
// codec's canonical logical-type tags from §4.3.1.
var surfaceTypeToTag = map[string]string{
	"string":  "string",
	"int32":   "i32",
	"int64":   "i64",
	"boolean": "bool",
	"float":   "f32",
	"double":  "f64",
	"bytes":   "bytes",
}

// ParseFile reads and parses a YAML IDL document at path, then validates
// it per §4.5.2.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema file %q", path)
	}
	return ParseString(data)
}

// ParseString parses a YAML IDL document, then validates it per §4.5.2.
func ParseString(data []byte) (*Schema, error) {
	var raw rawSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing schema YAML")
	}

	s := &Schema{Service: raw.Service, ID: raw.ID}

	for _, rm := range raw.Methods {
		s.Methods = append(s.Methods, Method{
			Name:     rm.Name,
			ID:       rm.ID,
			Request:  rm.Request,
			Response: rm.Response,
		})
	}

	for _, rmsg := range raw.Messages {
		msg := Message{Name: rmsg.Name, ID: rmsg.ID}
		for _, rf := range rmsg.Fields {
			f := Field{
				Name:     rf.Name,
				Type:     normalizeType(rf.Type),
				Optional: rf.Optional,
			}
			if rf.Default != nil {
				f.HasDefault = true
				f.Default = stringifyDefault(rf.Default)
			}
			msg.Fields = append(msg.Fields, f)
		}
		s.Messages = append(s.Messages, msg)
	}

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// normalizeType lowercases and maps a YAML-surface type name to the
// codec's canonical tag. Unknown spellings pass through unchanged so
// Validate can report them precisely.
func normalizeType(t string) string {
	lower := strings.ToLower(strings.TrimSpace(t))
	if tag, ok := surfaceTypeToTag[lower]; ok {
		return tag
	}
	// Already-canonical spellings (i32, i64, bool, f32, f64) pass straight
	// through case-folded, matching §4.5.2's "case-insensitive" rule.
	return lower
}

func stringifyDefault(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	default:
		return yamlScalarString(x)
	}
}

func yamlScalarString(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
