package codegen

import "strings"

// goTypeFor maps a schema's canonical logical type tag to the Go type a
// generated struct field declares, matching what pkg/codec's layout
// builder expects on the other side of the myra struct tag.
func goTypeFor(logicalType string, optional bool) string {
	base, ok := logicalGoTypes[logicalType]
	if !ok {
		base = "string"
	}
	if optional && logicalType != "bytes" {
		return "*" + base
	}
	return base
}

var logicalGoTypes = map[string]string{
	"string": "string",
	"i32":    "int32",
	"i64":    "int64",
	"bool":   "bool",
	"f32":    "float32",
	"f64":    "float64",
	"bytes":  "[]byte",
}

// exportedFieldName converts a schema field's lowerCamelCase name (the
// IDL surface convention) into the exported Go identifier a generated
// struct declares, e.g. "accountId" -> "AccountID".
func exportedFieldName(name string) string {
	if name == "" {
		return name
	}
	if upper, ok := commonInitialisms[strings.ToLower(lastWord(name))]; ok {
		if len(lastWord(name)) == len(name) {
			return upper
		}
		return strings.ToUpper(name[:1]) + name[1:len(name)-len(lastWord(name))] + upper
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// lastWord returns the trailing run of letters of a camelCase name, used
// to special-case common initialisms like "Id" -> "ID" and "Url" -> "URL".
func lastWord(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] >= 'A' && name[i] <= 'Z' && i != 0 {
			return name[i:]
		}
	}
	return name
}

var commonInitialisms = map[string]string{
	"id":  "ID",
	"url": "URL",
}
