package codegen

import (
	"fmt"
	"strings"

	"github.com/mvp-express/core/pkg/schema"
)

// generateMessageStruct renders one message definition as a Go struct
// tagged for the codec's reflective layout builder, the Go analogue of
// the Java generator's per-message DTO record.
func generateMessageStruct(msg *schema.Message, packageName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", packageName)
	fmt.Fprintf(&b, "// %s is a generated message type.\n", msg.Name)
	fmt.Fprintf(&b, "type %s struct {\n", msg.Name)
	for _, f := range msg.Fields {
		goType := goTypeFor(f.Type, f.Optional)
		fmt.Fprintf(&b, "\t%s %s `myra:\"%s,%s\"`\n", exportedFieldName(f.Name), goType, f.Name, f.Type)
	}
	b.WriteString("}\n")

	return b.String()
}
