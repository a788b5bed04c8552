package codegen

import (
	"fmt"
	"strings"

	"github.com/mvp-express/core/pkg/schema"
)

// generateServiceInterface renders the Go interface implementers of a
// service must satisfy, the Go analogue of the Java generator's
// per-service interface.
func generateServiceInterface(s *schema.Schema, packageName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", packageName)
	fmt.Fprintf(&b, "import \"context\"\n\n")
	fmt.Fprintf(&b, "// %s is a generated service interface.\n", s.Service)
	fmt.Fprintf(&b, "type %s interface {\n", s.Service)
	for _, m := range s.Methods {
		fmt.Fprintf(&b, "\t%s(ctx context.Context, request *%s) (*%s, error)\n", m.Name, m.Request, m.Response)
	}
	b.WriteString("}\n")

	return b.String()
}
