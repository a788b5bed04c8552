package codegen

import (
	"fmt"
	"strings"

	"github.com/mvp-express/core/pkg/ids"
	"github.com/mvp-express/core/pkg/schema"
)

// generateDispatcher renders a dispatcher type that routes a decoded
// method id to the matching service call, the Go analogue of the Java
// generator's dispatcher class and its switch-on-methodId.
func generateDispatcher(s *schema.Schema, assignment *ids.Assignment, packageName string) string {
	var b strings.Builder
	dispatcherName := s.Service + "Dispatcher"

	fmt.Fprintf(&b, "package %s\n\n", packageName)
	b.WriteString("import (\n\t\"context\"\n\t\"fmt\"\n)\n\n")
	fmt.Fprintf(&b, "// %s routes a decoded request to the %s implementation\n", dispatcherName, s.Service)
	b.WriteString("// registered for its method id.\n")
	fmt.Fprintf(&b, "type %s struct {\n\tservice %s\n}\n\n", dispatcherName, s.Service)
	fmt.Fprintf(&b, "// New%s wraps a %s implementation for dispatch.\n", dispatcherName, s.Service)
	fmt.Fprintf(&b, "func New%s(service %s) *%s {\n\treturn &%s{service: service}\n}\n\n",
		dispatcherName, s.Service, dispatcherName, dispatcherName)

	fmt.Fprintf(&b, "// Dispatch invokes the method registered for methodID.\n")
	fmt.Fprintf(&b, "func (d *%s) Dispatch(ctx context.Context, methodID uint16, request any) (any, error) {\n", dispatcherName)
	b.WriteString("\tswitch methodID {\n")
	for _, m := range s.Methods {
		id := assignment.MethodIDs[m.Name]
		fmt.Fprintf(&b, "\tcase %d:\n", id)
		fmt.Fprintf(&b, "\t\treq, ok := request.(*%s)\n", m.Request)
		b.WriteString("\t\tif !ok {\n")
		fmt.Fprintf(&b, "\t\t\treturn nil, fmt.Errorf(\"dispatch %s: unexpected request type %%T\", request)\n", m.Name)
		b.WriteString("\t\t}\n")
		fmt.Fprintf(&b, "\t\treturn d.service.%s(ctx, req)\n", m.Name)
	}
	b.WriteString("\tdefault:\n")
	b.WriteString("\t\treturn nil, fmt.Errorf(\"unknown method id: %d\", methodID)\n")
	b.WriteString("\t}\n}\n")

	return b.String()
}
