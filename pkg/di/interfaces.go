// Package di provides dependency injection container
package di

import (
	"github.com/mvp-express/core/pkg/ids"
	"github.com/mvp-express/core/pkg/schema"
)

// SchemaParser parses an IDL document into a Schema tree.
type SchemaParser interface {
	ParseFile(path string) (*schema.Schema, error)
}

// SchemaParserFactory creates SchemaParsers.
type SchemaParserFactory interface {
	CreateSchemaParser() SchemaParser
}

// IDAssigner resolves a schema's service/method/message ids against a
// lockfile under a given allocator mode.
type IDAssigner interface {
	AssignAndValidate(s *schema.Schema, lockfilePath string, mode ids.Mode) (*ids.Assignment, error)
}

// IDAssignerFactory creates IDAssigners.
type IDAssignerFactory interface {
	CreateIDAssigner() IDAssigner
}

// CodeGenerator emits generated source for a schema and its resolved
// assignment.
type CodeGenerator interface {
	Generate(s *schema.Schema, assignment *ids.Assignment, basePackage, outputDir string) ([]string, error)
}

// CodeGeneratorFactory creates CodeGenerators.
type CodeGeneratorFactory interface {
	CreateCodeGenerator() CodeGenerator
}
