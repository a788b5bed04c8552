package di

import (
	"github.com/mvp-express/core/pkg/codegen"
	"github.com/mvp-express/core/pkg/ids"
	"github.com/mvp-express/core/pkg/schema"
)

// DefaultSchemaParserFactory is the default implementation of SchemaParserFactory
type DefaultSchemaParserFactory struct{}

// NewSchemaParserFactory creates a new schema parser factory
func NewSchemaParserFactory() SchemaParserFactory {
	return &DefaultSchemaParserFactory{}
}

// CreateSchemaParser creates a schema parser
func (f *DefaultSchemaParserFactory) CreateSchemaParser() SchemaParser {
	return &yamlSchemaParser{}
}

type yamlSchemaParser struct{}

func (p *yamlSchemaParser) ParseFile(path string) (*schema.Schema, error) {
	return schema.ParseFile(path)
}

// DefaultIDAssignerFactory is the default implementation of IDAssignerFactory
type DefaultIDAssignerFactory struct{}

// NewIDAssignerFactory creates a new id assigner factory
func NewIDAssignerFactory() IDAssignerFactory {
	return &DefaultIDAssignerFactory{}
}

// CreateIDAssigner creates an id assigner
func (f *DefaultIDAssignerFactory) CreateIDAssigner() IDAssigner {
	return &lockfileIDAssigner{}
}

type lockfileIDAssigner struct{}

func (a *lockfileIDAssigner) AssignAndValidate(s *schema.Schema, lockfilePath string, mode ids.Mode) (*ids.Assignment, error) {
	return ids.AssignAndValidate(s, lockfilePath, mode)
}

// DefaultCodeGeneratorFactory is the default implementation of CodeGeneratorFactory
type DefaultCodeGeneratorFactory struct{}

// NewCodeGeneratorFactory creates a new code generator factory
func NewCodeGeneratorFactory() CodeGeneratorFactory {
	return &DefaultCodeGeneratorFactory{}
}

// CreateCodeGenerator creates a code generator
func (f *DefaultCodeGeneratorFactory) CreateCodeGenerator() CodeGenerator {
	return &goCodeGenerator{}
}

type goCodeGenerator struct{}

func (g *goCodeGenerator) Generate(s *schema.Schema, assignment *ids.Assignment, basePackage, outputDir string) ([]string, error) {
	return codegen.Generate(s, assignment, basePackage, outputDir)
}
