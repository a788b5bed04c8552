// Package di provides dependency injection container
package di

// Container holds all the dependencies the build driver needs: a schema
// parser, an id assigner, and a code generator.
type Container struct {
	schemaParserFactory  SchemaParserFactory
	idAssignerFactory    IDAssignerFactory
	codeGeneratorFactory CodeGeneratorFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		schemaParserFactory:  NewSchemaParserFactory(),
		idAssignerFactory:    NewIDAssignerFactory(),
		codeGeneratorFactory: NewCodeGeneratorFactory(),
	}
}

// GetSchemaParserFactory returns the schema parser factory
func (c *Container) GetSchemaParserFactory() SchemaParserFactory {
	return c.schemaParserFactory
}

// GetIDAssignerFactory returns the id assigner factory
func (c *Container) GetIDAssignerFactory() IDAssignerFactory {
	return c.idAssignerFactory
}

// GetCodeGeneratorFactory returns the code generator factory
func (c *Container) GetCodeGeneratorFactory() CodeGeneratorFactory {
	return c.codeGeneratorFactory
}

// SetSchemaParserFactory allows overriding the schema parser factory (for testing)
func (c *Container) SetSchemaParserFactory(factory SchemaParserFactory) {
	c.schemaParserFactory = factory
}

// SetIDAssignerFactory allows overriding the id assigner factory (for testing)
func (c *Container) SetIDAssignerFactory(factory IDAssignerFactory) {
	c.idAssignerFactory = factory
}

// SetCodeGeneratorFactory allows overriding the code generator factory (for testing)
func (c *Container) SetCodeGeneratorFactory(factory CodeGeneratorFactory) {
	c.codeGeneratorFactory = factory
}
