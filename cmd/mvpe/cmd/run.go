package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mvp-express/core/pkg/ids"
	"github.com/mvp-express/core/pkg/schema"
)

// Exit codes from §6.4's build-tool surface.
const (
	exitSuccess           = 0
	exitValidationError   = 1
	exitLockDrift         = 2
	exitIOFailure         = 3
	exitProbingExhaustion = 4
)

// runGenerate implements the generate(schemaPath, outputDir, basePackage,
// mode, lockfilePath) contract: parse, validate, assign ids, emit code.
func runGenerate(schemaPath, outputDir, basePackage string, mode ids.Mode, lockfilePath string) (files []string, exitCode int, err error) {
	if lockfilePath == "" {
		lockfilePath = filepath.Join(filepath.Dir(schemaPath), ".mvpe.ids.lock")
	}

	if container == nil {
		return nil, exitIOFailure, errors.New("dependency container not initialized")
	}

	parser := container.GetSchemaParserFactory().CreateSchemaParser()
	s, err := parser.ParseFile(schemaPath)
	if err != nil {
		return nil, classifyError(err), err
	}

	assigner := container.GetIDAssignerFactory().CreateIDAssigner()
	assignment, err := assigner.AssignAndValidate(s, lockfilePath, mode)
	if err != nil {
		return nil, classifyError(err), err
	}

	generator := container.GetCodeGeneratorFactory().CreateCodeGenerator()
	written, err := generator.Generate(s, assignment, basePackage, outputDir)
	if err != nil {
		return nil, classifyError(err), err
	}

	return written, exitSuccess, nil
}

// classifyError maps a typed subsystem error onto §6.4's exit codes.
func classifyError(err error) int {
	var idErr *ids.IdError
	if errors.As(err, &idErr) {
		switch idErr.Kind {
		case ids.ProbeExhausted:
			return exitProbingExhaustion
		case ids.LockDrift:
			return exitLockDrift
		default:
			return exitValidationError
		}
	}

	var schemaErr *schema.SchemaError
	if errors.As(err, &schemaErr) {
		return exitValidationError
	}

	return exitIOFailure
}

func parseMode(s string) (ids.Mode, error) {
	switch s {
	case "off":
		return ids.OFF, nil
	case "check":
		return ids.CHECK, nil
	case "write":
		return ids.WRITE, nil
	default:
		return ids.OFF, fmt.Errorf("unknown mode %q (must be off, check, or write)", s)
	}
}
