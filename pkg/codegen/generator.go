// Package codegen emits Go source from a parsed schema and its resolved
// id assignment: one file declaring the service interface, one file per
// message struct, and one file declaring a dispatcher that routes a decoded
// method id to the right service call.
package codegen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mvp-express/core/pkg/ids"
	"github.com/mvp-express/core/pkg/schema"
)

// Generate writes the generated package for s/assignment into a directory
// under outputDir built from every element of basePackage (so
// "express.mvp.generated" becomes outputDir/express/mvp/generated),
// returning the list of files it wrote.
func Generate(s *schema.Schema, assignment *ids.Assignment, basePackage, outputDir string) ([]string, error) {
	packageDir, packageName, err := resolvePackageDir(basePackage, outputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(packageDir, 0750); err != nil {
		return nil, errors.Wrapf(err, "creating package directory %q", packageDir)
	}

	var written []string

	interfacePath := filepath.Join(packageDir, s.Service+".go")
	if err := os.WriteFile(interfacePath, []byte(generateServiceInterface(s, packageName)), 0644); err != nil {
		return nil, errors.Wrapf(err, "writing service interface %q", interfacePath)
	}
	written = append(written, interfacePath)

	for _, msg := range s.Messages {
		msgPath := filepath.Join(packageDir, msg.Name+".go")
		if err := os.WriteFile(msgPath, []byte(generateMessageStruct(&msg, packageName)), 0644); err != nil {
			return nil, errors.Wrapf(err, "writing message struct %q", msgPath)
		}
		written = append(written, msgPath)
	}

	dispatcherPath := filepath.Join(packageDir, strings.ToLower(s.Service)+"_dispatcher.go")
	if err := os.WriteFile(dispatcherPath, []byte(generateDispatcher(s, assignment, packageName)), 0644); err != nil {
		return nil, errors.Wrapf(err, "writing dispatcher %q", dispatcherPath)
	}
	written = append(written, dispatcherPath)

	return written, nil
}

// resolvePackageDir turns a dotted or slashed base package path into an
// output directory and the bare package name the generated files declare.
func resolvePackageDir(basePackage, outputDir string) (dir string, name string, err error) {
	if basePackage == "" {
		return "", "", errors.New("base package must not be empty")
	}
	parts := strings.FieldsFunc(basePackage, func(r rune) bool { return r == '.' || r == '/' })
	if len(parts) == 0 {
		return "", "", errors.Newf("invalid base package %q", basePackage)
	}
	dir = filepath.Join(append([]string{outputDir}, parts...)...)
	name = parts[len(parts)-1]
	return dir, name, nil
}
