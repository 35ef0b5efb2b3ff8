package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadError describes a config file that cannot be read or decoded.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// IsLoadError reports whether err is a *LoadError.
func IsLoadError(err error) bool {
	var e *LoadError
	return errors.As(err, &e)
}

// Load reads a config file. The format follows the extension: .yaml and
// .yml are YAML, .cue is CUE checked against the #Export schema. A relative
// sqlFile is resolved against the config file's directory.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to read config file: %v", err)}
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = decodeYAML(path, data)
	case ".cue":
		f, err = decodeCUE(path, data)
	default:
		return File{}, &LoadError{Path: path, Message: fmt.Sprintf("unsupported config format %q: use .yaml, .yml or .cue", ext)}
	}
	if err != nil {
		return File{}, err
	}

	f.resolveRelative(path)
	return f, nil
}

func decodeYAML(path string, data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown keys
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	return f, nil
}

func decodeCUE(path string, data []byte) (File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return File{}, fmt.Errorf("compile config schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return File{}, cueLoadError(path, "failed to parse CUE", err)
	}

	value = schema.LookupPath(cue.ParsePath("#Export")).Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return File{}, cueLoadError(path, "config does not match schema", err)
	}

	var f File
	if err := value.Decode(&f); err != nil {
		return File{}, cueLoadError(path, "failed to decode CUE", err)
	}
	return f, nil
}

func cueLoadError(path, message string, err error) *LoadError {
	le := &LoadError{Path: path, Message: fmt.Sprintf("%s: %v", message, err)}
	for _, e := range cueerrors.Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			le.Pos = pos
			break
		}
	}
	return le
}
