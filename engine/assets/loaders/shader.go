package loaders

import (
	"fmt"
	"os"
)

// ShaderLoader reads GLSL source text. Compilation happens later on the
// render thread; the loader only cares that the file is readable and
// non-empty.
type ShaderLoader struct{}

func (l *ShaderLoader) Load(path string) (interface{}, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", path, err)
	}
	if len(source) == 0 {
		return nil, fmt.Errorf("shader %q: empty source file", path)
	}
	return string(source), nil
}
