package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Scene file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Decoder is the common interface of the TOML and YAML decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

var decoders = map[string]DecoderFunc{
	FormatTOML: func(r io.Reader) Decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	FormatYAML: func(r io.Reader) Decoder {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d
	},
}

// FormatOf returns the scene format for a file path, based on its
// extension: .toml, or .yaml and .yml.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown file extension %q", ErrInvalidScene, ext)
	}
}

// Decode reads a scene in the given format and validates it. Unknown
// keys are rejected.
func Decode(r io.Reader, format string) (*Scene, error) {
	newDecoder, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidScene, format)
	}

	var s Scene
	if err := newDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidScene, format, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file. The format follows the extension.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("scene: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}
