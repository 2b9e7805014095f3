// Package persist provides codec-based file persistence for tree snapshots
// and other state values.
package persist

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// File extensions of the built-in codecs.
const (
	jsonExtension = ".json"
	gobExtension  = ".gob"
	yamlExtension = ".yaml"
)

// Codec names accepted by CodecByName.
const (
	CodecJSON = "json"
	CodecGob  = "gob"
	CodecYAML = "yaml"
)

// defaultIndent is the indentation of pretty-printed JSON.
const defaultIndent = "  "

// ErrUnknownCodec is returned by CodecByName for an unsupported name.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec defines how state is serialized and deserialized.
type Codec interface {
	// Encode writes the state to the writer.
	Encode(w io.Writer, state any) error
	// Decode reads the state from the reader into the pointer state.
	Decode(r io.Reader, state any) error
	// Extension returns the file extension, including the leading dot.
	Extension() string
}

// CodecByName returns the codec registered under name, wrapped in LZ4
// compression when compress is set.
func CodecByName(name string, compress bool) (Codec, error) {
	var codec Codec

	switch name {
	case CodecJSON:
		codec = NewJSONCodec()
	case CodecGob:
		codec = NewGobCodec()
	case CodecYAML:
		codec = NewYAMLCodec()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	if compress {
		return NewLZ4Codec(codec), nil
	}

	return codec, nil
}

// JSONCodec encodes state as JSON.
type JSONCodec struct {
	// Indent is the indentation string; empty means compact output.
	Indent string
}

// NewJSONCodec creates a pretty-printing JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.
func (c *JSONCodec) Encode(w io.Writer, state any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(state)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (c *JSONCodec) Decode(r io.Reader, state any) error {
	err := json.NewDecoder(r).Decode(state)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// GobCodec encodes state with encoding/gob. Payload types must have exported
// fields; the empty struct used by sets cannot be gob encoded.
type GobCodec struct{}

// NewGobCodec creates a gob codec.
func NewGobCodec() *GobCodec {
	return &GobCodec{}
}

// Encode implements Codec.
func (c *GobCodec) Encode(w io.Writer, state any) error {
	err := gob.NewEncoder(w).Encode(state)
	if err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (c *GobCodec) Decode(r io.Reader, state any) error {
	err := gob.NewDecoder(r).Decode(state)
	if err != nil {
		return fmt.Errorf("gob decode: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (c *GobCodec) Extension() string {
	return gobExtension
}

// YAMLCodec encodes state as YAML.
type YAMLCodec struct {
	// Indent is the number of spaces per nesting level; zero keeps the yaml.v3 default.
	Indent int
}

// NewYAMLCodec creates a YAML codec with two-space indentation.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{Indent: len(defaultIndent)}
}

// Encode implements Codec.
func (c *YAMLCodec) Encode(w io.Writer, state any) error {
	encoder := yaml.NewEncoder(w)
	if c.Indent > 0 {
		encoder.SetIndent(c.Indent)
	}

	err := encoder.Encode(state)
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (c *YAMLCodec) Decode(r io.Reader, state any) error {
	err := yaml.NewDecoder(r).Decode(state)
	if err != nil {
		return fmt.Errorf("yaml decode: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (c *YAMLCodec) Extension() string {
	return yamlExtension
}
