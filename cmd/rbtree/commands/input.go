package commands

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
)

const (
	jsonExtension = ".json"
	commentPrefix = "#"
	stdinPath     = "-"
)

var (
	// ErrMalformedLine is returned for a text line with an empty key.
	ErrMalformedLine = errors.New("malformed entry line")
	// ErrSchemaViolation is returned when a JSON input does not match the entries schema.
	ErrSchemaViolation = errors.New("entries do not match schema")
)

//go:embed schema/entries.schema.json
var entriesSchema []byte

// ReadEntries reads the entries of path in file order. Paths ending in
// .json are parsed as a JSON array, anything else as text lines; "-" reads
// text from stdin.
func ReadEntries(path string) ([]rbtree.Entry[string, string], error) {
	if path == stdinPath {
		return ParseText(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), jsonExtension) {
		return ParseJSON(file)
	}

	entries, err := ParseText(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}

// ParseText reads one entry per line. A line is key=value, key<TAB>value
// or a bare key with an empty value; a tab takes precedence over '=' so
// keys may contain '='. Blank lines and lines starting with # are skipped.
func ParseText(r io.Reader) ([]rbtree.Entry[string, string], error) {
	var entries []rbtree.Entry[string, string]

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		key, value, found := strings.Cut(line, "\t")
		if !found {
			key, value, _ = strings.Cut(line, "=")
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: line %d: empty key", ErrMalformedLine, lineNo)
		}

		entries = append(entries, rbtree.Entry[string, string]{Key: key, Value: strings.TrimSpace(value)})
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return entries, nil
}

// jsonEntry is one element of a JSON input array.
type jsonEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// ParseJSON reads a JSON array of {"key", "value"} objects after validating
// it against the embedded entries schema. Non-string values are kept in
// their JSON spelling; null and a missing value become "".
func ParseJSON(r io.Reader) ([]rbtree.Entry[string, string], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(entriesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate input: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
		}

		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
	}

	var raw []jsonEntry

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	err = dec.Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}

	entries := make([]rbtree.Entry[string, string], 0, len(raw))

	for _, item := range raw {
		value := ""
		if item.Value != nil {
			value = fmt.Sprint(item.Value)
		}

		entries = append(entries, rbtree.Entry[string, string]{Key: item.Key, Value: value})
	}

	return entries, nil
}
