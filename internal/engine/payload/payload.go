package payload

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"hookprobe/internal/platform/models"
)

//go:embed sample.json
var sample []byte

var (
	ErrEmpty    = errors.New("payload is empty")
	ErrNotArray = errors.New("payload must be a JSON array")
)

// Sample returns the built-in single donation transaction, byte for byte as
// the upstream platform sends it.
func Sample() []byte {
	return bytes.Clone(bytes.TrimSuffix(sample, []byte("\n")))
}

// Load reads a payload from path. "" yields the sample, "-" reads stdin.
// JSON files are returned unchanged so the signed bytes equal the file.
func Load(path string) ([]byte, error) {
	switch path {
	case "":
		return Sample(), nil
	case "-":
		return Read(os.Stdin, "json")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()

	return Read(f, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Read decodes a payload in the given format: json (default) or yaml/yml.
func Read(r io.Reader, format string) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	switch format {
	case "yaml", "yml":
		return FromYAML(b)
	default:
		if err := Validate(b); err != nil {
			return nil, err
		}
		return b, nil
	}
}

// FromYAML converts a YAML list of records into a JSON array. Values are
// kept as strings.
func FromYAML(b []byte) ([]byte, error) {
	var records []map[string]string
	if err := yaml.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to parse YAML payload: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	out, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Validate requires well-formed JSON with an array at the top level.
func Validate(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return ErrEmpty
	}
	if !json.Valid(trimmed) {
		return errors.New("payload is not valid JSON")
	}
	if trimmed[0] != '[' {
		return ErrNotArray
	}
	return nil
}

// Summarize lists the transaction ids in the payload for log lines. It never
// fails; records it cannot decode are skipped.
func Summarize(b []byte) []string {
	var txs []models.Transaction
	if err := json.Unmarshal(b, &txs); err != nil {
		return nil
	}

	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.TransactionID != "" {
			ids = append(ids, tx.TransactionID)
		}
	}
	return ids
}
