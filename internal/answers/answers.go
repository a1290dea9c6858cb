// Package answers loads answer sheets from YAML or JSON files.
package answers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/readiness/schema"
	"gopkg.in/yaml.v3"
)

// StdinPath reads the answer sheet from standard input.
const StdinPath = "-"

// Load reads an answer sheet from a file path, or stdin for "-".
// JSON is accepted as well since it is a subset of YAML.
func Load(path string) (schema.AnswerSheet, error) {
	if path == StdinPath {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.AnswerSheet{}, fmt.Errorf("read answer sheet: %w", err)
	}
	sheet, err := Decode(data)
	if err != nil {
		return schema.AnswerSheet{}, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// Read decodes an answer sheet from a reader.
func Read(r io.Reader) (schema.AnswerSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.AnswerSheet{}, fmt.Errorf("read answer sheet: %w", err)
	}
	return Decode(data)
}

// Decode parses an answer sheet. Unknown top-level keys are rejected so
// a misspelled "answers" block does not silently score as empty.
func Decode(data []byte) (schema.AnswerSheet, error) {
	var sheet schema.AnswerSheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sheet); err != nil {
		if errors.Is(err, io.EOF) {
			return schema.AnswerSheet{}, errors.New("answer sheet is empty")
		}
		return schema.AnswerSheet{}, fmt.Errorf("decode answer sheet: %w", err)
	}
	if sheet.Answers == nil {
		sheet.Answers = make(schema.Answers)
	}
	return sheet, nil
}

// Encode writes an answer sheet as YAML, the inverse of Decode.
func Encode(w io.Writer, sheet schema.AnswerSheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sheet); err != nil {
		return fmt.Errorf("encode answer sheet: %w", err)
	}
	return enc.Close()
}
