// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package tse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Separator used by TSE extracts.
const Separator = ';'

// DefaultCharset is the encoding assumed when none is given.
const DefaultCharset = "utf-8"

// LoadOptions tunes how an extract is decoded.
type LoadOptions struct {
	// Charset is any label understood by the WHATWG encoding spec, such as
	// "utf-8", "latin1" or "iso-8859-1".
	Charset string
}

// Load reads every ballot row from the file at path. A missing file yields an
// error matching fs.ErrNotExist.
func Load(path string, opts LoadOptions) ([]Ballot, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening extract: %w", err)
	}
	defer f.Close()

	return Read(f, opts)
}

// Read parses an extract from r. The header must contain every column in
// RequiredColumns, in any order.
func Read(r io.Reader, opts LoadOptions) ([]Ballot, error) {
	decoded, err := decode(r, opts.Charset)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.Comma = Separator
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked against the header below to report the line

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Message: "empty file, expected a header line"}
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	s, err := newSchema(header)
	if err != nil {
		return nil, err
	}

	var ret []Ballot

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading extract: %w", err)
		}

		if len(record) != s.width {
			line, _ := cr.FieldPos(0)

			return nil, &FormatError{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", s.width, len(record)),
			}
		}

		ret = append(ret, s.ballot(record))
	}

	return ret, nil
}

// decode wraps r so the csv reader always sees UTF-8 without a byte order mark.
func decode(r io.Reader, label string) (io.Reader, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "utf-8" || label == "utf8" {
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}

	ret, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("decoding extract: %w", err)
	}

	return ret, nil
}
