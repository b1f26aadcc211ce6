package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names a text encoding a strategy decodes with.
type Encoding string

// Supported encodings.
const (
	UTF8        Encoding = "utf-8"
	Windows1252 Encoding = "windows-1252"
	Latin1      Encoding = "iso-8859-1"
	// Spreadsheet marks tables read from an XLSX workbook.
	Spreadsheet Encoding = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Strategy is one encoding/delimiter combination.
type Strategy struct {
	Encoding  Encoding
	Delimiter rune
}

func (s Strategy) String() string {
	if s.Delimiter == 0 {
		return string(s.Encoding)
	}
	return fmt.Sprintf("%s/%c", s.Encoding, s.Delimiter)
}

// Tolerant is the ordered strategy list for tables of unknown origin, such as
// the bundled initial file or an operator upload. UTF-8 comes first because it
// rejects invalid input; the single-byte encodings accept any input.
var Tolerant = []Strategy{
	{Encoding: UTF8, Delimiter: ';'},
	{Encoding: UTF8, Delimiter: ','},
	{Encoding: Windows1252, Delimiter: ';'},
	{Encoding: Windows1252, Delimiter: ','},
	{Encoding: Latin1, Delimiter: ';'},
	{Encoding: Latin1, Delimiter: ','},
}

// Canonical is the format snapshots are written in.
var Canonical = Strategy{Encoding: UTF8, Delimiter: ','}

// Result is a parsed table and the strategy that produced it.
type Result struct {
	Table    Table
	Strategy Strategy
}

// Parse tries each strategy in order and returns the first table whose header
// has more than one column. When every strategy fails the error wraps
// ErrNoStrategy and lists each attempt.
func Parse(data []byte, strategies []Strategy) (Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, ErrEmptyInput
	}
	attempts := make([]string, 0, len(strategies))
	for _, s := range strategies {
		t, err := s.parse(data)
		if err == nil {
			return Result{Table: t, Strategy: s}, nil
		}
		attempts = append(attempts, s.String()+": "+err.Error())
	}
	return Result{}, fmt.Errorf("%w (%s)", ErrNoStrategy, strings.Join(attempts, "; "))
}

// ParseReader reads r fully and parses it with Parse.
func ParseReader(r io.Reader, strategies []Strategy) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, eris.Wrap(err, "tabular: read input")
	}
	return Parse(data, strategies)
}

func (s Strategy) parse(data []byte) (Table, error) {
	text, err := s.Encoding.decode(data)
	if err != nil {
		return Table{}, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = s.Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, eris.Wrap(err, "csv: read rows")
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyInput
	}
	if len(records[0]) <= 1 {
		return Table{}, eris.New("single column header")
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

func (e Encoding) decode(data []byte) ([]byte, error) {
	switch e {
	case UTF8:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return nil, eris.New("invalid utf-8 input")
		}
		return data, nil
	case Windows1252:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, eris.Wrap(err, "decode windows-1252")
		}
		return out, nil
	case Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, eris.Wrap(err, "decode iso-8859-1")
		}
		return out, nil
	default:
		return nil, eris.Errorf("unsupported encoding %q", string(e))
	}
}
