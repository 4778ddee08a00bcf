package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/centavo-app/centavo/internal/encoding"
)

// ErrUnknownFormat is returned when no profile matches the file's header row.
var ErrUnknownFormat = fmt.Errorf("unrecognized statement format: expected a credit card (date,title,amount) or checking account (Data,Valor,Descrição) export")

// Parser reads statement exports into raw rows. It is stateless and safe for
// concurrent use; every Parse call works on an isolated row set.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the export and returns its raw rows in file order. When format
// is FormatAuto the header row decides which profile applies; otherwise only
// the declared format's profile is considered.
//
// Completely empty input yields a File with zero rows and zero errors, which
// is a different situation from a file whose every row failed.
func (p *Parser) Parse(r io.Reader, format Format) (*File, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	records, err := readRecords(utf8r)
	if err != nil {
		return nil, err
	}

	if blankFile(records) {
		return &File{Format: format}, nil
	}

	candidates := profiles
	if format != FormatAuto {
		prof := profileFor(format)
		if prof == nil {
			return nil, fmt.Errorf("unknown statement format %q", format)
		}

		candidates = []Profile{*prof}
	}

	prof, cols, headerIdx := detectProfile(records, candidates)
	if prof == nil {
		return nil, ErrUnknownFormat
	}

	return &File{
		Format: prof.Format,
		Rows:   collectRows(prof, cols, records, headerIdx),
	}, nil
}

// record is one CSV record together with the file line it started on. The csv
// reader silently drops blank lines, so record indexes alone would misreport
// origin lines in row errors.
type record struct {
	line  int
	cells []string
}

// readRecords reads every CSV record with its true 1-based source line.
func readRecords(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}

	return records, nil
}

// blankFile reports whether every record consists solely of blank cells.
func blankFile(records []record) bool {
	for _, rec := range records {
		for _, cell := range rec.cells {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}

	return true
}

// detectProfile scans records for a header row matching one of the candidate
// profiles and returns the match with its column positions.
func detectProfile(records []record, candidates []Profile) (*Profile, colIndex, int) {
	for rowIdx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// collectRows extracts the raw text rows following the header. Blank records
// are dropped; everything else is kept and left for Normalize to judge.
func collectRows(p *Profile, cols colIndex, records []record, headerIdx int) []Row {
	dateIdx := cols[p.DateCol]
	amountIdx := cols[p.AmountCol]
	descIdx := p.descIndex(cols)

	var rows []Row

	for _, rec := range records[headerIdx+1:] {
		row := Row{
			Line:        rec.line,
			Date:        cellValue(rec.cells, dateIdx),
			Description: cellValue(rec.cells, descIdx),
			Amount:      cellValue(rec.cells, amountIdx),
			Format:      p.Format,
		}

		if row.Date == "" && row.Description == "" && row.Amount == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

// cellValue safely gets a trimmed cell value from a record.
func cellValue(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}

	return strings.TrimSpace(rec[idx])
}
