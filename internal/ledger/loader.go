package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"cashgap/internal/logger"
)

// Required column names after normalization (trim + lowercase). The ledger
// export uses Portuguese headers.
const (
	ColumnDueDate      = "data de vencimento"
	ColumnPaymentDate  = "data de pagamento"
	ColumnAmount       = "valor"
	ColumnCategory     = "categoria"
	ColumnDescription  = "descrição"
	ColumnCounterparty = "cliente/fornecedor"
)

var requiredColumns = []string{
	ColumnDueDate,
	ColumnPaymentDate,
	ColumnAmount,
	ColumnCategory,
	ColumnDescription,
	ColumnCounterparty,
}

// Loader parses uploaded ledger files into records.
type Loader struct {
	currencySymbol string
	log            zerolog.Logger
}

// NewLoader creates a loader. currencySymbol is the prefix stripped from
// amount cells; empty selects the default "R$".
func NewLoader(currencySymbol string) *Loader {
	if currencySymbol == "" {
		currencySymbol = "R$"
	}
	return &Loader{
		currencySymbol: currencySymbol,
		log:            logger.WithComponent("ledger-loader"),
	}
}

// Load reads a comma-delimited ledger file and returns its records with
// types and statuses derived. The bytes are decoded as UTF-8 and, if that
// fails, re-decoded as Latin-1; a file unreadable under both encodings is
// a fatal error. Missing required columns abort with a MissingColumnsError
// naming every absent column.
func (l *Loader) Load(r io.Reader) ([]Record, error) {
	const op = "Load"

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: reading input: %w", op, err)
	}

	data, encoding, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedCSV, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}

	columns, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, l.buildRecord(row, columns))
	}

	l.log.Info().
		Str("encoding", encoding).
		Int("records", len(records)).
		Msg("Ledger loaded")

	return records, nil
}

// decodeBytes returns the input as UTF-8 text, falling back to a Latin-1
// re-decode when the bytes are not valid UTF-8.
func decodeBytes(data []byte) ([]byte, string, error) {
	if utf8.Valid(data) {
		return data, "utf-8", nil
	}
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, "", fmt.Errorf("decoding input as Latin-1: %w", err)
	}
	return decoded, "latin-1", nil
}

// columnIndex normalizes the header row and maps required column names to
// their positions.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return index, nil
}

func (l *Loader) buildRecord(row []string, columns map[string]int) Record {
	record := Record{
		DueDate:      parseDate(cell(row, columns[ColumnDueDate])),
		PaymentDate:  parseDate(cell(row, columns[ColumnPaymentDate])),
		Amount:       parseAmount(cell(row, columns[ColumnAmount]), l.currencySymbol),
		Category:     cell(row, columns[ColumnCategory]),
		Description:  cell(row, columns[ColumnDescription]),
		Counterparty: cell(row, columns[ColumnCounterparty]),
	}
	record.Type = ClassifyType(record.Category)
	record.Status = StatusOf(record.PaymentDate)
	return record
}

// cell safely extracts a trimmed value from a row slice.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
