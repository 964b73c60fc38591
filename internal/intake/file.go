package intake

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/playbook-cli/internal/model"
)

// ReadContextFile loads a single customer context from a YAML or JSON file.
func ReadContextFile(path string) (model.CustomerContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.CustomerContext{}, eris.Wrap(err, "intake: open context file")
	}
	defer f.Close() //nolint:errcheck

	return DecodeContext(f)
}

// DecodeContext decodes one customer context. JSON input is accepted since
// it is valid YAML.
func DecodeContext(r io.Reader) (model.CustomerContext, error) {
	var cc model.CustomerContext
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cc); err != nil {
		if errors.Is(err, io.EOF) {
			return cc, eris.New("intake: context file is empty")
		}
		return cc, eris.Wrap(err, "intake: decode context")
	}
	cc.ApplyDefaults()
	return cc, nil
}

// ReadBatchFile dispatches on the file extension to ReadCSV or ReadXLSX.
func ReadBatchFile(path string) ([]Entry, []RowError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, nil, eris.Errorf("intake: unsupported batch file %q (want .csv or .xlsx)", path)
	}
}

// ReadCSV parses a batch CSV file with a header row.
func ReadCSV(path string) ([]Entry, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "intake: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "intake: read csv")
	}
	return ParseRecords(records)
}

// ReadXLSX parses the first sheet of a batch workbook with a header row.
func ReadXLSX(path string) ([]Entry, []RowError, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "intake: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, nil, eris.New("intake: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, cells)
	}
	return ParseRecords(records)
}
