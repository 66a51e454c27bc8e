package datasource

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type csvLoader struct {
}

func (c *csvLoader) LoadFile(fileName string) (*core.Table, error) {
	fin, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "open %s: %v", fileName, err)
	}
	defer func() {
		_ = fin.Close()
	}()

	table, err := c.Load(fin)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return table, nil
}

func (c *csvLoader) Load(in io.Reader) (*core.Table, error) {
	// UTF-8 without a BOM passes through; a UTF-8 or UTF-16 BOM selects the decoding and is dropped
	decoded := transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(core.ErrIO, "missing header row")
	} else if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "read header: %v", err)
	}
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		name = norm.NFC.String(name)
		header[i] = name
		if _, ok := seen[name]; ok {
			return nil, errors.Wrapf(core.ErrIO, "duplicate column %q in header", name)
		}
		seen[name] = struct{}{}
	}

	raw := make([][]string, len(header))
	var record []string
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		for i, cell := range record {
			raw[i] = append(raw[i], cell)
		}
	}
	if err != io.EOF {
		return nil, errors.Wrapf(core.ErrIO, "read csv: %v", err)
	}

	columns := make([]*core.Column, len(header))
	for i, name := range header {
		columns[i] = parseColumn(name, raw[i])
	}
	table, err := core.NewTable(columns...)
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "build table: %v", err)
	}
	return table, nil
}

// parseColumn infers each cell separately. When the non-missing cells do not
// share one kind, every one of them is kept as its raw string.
func parseColumn(name string, cells []string) *core.Column {
	values := make([]core.Value, len(cells))
	kind := core.KindNull
	mixed := false
	for i, cell := range cells {
		v := core.ParseValue(cell)
		values[i] = v
		if v.IsMissing() {
			continue
		}
		if kind == core.KindNull {
			kind = v.Kind()
		} else if kind != v.Kind() {
			mixed = true
		}
	}

	if mixed {
		for i, v := range values {
			if !v.IsMissing() {
				values[i] = core.String(cells[i])
			}
		}
	}
	return core.NewColumn(name, values)
}
