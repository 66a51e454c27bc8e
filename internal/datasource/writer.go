package datasource

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// WriteCSV writes the header followed by every row. Missing values become
// empty cells.
func WriteCSV(out io.Writer, table *core.Table) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(table.Names()); err != nil {
		return errors.Wrapf(core.ErrIO, "write header: %v", err)
	}
	columns := table.Columns()
	record := make([]string, len(columns))
	for i := 0; i < table.NumRows(); i++ {
		for j, c := range columns {
			record[j] = c.Values[i].String()
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(core.ErrIO, "write row %d: %v", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(core.ErrIO, "flush csv: %v", err)
	}
	return nil
}

func WriteFile(fileName string, table *core.Table) error {
	fout, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(core.ErrIO, "create %s: %v", fileName, err)
	}
	buffered := bufio.NewWriter(fout)
	if err = WriteCSV(buffered, table); err != nil {
		_ = fout.Close()
		return errors.Wrap(err, fileName)
	}
	if err = buffered.Flush(); err != nil {
		_ = fout.Close()
		return errors.Wrapf(core.ErrIO, "write %s: %v", fileName, err)
	}
	if err = fout.Close(); err != nil {
		return errors.Wrapf(core.ErrIO, "close %s: %v", fileName, err)
	}
	return nil
}
