package classify

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// OutputResult writes the cluster centers as CSV, preceded by header when it
// is not empty.
func OutputResult(centers [][]float32, header []string, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return errors.Wrapf(core.ErrIO, "写入表头错误: %v", err)
		}
	}
	for _, center := range centers {
		record := make([]string, len(center))
		for i, f := range center {
			record[i] = strconv.FormatFloat(float64(f), 'f', precision, 32)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(core.ErrIO, "写入数据错误: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(core.ErrIO, "写入数据错误: %v", err)
	}
	return nil
}

// ClassSizes counts the samples assigned to each of numClass clusters.
func ClassSizes(class []int, numClass int) []int {
	sizes := make([]int, numClass)
	for _, c := range class {
		if c >= 0 && c < numClass {
			sizes[c]++
		}
	}
	return sizes
}
