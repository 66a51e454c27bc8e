package datasource

import (
	"io"

	"github.com/packagewjx/tabprep/pkg/core"
)

type TableLoader interface {
	// 从in中读取带表头的表格数据
	Load(in io.Reader) (*core.Table, error)
	LoadFile(fileName string) (*core.Table, error)
}

type DataFormat string

const (
	CSV = DataFormat("csv")
)

func NewTableLoader(format DataFormat) TableLoader {
	switch format {
	case CSV:
		return &csvLoader{}
	default:
		return nil
	}
}
