/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/spf13/cobra"
)

const (
	SampleRowsFlag    = "rows"
	DefaultSampleRows = 5
)

var sampleRows int

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect dataFile",
	Short: "查看数据文件的前若干行、各列类型与缺失值数量",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadTable(args[0])
		if err != nil {
			return err
		}
		report, err := preprocess.Inspect(data, sampleRows)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func renderReport(w io.Writer, report *preprocess.Report) {
	sample := table.NewWriter()
	sample.SetOutputMirror(w)
	sample.SetStyle(table.StyleLight)
	names := report.Sample.Names()
	header := make(table.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	sample.AppendHeader(header)
	for i := 0; i < report.Sample.NumRows(); i++ {
		values := report.Sample.Row(i)
		row := make(table.Row, len(values))
		for j, v := range values {
			row[j] = v.String()
		}
		sample.AppendRow(row)
	}
	sample.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n\n", report.Sample.NumRows())

	schema := table.NewWriter()
	schema.SetOutputMirror(w)
	schema.SetStyle(table.StyleLight)
	schema.AppendHeader(table.Row{"Column", "Type", "Missing"})
	for _, name := range names {
		schema.AppendRow(table.Row{name, report.Types[name].String(), report.MissingCounts[name]})
	}
	schema.Render()
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVarP(&sampleRows, SampleRowsFlag, "n", DefaultSampleRows,
		"输出的样本行数")
}
