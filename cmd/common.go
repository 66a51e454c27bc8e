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
	"bufio"
	"fmt"
	"os"

	"github.com/packagewjx/tabprep/internal/datasource"
	"github.com/packagewjx/tabprep/internal/utils"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func loadTable(fileName string) (*core.Table, error) {
	fin, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "打开输入文件错误: %v", err)
	}
	defer func() {
		_ = fin.Close()
	}()

	counter := &utils.ReadCounter{Reader: fin}
	table, err := datasource.NewTableLoader(datasource.CSV).Load(counter)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	utils.Logger().Info("读取数据完成", zap.String("file", fileName), zap.Int64("bytes", counter.Count),
		zap.Int("rows", table.NumRows()), zap.Int("columns", table.NumCols()))
	return table, nil
}

func writeTable(fileName string, table *core.Table) error {
	fout, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(core.ErrIO, "创建输出文件错误: %v", err)
	}
	defer func() {
		_ = fout.Close()
	}()

	buffered := bufio.NewWriter(fout)
	counter := &utils.WriterCounter{Writer: buffered}
	if err = datasource.WriteCSV(counter, table); err != nil {
		return errors.Wrap(err, fileName)
	}
	if err = buffered.Flush(); err != nil {
		return errors.Wrapf(core.ErrIO, "写入%s出错: %v", fileName, err)
	}
	utils.Logger().Info("写入数据完成", zap.String("file", fileName), zap.Int64("bytes", counter.Count),
		zap.Int("rows", table.NumRows()), zap.Int("columns", table.NumCols()))
	return nil
}

// transform loads inputFile, applies fn and writes the result to outputFile.
func transform(inputFile, outputFile string, fn func(table *core.Table) (*core.Table, error)) error {
	table, err := loadTable(inputFile)
	if err != nil {
		return err
	}
	table, err = fn(table)
	if err != nil {
		return err
	}
	return writeTable(outputFile, table)
}

func checkInOut(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("参数错误，需要%d个参数", n)
	}
	for i := 1; i < len(args); i++ {
		if args[0] == args[i] {
			return fmt.Errorf("输入输出文件不能一致")
		}
	}
	return nil
}
