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

	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/internal/utils"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	StrategyFlag     = "strategy"
	MissingValueFlag = "missing"
	FillValueFlag    = "fill"
)

var (
	strategy     string
	missingValue string
	fillValue    string
)

// imputeCmd represents the impute command
var imputeCmd = &cobra.Command{
	Use:   "impute trainFile testFile trainOutput testOutput",
	Short: "用训练集计算的统计量填充训练集与测试集的缺失值",
	Long: "统计量只从训练集计算，然后同时用于训练集和测试集，避免测试集信息泄漏。\n" +
		"strategy可选mean、median、most_frequent、constant，constant需要通过--fill指定填充值。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInOut(args, 4); err != nil {
			return err
		}
		if args[1] == args[2] || args[1] == args[3] || args[2] == args[3] {
			return fmt.Errorf("输入输出文件不能一致")
		}
		if len(columns) == 0 {
			return fmt.Errorf("必须通过--%s指定要填充的列", ColumnsFlag)
		}
		_, err := preprocess.ParseStrategy(strategy)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var train, test *core.Table
		var g errgroup.Group
		g.Go(func() (err error) {
			train, err = loadTable(args[0])
			return
		})
		g.Go(func() (err error) {
			test, err = loadTable(args[1])
			return
		})
		if err := g.Wait(); err != nil {
			return err
		}

		st, _ := preprocess.ParseStrategy(strategy)
		var constant *core.Value
		if cmd.Flags().Changed(FillValueFlag) {
			v := core.ParseValue(fillValue)
			constant = &v
		}
		train, test, err := preprocess.Impute(train, test, columns, core.ParseValue(missingValue), st, constant)
		if err != nil {
			return err
		}
		utils.Logger().Info("填充缺失值完成", zap.Strings("columns", columns), zap.String("strategy", strategy))

		if err = writeTable(args[2], train); err != nil {
			return err
		}
		return writeTable(args[3], test)
	},
}

func init() {
	preprocessCmd.AddCommand(imputeCmd)

	imputeCmd.Flags().StringSliceVarP(&columns, ColumnsFlag, "c", nil,
		"要填充的列名，逗号分隔")
	imputeCmd.Flags().StringVarP(&strategy, StrategyFlag, "s", string(preprocess.StrategyMean),
		"填充策略：mean、median、most_frequent或constant")
	imputeCmd.Flags().StringVar(&missingValue, MissingValueFlag, "",
		"表示缺失的值，默认为空值与NaN")
	imputeCmd.Flags().StringVar(&fillValue, FillValueFlag, "",
		"constant策略使用的填充值")
}
