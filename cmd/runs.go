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
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	LimitFlag    = "limit"
	DefaultLimit = 10
)

var limit int

// runsCmd lists the runs saved by train.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "列出保存在MySQL中的最近几次训练结果",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString(MysqlHostFlag) == "" {
			return fmt.Errorf("必须通过--%s指定MySQL地址", MysqlHostFlag)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dao, err := newDao()
		if err != nil {
			return err
		}
		runs, err := dao.QueryRecentRuns(limit)
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"ID", "Name", "Started", "Train/Test", "Accuracy", "Precision", "Recall", "F1"})
		for _, run := range runs {
			tw.AppendRow(table.Row{
				run.ID, run.Name, run.StartedAt.Format("2006-01-02 15:04:05"),
				fmt.Sprintf("%d/%d", run.TrainRows, run.TestRows),
				fmt.Sprintf("%.4f", run.Scores.Accuracy), fmt.Sprintf("%.4f", run.Scores.Precision),
				fmt.Sprintf("%.4f", run.Scores.Recall), fmt.Sprintf("%.4f", run.Scores.F1),
			})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVarP(&limit, LimitFlag, "n", DefaultLimit, "显示的记录数")
}
