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
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	LabelFlag        = "label"
	TestFractionFlag = "testFraction"
	SeedFlag         = "seed"

	DefaultTestFraction = 0.3
)

var (
	label        string
	testFraction float64
	seed         int64
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split inputFile trainFile testFile",
	Short: "随机划分训练集与测试集，标签列与特征保持对应",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInOut(args, 3); err != nil {
			return err
		}
		if args[1] == args[2] {
			return fmt.Errorf("训练集与测试集文件不能一致")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadTable(args[0])
		if err != nil {
			return err
		}
		features, labels, err := preprocess.SplitFeaturesLabels(data, label)
		if err != nil {
			return err
		}

		var opts []preprocess.SplitOption
		if cmd.Flags().Changed(SeedFlag) {
			opts = append(opts, preprocess.WithSeed(seed))
		}
		split, err := preprocess.TrainTestSplit(features, labels, testFraction, opts...)
		if err != nil {
			return err
		}
		utils.Logger().Info("划分完成", zap.Int("train", split.TrainFeatures.NumRows()),
			zap.Int("test", split.TestFeatures.NumRows()))

		train, err := split.TrainFeatures.WithColumn(split.TrainLabels)
		if err != nil {
			return err
		}
		test, err := split.TestFeatures.WithColumn(split.TestLabels)
		if err != nil {
			return err
		}
		if err = writeTable(args[1], train); err != nil {
			return err
		}
		return writeTable(args[2], test)
	},
}

func init() {
	preprocessCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&label, LabelFlag, "l", "",
		"标签列名")
	_ = splitCmd.MarkFlagRequired(LabelFlag)
	splitCmd.Flags().Float64VarP(&testFraction, TestFractionFlag, "t", DefaultTestFraction,
		"测试集比例，取值范围(0, 1)")
	splitCmd.Flags().Int64Var(&seed, SeedFlag, 0,
		"随机种子。不指定时每次划分结果不同")
}
