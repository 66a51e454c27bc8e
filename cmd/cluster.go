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
	"regexp"
	"strconv"

	"github.com/packagewjx/tabprep/internal/classify"
	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/internal/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	AlgorithmKMeans = "kmeans"
)

// Global Flags
const (
	AlgorithmFlag       = "algorithm"
	RemoveColumnFlag    = "removeColumn"
	OutputPrecisionFlag = "outputPrecision"
)

// Global Defaults
const (
	DefaultOutputPrecision = 2
)

// Flags for K-Means
const (
	KMeansRoundFlag = "kMeansRound"
)

var algorithm string
var removeColumn []string
var outputPrecision int
var kMeansRound int

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster dataFile outputFile numClass",
	Short: "读取数据文件聚类计算，并输出各类中心到新文件中",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInOut(args, 3); err != nil {
			return err
		}
		if match, _ := regexp.MatchString("^\\d+$", args[2]); !match {
			return fmt.Errorf("类数量参数不是数字")
		}
		if algorithm != AlgorithmKMeans {
			return fmt.Errorf("不支持的算法%s", algorithm)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var algType classify.AlgorithmType
		var context interface{}
		switch algorithm {
		default:
			algType = classify.KMeans
			context = &classify.KMeansContext{Round: kMeansRound}
		}
		alg := classify.GetAlgorithm(algType)

		table, err := loadTable(args[0])
		if err != nil {
			return err
		}
		if len(removeColumn) > 0 {
			if table, err = preprocess.Drop(table, removeColumn...); err != nil {
				return err
			}
		}
		data, err := classify.TableToFloat32(table)
		if err != nil {
			return err
		}

		numClass, _ := strconv.Atoi(args[2])
		utils.Logger().Info("运行聚类算法中", zap.String("algorithm", algorithm), zap.Int("numClass", numClass))
		centers, class, err := alg.Run(data, numClass, context)
		if err != nil {
			return err
		}
		utils.Logger().Info("运行聚类算法完成", zap.Ints("classSizes", classify.ClassSizes(class, numClass)))

		fout, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "创建输出文件错误")
		}
		defer func() {
			_ = fout.Close()
		}()
		return classify.OutputResult(centers, table.Names(), fout, outputPrecision)
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().StringVarP(&algorithm, AlgorithmFlag, "a", AlgorithmKMeans,
		"指定使用的算法。默认为kmeans，可选值：kmeans")
	clusterCmd.Flags().StringSliceVarP(&removeColumn, RemoveColumnFlag, "r", []string{},
		"需要移除的列名。使用此字段忽略掉标签列或不是数字的列")
	clusterCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")

	// Flags for K-Means Algorithm
	clusterCmd.Flags().IntVar(&kMeansRound, KMeansRoundFlag, classify.KMeansDefaultRound,
		"K-Means算法执行的轮次")
}
