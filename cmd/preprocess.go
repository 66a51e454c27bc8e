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
	"strconv"
	"strings"

	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/spf13/cobra"
)

const (
	ColumnsFlag = "columns"
	WhereFlag   = "where"
	FeatureFlag = "feature"
	ValueFlag   = "value"
	RecodeFlag  = "recode"
	CodesFlag   = "codes"
)

var (
	columns  []string
	where    string
	features []string
	value    string
	recode   string
	codes    map[string]string
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "数据预处理，每个子命令读取一个CSV文件并输出处理后的CSV文件",
}

var dropCmd = &cobra.Command{
	Use:   "drop inputFile outputFile",
	Short: "删除指定的列",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(columns) == 0 {
			return fmt.Errorf("必须通过--%s指定要删除的列", ColumnsFlag)
		}
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.Drop(table, columns...)
		})
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter inputFile outputFile",
	Short: "只保留满足条件的行",
	Long: "条件表达式支持列名、数字与字符串字面量、比较运算（== != < <= > >=）、算术运算（+ - * / %）以及and、or、not。\n" +
		"包含空格等特殊字符的列名使用反引号括起，例如：`my col` > 1 and type == 'TRANSFER'",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.Filter(table, where)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set inputFile outputFile",
	Short: "将满足条件的行中指定列的值设置为给定值",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(columns) == 0 {
			return fmt.Errorf("必须通过--%s指定要修改的列", ColumnsFlag)
		}
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.SetWhere(table, where, columns, core.ParseValue(value))
		})
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive inputFile outputFile",
	Short: "按表达式计算新的特征列，格式为name=expression，可以重复指定",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(features) == 0 {
			return fmt.Errorf("必须通过--%s指定至少一个特征", FeatureFlag)
		}
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		derivations, err := parseDerivations(features)
		if err != nil {
			return err
		}
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.AddFeatures(table, derivations)
		})
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode inputFile outputFile",
	Short: "对字符串列做独热编码；指定--recode时则按--codes把该列映射为数字",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if recode != "" && len(codes) == 0 {
			return fmt.Errorf("--%s需要同时指定--%s", RecodeFlag, CodesFlag)
		}
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if recode == "" {
			return transform(args[0], args[1], preprocess.OneHotEncode)
		}
		numeric := make(map[string]float64, len(codes))
		for k, v := range codes {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s的编码%s不是数字", k, v)
			}
			numeric[k] = f
		}
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.Recode(table, recode, numeric)
		})
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup inputFile outputFile",
	Short: "删除重复的行，保留第一次出现的行",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.DropDuplicates(table), nil
		})
	},
}

var dropnaCmd = &cobra.Command{
	Use:   "dropna inputFile outputFile",
	Short: "删除含有缺失值的行。指定--columns时只检查这些列",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkInOut(args, 2)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return transform(args[0], args[1], func(table *core.Table) (*core.Table, error) {
			return preprocess.DropMissing(table, columns...)
		})
	},
}

func parseDerivations(specs []string) ([]preprocess.Derivation, error) {
	result := make([]preprocess.Derivation, len(specs))
	for i, spec := range specs {
		idx := strings.Index(spec, "=")
		if idx <= 0 || idx == len(spec)-1 {
			return nil, fmt.Errorf("特征%q格式错误，应为name=expression", spec)
		}
		result[i] = preprocess.Derivation{
			Name: strings.TrimSpace(spec[:idx]),
			Expr: strings.TrimSpace(spec[idx+1:]),
		}
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.AddCommand(dropCmd, filterCmd, setCmd, deriveCmd, encodeCmd, dedupCmd, dropnaCmd)

	dropCmd.Flags().StringSliceVarP(&columns, ColumnsFlag, "c", nil,
		"要删除的列名，逗号分隔")
	dropnaCmd.Flags().StringSliceVarP(&columns, ColumnsFlag, "c", nil,
		"检查缺失值的列名，默认检查所有列")
	setCmd.Flags().StringSliceVarP(&columns, ColumnsFlag, "c", nil,
		"要修改的列名，逗号分隔")

	filterCmd.Flags().StringVarP(&where, WhereFlag, "w", "",
		"过滤条件表达式")
	_ = filterCmd.MarkFlagRequired(WhereFlag)
	setCmd.Flags().StringVarP(&where, WhereFlag, "w", "",
		"条件表达式")
	_ = setCmd.MarkFlagRequired(WhereFlag)
	setCmd.Flags().StringVar(&value, ValueFlag, "",
		"设置的值，按CSV单元格的规则解析，空字符串或NaN表示缺失值")

	deriveCmd.Flags().StringArrayVarP(&features, FeatureFlag, "e", nil,
		"name=expression形式的特征定义")

	encodeCmd.Flags().StringVar(&recode, RecodeFlag, "",
		"按编码表映射为数字的列名")
	encodeCmd.Flags().StringToStringVar(&codes, CodesFlag, nil,
		"编码表，例如TRANSFER=0,CASH_OUT=1")
}
