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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mitchellh/mapstructure"
	"github.com/packagewjx/tabprep/internal/fraud"
	"github.com/packagewjx/tabprep/internal/report"
	"github.com/packagewjx/tabprep/internal/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	RunNameFlag       = "name"
	MysqlHostFlag     = "mysql-host"
	MysqlUserFlag     = "mysql-user"
	MysqlPasswordFlag = "mysql-password"
	MysqlDatabaseFlag = "mysql-database"

	DefaultMysqlUser     = "root"
	DefaultMysqlDatabase = "tabprep"

	// fraudConfigKey is the section of the configuration file overriding fraud.DefaultConfig.
	fraudConfigKey = "fraud"
)

var runName string

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train dataFile",
	Short: "清洗交易数据，训练线性SVM欺诈检测模型，并在测试集上评估",
	Long: "默认执行PaySim交易数据的清洗流程，配置文件中的fraud部分可以覆盖其中任意一项。\n" +
		"指定--mysql-host时，运行结果会保存到MySQL数据库中。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("参数错误，需要数据文件")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFraudConfig(cmd)
		if err != nil {
			return err
		}
		data, err := loadTable(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		startedAt := time.Now()
		result, err := fraud.Run(ctx, cfg, data, utils.Logger())
		if err != nil {
			return err
		}
		renderScores(result)

		if viper.GetString(MysqlHostFlag) == "" {
			return nil
		}
		dao, err := newDao()
		if err != nil {
			return err
		}
		name := runName
		if name == "" {
			name = args[0]
		}
		run := &report.Run{
			Name:      name,
			StartedAt: startedAt,
			Duration:  result.Duration,
			InputRows: result.InputRows,
			CleanRows: result.CleanRows,
			TrainRows: result.TrainRows,
			TestRows:  result.TestRows,
			Features:  result.Features,
			Scores:    *result.Scores,
			Config:    cfg.String(),
		}
		if err = dao.SaveRun(run); err != nil {
			return err
		}
		utils.Logger().Info("运行结果已保存", zap.Uint("id", run.ID))
		return nil
	},
}

func loadFraudConfig(cmd *cobra.Command) (*fraud.Config, error) {
	cfg := fraud.DefaultConfig()
	if viper.IsSet(fraudConfigKey) {
		// lists and maps in the file replace the defaults instead of merging into them
		replace := func(c *mapstructure.DecoderConfig) { c.ZeroFields = true }
		if err := viper.UnmarshalKey(fraudConfigKey, cfg, replace); err != nil {
			return nil, errors.Wrap(err, "解析配置错误")
		}
	}
	if cmd.Flags().Changed(SeedFlag) {
		cfg.Seed = &seed
	}
	if cmd.Flags().Changed(TestFractionFlag) {
		cfg.TestFraction = testFraction
	}
	return cfg, cfg.Complete()
}

func newDao() (report.Dao, error) {
	return report.NewDao(viper.GetString(MysqlHostFlag), viper.GetString(MysqlUserFlag),
		viper.GetString(MysqlPasswordFlag), viper.GetString(MysqlDatabaseFlag))
}

func renderScores(result *fraud.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Rows (input/clean)", fmt.Sprintf("%d/%d", result.InputRows, result.CleanRows)},
		{"Rows (train/test)", fmt.Sprintf("%d/%d", result.TrainRows, result.TestRows)},
		{"Accuracy", fmt.Sprintf("%.4f", result.Scores.Accuracy)},
		{"Precision", fmt.Sprintf("%.4f", result.Scores.Precision)},
		{"Recall", fmt.Sprintf("%.4f", result.Scores.Recall)},
		{"F1", fmt.Sprintf("%.4f", result.Scores.F1)},
		{"TP/FP/TN/FN", fmt.Sprintf("%d/%d/%d/%d", result.Scores.TruePositive, result.Scores.FalsePositive,
			result.Scores.TrueNegative, result.Scores.FalseNegative)},
		{"Duration", result.Duration.String()},
	})
	tw.Render()
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&runName, RunNameFlag, "",
		"保存到数据库时使用的运行名称，默认为数据文件名")
	trainCmd.Flags().Int64Var(&seed, SeedFlag, 0,
		"随机种子，覆盖配置文件中的值")
	trainCmd.Flags().Float64VarP(&testFraction, TestFractionFlag, "t", fraud.DefaultTestFraction,
		"测试集比例，覆盖配置文件中的值")

	// MySQL的连接参数也可以通过配置文件或TABPREP_MYSQL_HOST等环境变量指定
	rootCmd.PersistentFlags().String(MysqlHostFlag, "", "MySQL地址，例如127.0.0.1:3306")
	rootCmd.PersistentFlags().String(MysqlUserFlag, DefaultMysqlUser, "MySQL用户名")
	rootCmd.PersistentFlags().String(MysqlPasswordFlag, "", "MySQL密码")
	rootCmd.PersistentFlags().String(MysqlDatabaseFlag, DefaultMysqlDatabase, "MySQL数据库名")
	for _, name := range []string{MysqlHostFlag, MysqlUserFlag, MysqlPasswordFlag, MysqlDatabaseFlag} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}
