package fraud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/packagewjx/tabprep/internal/classify"
	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Result struct {
	InputRows int
	CleanRows int
	TrainRows int
	TestRows  int
	Features  []string

	Labels      []float64
	Predictions []float64
	Scores      *classify.Scores
	Model       *classify.LinearSVC
	Duration    time.Duration
}

// Run cleans the transactions, trains a linear SVC on a random split and
// scores it on the held out rows. ctx is checked between steps.
func Run(ctx context.Context, cfg *Config, table *core.Table, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	start := time.Now()
	result := &Result{InputRows: table.NumRows()}
	logger.Info("开始运行", zap.Int("rows", table.NumRows()), zap.Int("columns", table.NumCols()))

	for _, step := range cleaningSteps(cfg) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled")
		}
		var err error
		table, err = step.Preprocess(table)
		if err != nil {
			return nil, errors.Wrapf(err, "step %s", step.Name())
		}
		logger.Info("步骤完成", zap.String("step", step.Name()),
			zap.Int("rows", table.NumRows()), zap.Int("columns", table.NumCols()))
	}
	result.CleanRows = table.NumRows()

	features, labels, err := preprocess.SplitFeaturesLabels(table, cfg.LabelColumn)
	if err != nil {
		return nil, err
	}
	result.Features = features.Names()

	var opts []preprocess.SplitOption
	if cfg.Seed != nil {
		opts = append(opts, preprocess.WithSeed(*cfg.Seed))
	}
	split, err := preprocess.TrainTestSplit(features, labels, cfg.TestFraction, opts...)
	if err != nil {
		return nil, err
	}
	result.TrainRows, result.TestRows = split.TrainFeatures.NumRows(), split.TestFeatures.NumRows()
	logger.Info("划分训练集与测试集", zap.Int("train", result.TrainRows), zap.Int("test", result.TestRows))

	for i, imp := range cfg.Imputations {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled")
		}
		strategy, _ := preprocess.ParseStrategy(imp.Strategy)
		var constant *core.Value
		if imp.Constant != nil {
			v := core.Number(*imp.Constant)
			constant = &v
		}
		split.TrainFeatures, split.TestFeatures, err = preprocess.Impute(split.TrainFeatures, split.TestFeatures,
			imp.Columns, valueOf(imp.Missing), strategy, constant)
		if err != nil {
			return nil, errors.Wrapf(err, "imputation %d", i)
		}
		logger.Info("填充缺失值", zap.Strings("columns", imp.Columns), zap.String("strategy", imp.Strategy))
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "pipeline cancelled")
	}
	trainX, err := classify.TableToMatrix(split.TrainFeatures)
	if err != nil {
		return nil, errors.Wrap(err, "training features")
	}
	trainY, err := classify.ColumnToVector(split.TrainLabels)
	if err != nil {
		return nil, errors.Wrap(err, "training labels")
	}
	testX, err := classify.TableToMatrix(split.TestFeatures)
	if err != nil {
		return nil, errors.Wrap(err, "test features")
	}
	testY, err := classify.ColumnToVector(split.TestLabels)
	if err != nil {
		return nil, errors.Wrap(err, "test labels")
	}

	seed := int64(0)
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	model := &classify.LinearSVC{C: cfg.SVC.C, Epochs: cfg.SVC.Epochs, LearningRate: cfg.SVC.LearningRate, Seed: seed}
	if err := model.Fit(trainX, trainY); err != nil {
		return nil, errors.Wrap(err, "train svc")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "pipeline cancelled")
	}
	pred, err := model.Predict(testX)
	if err != nil {
		return nil, err
	}
	scores, err := classify.Metrics(testY, pred, cfg.PositiveLabel)
	if err != nil {
		return nil, err
	}

	result.Labels, result.Predictions = testY, pred
	result.Scores, result.Model = scores, model
	result.Duration = time.Since(start)
	logger.Info("训练完成", zap.Float64("accuracy", scores.Accuracy), zap.Float64("precision", scores.Precision),
		zap.Float64("recall", scores.Recall), zap.Float64("f1", scores.F1), zap.Duration("duration", result.Duration))
	return result, nil
}

func cleaningSteps(cfg *Config) []preprocess.Preprocessor {
	var steps []preprocess.Preprocessor
	if len(cfg.KeepTypes) > 0 {
		predicate := keepTypesPredicate(cfg.TypeColumn, cfg.KeepTypes)
		steps = append(steps, preprocess.Step("filter", func(table *core.Table) (*core.Table, error) {
			return preprocess.Filter(table, predicate)
		}))
	}
	if len(cfg.DropColumns) > 0 {
		steps = append(steps, preprocess.Step("drop", func(table *core.Table) (*core.Table, error) {
			return preprocess.Drop(table, cfg.DropColumns...)
		}))
	}
	for i := range cfg.Overrides {
		o := cfg.Overrides[i]
		steps = append(steps, preprocess.Step(fmt.Sprintf("override-%d", i), func(table *core.Table) (*core.Table, error) {
			return preprocess.SetWhere(table, o.Where, o.Columns, valueOf(o.Value))
		}))
	}
	if !cfg.KeepMissing {
		steps = append(steps, preprocess.Step("dropna", func(table *core.Table) (*core.Table, error) {
			return preprocess.DropMissing(table)
		}))
	}
	if len(cfg.TypeCodes) > 0 {
		codes := cfg.typeCodeMap()
		steps = append(steps, preprocess.Step("recode", func(table *core.Table) (*core.Table, error) {
			return preprocess.Recode(table, cfg.TypeColumn, codes)
		}))
	}
	if len(cfg.Features) > 0 {
		steps = append(steps, preprocess.Step("derive", func(table *core.Table) (*core.Table, error) {
			return preprocess.AddFeatures(table, cfg.Features)
		}))
	}
	return steps
}

func keepTypesPredicate(column string, types []string) string {
	terms := make([]string, len(types))
	for i, typ := range types {
		quoted := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(typ)
		terms[i] = fmt.Sprintf("`%s` == '%s'", column, quoted)
	}
	return strings.Join(terms, " or ")
}
