package fraud

import (
	"encoding/json"

	"github.com/packagewjx/tabprep/internal/classify"
	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

const (
	DefaultTestFraction  = 0.30
	DefaultPositiveLabel = 1
)

// Override sets Columns to Value on every row matching Where. A nil Value
// writes a missing value.
type Override struct {
	Where   string   `mapstructure:"where" json:"where"`
	Columns []string `mapstructure:"columns" json:"columns"`
	Value   *float64 `mapstructure:"value" json:"value"`
}

// Imputation is fitted on the training split and applied to both splits. A nil
// Missing treats null and NaN cells as missing.
type Imputation struct {
	Columns  []string `mapstructure:"columns" json:"columns"`
	Strategy string   `mapstructure:"strategy" json:"strategy"`
	Missing  *float64 `mapstructure:"missing" json:"missing"`
	Constant *float64 `mapstructure:"constant" json:"constant"`
}

// TypeCode maps one transaction type to its numeric code. The type travels as
// a value because config keys are case folded.
type TypeCode struct {
	Value string  `mapstructure:"value" json:"value"`
	Code  float64 `mapstructure:"code" json:"code"`
}

type SVCConfig struct {
	C            float64 `mapstructure:"c" json:"c"`
	Epochs       int     `mapstructure:"epochs" json:"epochs"`
	LearningRate float64 `mapstructure:"learningRate" json:"learningRate"`
}

type Config struct {
	TypeColumn  string     `mapstructure:"typeColumn" json:"typeColumn"`
	KeepTypes   []string   `mapstructure:"keepTypes" json:"keepTypes"`
	DropColumns []string   `mapstructure:"dropColumns" json:"dropColumns"`
	Overrides   []Override `mapstructure:"overrides" json:"overrides"`
	// KeepMissing skips dropping incomplete rows, leaving them to Imputations.
	KeepMissing   bool                    `mapstructure:"keepMissing" json:"keepMissing"`
	LabelColumn   string                  `mapstructure:"labelColumn" json:"labelColumn"`
	PositiveLabel float64                 `mapstructure:"positiveLabel" json:"positiveLabel"`
	TypeCodes     []TypeCode              `mapstructure:"typeCodes" json:"typeCodes"`
	Features      []preprocess.Derivation `mapstructure:"features" json:"features"`
	TestFraction  float64                 `mapstructure:"testFraction" json:"testFraction"`
	Seed          *int64                  `mapstructure:"seed" json:"seed"`
	Imputations   []Imputation            `mapstructure:"imputations" json:"imputations"`
	SVC           SVCConfig               `mapstructure:"svc" json:"svc"`
}

func (c Config) String() string {
	marshal, _ := json.Marshal(c)
	return string(marshal)
}

// DefaultConfig reproduces the PaySim transaction cleaning and training run.
func DefaultConfig() *Config {
	return &Config{
		TypeColumn:  "type",
		KeepTypes:   []string{"TRANSFER", "CASH_OUT"},
		DropColumns: []string{"step", "nameOrig", "nameDest", "isFlaggedFraud"},
		Overrides: []Override{
			{
				Where:   "oldbalanceDest == 0 and newbalanceDest == 0 and amount != 0",
				Columns: []string{"oldbalanceDest", "newbalanceDest"},
				Value:   float64Ptr(-1),
			},
			{
				Where:   "oldbalanceOrg == 0 and newbalanceOrig == 0 and amount != 0",
				Columns: []string{"oldbalanceOrg", "newbalanceOrig"},
			},
		},
		LabelColumn:   "isFraud",
		PositiveLabel: DefaultPositiveLabel,
		TypeCodes:     []TypeCode{{Value: "TRANSFER", Code: 0}, {Value: "CASH_OUT", Code: 1}},
		Features: []preprocess.Derivation{
			{Name: "errorBalanceOrig", Expr: "newbalanceOrig + amount - oldbalanceOrg"},
			{Name: "errorBalanceDest", Expr: "oldbalanceDest + amount - newbalanceDest"},
		},
		TestFraction: DefaultTestFraction,
		SVC: SVCConfig{
			C:            classify.SVCDefaultC,
			Epochs:       classify.SVCDefaultEpochs,
			LearningRate: classify.SVCDefaultLearningRate,
		},
	}
}

// Complete validates the configuration and fills in defaults for the unset
// model parameters.
func (c *Config) Complete() error {
	if c.LabelColumn == "" {
		return errors.Wrap(core.ErrValue, "label column is not set")
	}
	if (len(c.KeepTypes) > 0 || len(c.TypeCodes) > 0) && c.TypeColumn == "" {
		return errors.Wrap(core.ErrValue, "keepTypes and typeCodes need a type column")
	}
	if c.TestFraction == 0 {
		c.TestFraction = DefaultTestFraction
	}
	if !(c.TestFraction > 0 && c.TestFraction < 1) {
		return errors.Wrapf(core.ErrValue, "test fraction should be in (0, 1), got %v", c.TestFraction)
	}
	seen := make(map[string]struct{}, len(c.TypeCodes))
	for _, tc := range c.TypeCodes {
		if _, ok := seen[tc.Value]; ok {
			return errors.Wrapf(core.ErrValue, "type %q is coded twice", tc.Value)
		}
		seen[tc.Value] = struct{}{}
	}
	for i, o := range c.Overrides {
		if o.Where == "" || len(o.Columns) == 0 {
			return errors.Wrapf(core.ErrValue, "override %d needs a condition and columns", i)
		}
	}
	for i, d := range c.Features {
		if d.Name == "" || d.Expr == "" {
			return errors.Wrapf(core.ErrValue, "feature %d needs a name and an expression", i)
		}
	}
	for i, imp := range c.Imputations {
		if _, err := preprocess.ParseStrategy(imp.Strategy); err != nil {
			return errors.Wrapf(err, "imputation %d", i)
		}
		if len(imp.Columns) == 0 {
			return errors.Wrapf(core.ErrValue, "imputation %d has no columns", i)
		}
	}

	if c.SVC.C == 0 {
		c.SVC.C = classify.SVCDefaultC
	}
	if c.SVC.Epochs == 0 {
		c.SVC.Epochs = classify.SVCDefaultEpochs
	}
	if c.SVC.LearningRate == 0 {
		c.SVC.LearningRate = classify.SVCDefaultLearningRate
	}
	if c.SVC.C < 0 || c.SVC.Epochs < 0 || c.SVC.LearningRate < 0 {
		return errors.Wrapf(core.ErrValue, "svc parameters must be positive: %+v", c.SVC)
	}
	return nil
}

func (c *Config) typeCodeMap() map[string]float64 {
	codes := make(map[string]float64, len(c.TypeCodes))
	for _, tc := range c.TypeCodes {
		codes[tc.Value] = tc.Code
	}
	return codes
}

func float64Ptr(f float64) *float64 { return &f }

func valueOf(f *float64) core.Value {
	if f == nil {
		return core.Null()
	}
	return core.Number(*f)
}
