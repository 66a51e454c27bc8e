package classify

import (
	"math"
	"math/rand"
	"sort"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	SVCDefaultC            = 1.0
	SVCDefaultEpochs       = 20
	SVCDefaultLearningRate = 0.01
)

// LinearSVC is a binary linear support vector classifier trained by
// stochastic sub-gradient descent on the L2 regularised hinge loss.
// Features are standardised with the statistics of the training set.
type LinearSVC struct {
	C            float64
	Epochs       int
	LearningRate float64
	Seed         int64

	weights []float64
	bias    float64
	mean    []float64
	scale   []float64
	// negative and positive class labels
	classes  [2]float64
	constant bool
	fitted   bool
}

func NewLinearSVC(seed int64) *LinearSVC {
	return &LinearSVC{
		C:            SVCDefaultC,
		Epochs:       SVCDefaultEpochs,
		LearningRate: SVCDefaultLearningRate,
		Seed:         seed,
	}
}

func (m *LinearSVC) Fit(X [][]float64, y []float64) error {
	if m.C <= 0 || m.Epochs <= 0 || m.LearningRate <= 0 {
		return errors.Wrapf(core.ErrValue, "invalid parameters C=%v epochs=%d learningRate=%v", m.C, m.Epochs, m.LearningRate)
	}
	if len(X) == 0 {
		return errors.Wrap(core.ErrValue, "no training samples")
	}
	if len(X) != len(y) {
		return errors.Wrapf(core.ErrValue, "%d samples but %d labels", len(X), len(y))
	}
	nFeatures := len(X[0])
	if err := checkMatrix(X, nFeatures); err != nil {
		return err
	}

	classes, err := binaryClasses(y)
	if err != nil {
		return err
	}
	m.fitted = false
	m.weights = make([]float64, nFeatures)
	m.bias = 0
	m.fitScaler(X, nFeatures)
	if len(classes) == 1 {
		m.classes = [2]float64{classes[0], classes[0]}
		m.constant = true
		m.fitted = true
		return nil
	}
	m.classes = [2]float64{classes[0], classes[1]}
	m.constant = false

	n := len(X)
	scaled := make([][]float64, n)
	signs := make([]float64, n)
	for i, row := range X {
		scaled[i] = m.transform(row)
		if y[i] == m.classes[1] {
			signs[i] = 1
		} else {
			signs[i] = -1
		}
	}

	lambda := 1 / (m.C * float64(n))
	rng := rand.New(rand.NewSource(m.Seed))
	t := 0
	for epoch := 0; epoch < m.Epochs; epoch++ {
		for _, i := range rng.Perm(n) {
			t++
			eta := m.LearningRate / (1 + m.LearningRate*lambda*float64(t))
			margin := signs[i] * (floats.Dot(m.weights, scaled[i]) + m.bias)
			floats.Scale(1-eta*lambda, m.weights)
			if margin < 1 {
				floats.AddScaled(m.weights, eta*signs[i], scaled[i])
				m.bias += eta * signs[i]
			}
		}
	}
	m.fitted = true
	return nil
}

// Decision returns the signed distance of each sample to the hyperplane.
func (m *LinearSVC) Decision(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.Wrap(core.ErrValue, "model is not fitted")
	}
	if err := checkMatrix(X, len(m.weights)); err != nil {
		return nil, err
	}
	result := make([]float64, len(X))
	for i, row := range X {
		result[i] = floats.Dot(m.weights, m.transform(row)) + m.bias
	}
	return result, nil
}

func (m *LinearSVC) Predict(X [][]float64) ([]float64, error) {
	decision, err := m.Decision(X)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(decision))
	for i, d := range decision {
		if !m.constant && d > 0 {
			result[i] = m.classes[1]
		} else {
			result[i] = m.classes[0]
		}
	}
	return result, nil
}

func (m *LinearSVC) Weights() []float64 {
	result := make([]float64, len(m.weights))
	copy(result, m.weights)
	return result
}

func (m *LinearSVC) Bias() float64 { return m.bias }

func (m *LinearSVC) fitScaler(X [][]float64, nFeatures int) {
	m.mean = make([]float64, nFeatures)
	m.scale = make([]float64, nFeatures)
	col := make([]float64, len(X))
	for j := 0; j < nFeatures; j++ {
		for i, row := range X {
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		m.mean[j], m.scale[j] = mean, std
	}
}

func (m *LinearSVC) transform(row []float64) []float64 {
	result := make([]float64, len(row))
	for j, v := range row {
		result[j] = (v - m.mean[j]) / m.scale[j]
	}
	return result
}

func checkMatrix(X [][]float64, nFeatures int) error {
	for i, row := range X {
		if len(row) != nFeatures {
			return errors.Wrapf(core.ErrValue, "row %d has %d features, expected %d", i, len(row), nFeatures)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(core.ErrValue, "row %d feature %d is %v", i, j, v)
			}
		}
	}
	return nil
}

func binaryClasses(y []float64) ([]float64, error) {
	seen := make(map[float64]struct{}, 2)
	for _, v := range y {
		if math.IsNaN(v) {
			return nil, errors.Wrap(core.ErrValue, "label is missing")
		}
		seen[v] = struct{}{}
	}
	if len(seen) > 2 {
		return nil, errors.Wrapf(core.ErrValue, "%d classes found, only binary labels are supported", len(seen))
	}
	classes := make([]float64, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)
	return classes, nil
}
