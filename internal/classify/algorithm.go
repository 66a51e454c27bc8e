package classify

import (
	"github.com/packagewjx/kmeanspp"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// 聚类算法接口
type Algorithm interface {
	Run(data [][]float32, numClass int, context interface{}) (centers [][]float32, class []int, err error)
}

type AlgorithmType string

const (
	KMeans = AlgorithmType("kmeans")
)

func GetAlgorithm(algorithmType AlgorithmType) Algorithm {
	switch algorithmType {
	case KMeans:
		return &kMeansRunner{}
	default:
		return nil
	}
}

type KMeansContext struct {
	Round int
}

const (
	KMeansDefaultRound = 30
)

type kMeansRunner struct {
}

func (k *kMeansRunner) Run(data [][]float32, numClass int, context interface{}) ([][]float32, []int, error) {
	round := KMeansDefaultRound
	if context != nil {
		ctx, ok := context.(*KMeansContext)
		if !ok {
			return nil, nil, errors.Wrapf(core.ErrValue, "kmeans context has type %T", context)
		}
		if ctx.Round > 0 {
			round = ctx.Round
		}
	}
	if numClass < 1 || numClass > len(data) {
		return nil, nil, errors.Wrapf(core.ErrValue, "cannot form %d clusters from %d samples", numClass, len(data))
	}
	for i, row := range data {
		if len(row) != len(data[0]) {
			return nil, nil, errors.Wrapf(core.ErrValue, "sample %d has %d features, expected %d", i, len(row), len(data[0]))
		}
	}

	centers, class := kmeanspp.KMeansPP(numClass, round, data)
	return centers, class, nil
}
