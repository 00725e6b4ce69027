package evaluation

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrConfiguration marks invalid pipeline setup: bad split fractions,
// non-positive fold counts, empty candidate grids. These are fatal before any
// fitting begins.
var ErrConfiguration = errors.New("configuration error")

// TrainTestSplitter produces a reproducible random partition of record
// indices. The same seed and dataset size always yield the same partition, so
// all methods compared on one target see the identical test set.
type TrainTestSplitter struct {
	TrainFraction float64
	Seed          int64
}

func NewTrainTestSplitter(trainFraction float64, seed int64) *TrainTestSplitter {
	return &TrainTestSplitter{TrainFraction: trainFraction, Seed: seed}
}

func (tts *TrainTestSplitter) Split(n int) (train, test []int, err error) {
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: cannot split empty dataset", ErrConfiguration)
	}
	if tts.TrainFraction <= 0 || tts.TrainFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: train fraction must be in (0, 1), got %v",
			ErrConfiguration, tts.TrainFraction)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(tts.Seed))
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	trainCount := int(float64(n) * tts.TrainFraction)
	if trainCount == 0 {
		trainCount = 1
	}
	if trainCount == n {
		trainCount = n - 1
	}

	train = append([]int(nil), indices[:trainCount]...)
	test = append([]int(nil), indices[trainCount:]...)
	return train, test, nil
}

// KFoldSplitter partitions a set of training indices into k disjoint,
// roughly-equal folds. Folds are built once per tuning run and reused across
// all penalty candidates so candidates are compared on identical resamples.
type KFoldSplitter struct {
	NFolds int
	Seed   int64
}

func NewKFoldSplitter(nFolds int, seed int64) *KFoldSplitter {
	return &KFoldSplitter{NFolds: nFolds, Seed: seed}
}

func (kfs *KFoldSplitter) Split(indices []int) ([][]int, error) {
	n := len(indices)
	if kfs.NFolds <= 1 || kfs.NFolds > n {
		return nil, fmt.Errorf("%w: number of folds must be between 2 and %d, got %d",
			ErrConfiguration, n, kfs.NFolds)
	}

	shuffled := append([]int(nil), indices...)
	rng := rand.New(rand.NewSource(kfs.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	folds := make([][]int, kfs.NFolds)
	foldSize := n / kfs.NFolds

	for fold := 0; fold < kfs.NFolds; fold++ {
		start := fold * foldSize
		end := start + foldSize
		if fold == kfs.NFolds-1 {
			end = n
		}
		folds[fold] = append([]int(nil), shuffled[start:end]...)
	}

	return folds, nil
}
