package ml

import (
	"errors"
	"fmt"
	"sort"
)

// RandomForest is an ensemble of decision trees voting by majority.
type RandomForest struct {
	trees  []*DecisionTree
	scaler *Scaler
}

type RandomForestParams struct {
	Trees [][]TreeNode `json:"trees"`
}

func newRandomForest(params RandomForestParams, scaler *Scaler) (*RandomForest, error) {
	if len(params.Trees) == 0 {
		return nil, errors.New("random forest has no trees")
	}
	forest := &RandomForest{trees: make([]*DecisionTree, 0, len(params.Trees)), scaler: scaler}
	for i, nodes := range params.Trees {
		tree, err := NewDecisionTree(nodes)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		forest.trees = append(forest.trees, tree)
	}
	return forest, nil
}

func (rf *RandomForest) Predict(features FeatureVector) (int, error) {
	x := rf.scaler.Transform(features)
	votes := make(map[int]int)
	for i, tree := range rf.trees {
		label, err := tree.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		votes[label]++
	}
	return majorityVote(votes), nil
}

// majorityVote breaks ties towards the lowest label.
func majorityVote(votes map[int]int) int {
	labels := make([]int, 0, len(votes))
	for label := range votes {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	best, bestCount := 0, -1
	for _, label := range labels {
		if votes[label] > bestCount {
			best, bestCount = label, votes[label]
		}
	}
	return best
}
