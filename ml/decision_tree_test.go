package ml

import "testing"

// stumpNodes splits on one feature: <= threshold is class 0, above is class 1.
func stumpNodes(feature int, threshold float64) []TreeNode {
	return []TreeNode{
		{FeatureIdx: feature, Threshold: threshold, LeftChild: 1, RightChild: 2},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 0, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 1, IsLeaf: true},
	}
}

func leafNodes(label int) []TreeNode {
	return []TreeNode{{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: label, IsLeaf: true}}
}

func TestDecisionTreePredict(t *testing.T) {
	tree, err := NewDecisionTree(stumpNodes(3, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var low, high FeatureVector
	high[3] = 0.9
	if label, err := tree.Predict(low); err != nil || label != 0 {
		t.Fatalf("expected label 0, got %d (%v)", label, err)
	}
	if label, err := tree.Predict(high); err != nil || label != 1 {
		t.Fatalf("expected label 1, got %d (%v)", label, err)
	}
}

func TestDecisionTreeRejectsBadLayout(t *testing.T) {
	cases := map[string][]TreeNode{
		"empty":         nil,
		"feature range": {{FeatureIdx: FeatureCount, LeftChild: 1, RightChild: 2}},
		"self loop":     append([]TreeNode{{FeatureIdx: 0, LeftChild: 0, RightChild: 1}}, leafNodes(0)...),
		"dangling":      append([]TreeNode{{FeatureIdx: 0, LeftChild: 1, RightChild: 5}}, leafNodes(0)...),
	}
	for name, nodes := range cases {
		if _, err := NewDecisionTree(nodes); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRandomForestMajorityVote(t *testing.T) {
	forest, err := newRandomForest(RandomForestParams{Trees: [][]TreeNode{
		stumpNodes(0, 0.5),
		stumpNodes(0, 0.5),
		leafNodes(0),
	}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var x FeatureVector
	x[0] = 1
	if label, _ := forest.Predict(x); label != 1 {
		t.Fatalf("expected majority label 1, got %d", label)
	}
	if label, _ := forest.Predict(FeatureVector{}); label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}
}

func TestRandomForestTieGoesToLowestLabel(t *testing.T) {
	forest, err := newRandomForest(RandomForestParams{Trees: [][]TreeNode{leafNodes(1), leafNodes(0)}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label, _ := forest.Predict(FeatureVector{}); label != 0 {
		t.Fatalf("expected tie to resolve to 0, got %d", label)
	}
}
