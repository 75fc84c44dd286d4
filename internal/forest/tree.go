package forest

import (
	"math/rand/v2"
	"sort"
)

// node is either a split (left/right set) or a leaf carrying P(class 1).
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node

	proba float64
	leaf  bool
}

func (n *node) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.proba
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	maxFeatures int
	minSplit    int
	rng         *rand.Rand
}

func (b *treeBuilder) build(idx []int) *node {
	pos := 0
	for _, i := range idx {
		pos += b.y[i]
	}
	if pos == 0 || pos == len(idx) || len(idx) < b.minSplit {
		return leafOf(pos, len(idx))
	}

	feature, threshold, ok := b.bestSplit(idx, pos)
	if !ok {
		return leafOf(pos, len(idx))
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left),
		right:     b.build(right),
	}
}

// bestSplit scans at least maxFeatures randomly ordered features and keeps
// drawing past that until some feature yields a valid split.
func (b *treeBuilder) bestSplit(idx []int, pos int) (int, float64, bool) {
	nFeatures := len(b.x[0])
	order := b.rng.Perm(nFeatures)

	parent := gini(pos, len(idx))
	bestFeature, bestThreshold := -1, 0.0
	bestImpurity := parent

	vals := make([]valued, len(idx))
	for visited, f := range order {
		if visited >= b.maxFeatures && bestFeature >= 0 {
			break
		}

		for k, i := range idx {
			vals[k] = valued{v: b.x[i][f], y: b.y[i]}
		}
		sort.Slice(vals, func(a, c int) bool { return vals[a].v < vals[c].v })

		n := len(vals)
		leftPos := 0
		for k := 0; k < n-1; k++ {
			leftPos += vals[k].y
			if vals[k].v == vals[k+1].v {
				continue
			}
			nl := k + 1
			nr := n - nl
			impurity := (float64(nl)*gini(leftPos, nl) + float64(nr)*gini(pos-leftPos, nr)) / float64(n)
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = (vals[k].v + vals[k+1].v) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

type valued struct {
	v float64
	y int
}

func leafOf(pos, n int) *node {
	if n == 0 {
		return &node{leaf: true}
	}
	return &node{leaf: true, proba: float64(pos) / float64(n)}
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}
