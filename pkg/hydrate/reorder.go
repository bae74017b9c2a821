package hydrate

import (
	"sort"

	"github.com/fray-ui/fray/pkg/dom"
)

// Reorder rearranges the claimed children of parent so that sibling order
// is strictly ascending by claim order, using the minimum number of
// InsertBefore operations. Unclaimed children are ignored.
//
// Nodes on the longest strictly-increasing subsequence of claim orders are
// never moved; any valid reordering must keep its unmoved nodes in an
// increasing subsequence, so the longest one is the optimal set to keep.
// Every other node is inserted ahead of the first kept node whose claim
// order exceeds it, or appended when none does. Calling Reorder on an
// already-ordered container performs zero moves.
//
// Returns the number of nodes moved.
func Reorder(parent *dom.Node) int {
	var claimed []*dom.Node
	for _, child := range parent.Children() {
		if child.ClaimOrder() >= 0 {
			claimed = append(claimed, child)
		}
	}
	if len(claimed) < 2 {
		return 0
	}

	lis := longestIncreasing(claimed)

	inLIS := make(map[*dom.Node]struct{}, len(lis))
	for _, n := range lis {
		inLIS[n] = struct{}{}
	}

	var toMove []*dom.Node
	for _, n := range claimed {
		if _, ok := inLIS[n]; !ok {
			toMove = append(toMove, n)
		}
	}
	sort.Slice(toMove, func(i, j int) bool {
		return toMove[i].ClaimOrder() < toMove[j].ClaimOrder()
	})

	for _, n := range toMove {
		anchor := firstGreater(lis, n.ClaimOrder())
		parent.InsertBefore(n, anchor)
	}

	return len(toMove)
}

// longestIncreasing computes the longest strictly-increasing subsequence
// of claim orders using binary-search tail tracking, O(n log n).
func longestIncreasing(nodes []*dom.Node) []*dom.Node {
	// tails[l] holds the index of the smallest claim order that ends an
	// increasing subsequence of length l+1.
	tails := make([]int, 0, len(nodes))
	prev := make([]int, len(nodes))

	for i, n := range nodes {
		order := n.ClaimOrder()

		// Binary search for the first tail whose claim order is >= order.
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if nodes[tails[mid]].ClaimOrder() < order {
				lo = mid + 1
			} else {
				hi = mid
			}
		}

		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	// Walk back from the last tail to reconstruct the subsequence.
	lis := make([]*dom.Node, len(tails))
	idx := tails[len(tails)-1]
	for l := len(tails) - 1; l >= 0; l-- {
		lis[l] = nodes[idx]
		idx = prev[idx]
	}
	return lis
}

// firstGreater returns the first LIS node with a claim order greater than
// order, or nil when the node belongs at the end.
func firstGreater(lis []*dom.Node, order int) *dom.Node {
	lo, hi := 0, len(lis)
	for lo < hi {
		mid := (lo + hi) / 2
		if lis[mid].ClaimOrder() <= order {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(lis) {
		return nil
	}
	return lis[lo]
}
