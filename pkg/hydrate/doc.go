// Package hydrate reconciles pre-rendered DOM against a mounting fragment
// tree.
//
// During the claim phase each adopted node is stamped with a monotonically
// increasing claim order, the order in which the fragment tree expects to
// consume it. Reorder then physically reorders the container's children so
// sibling order matches ascending claim order, moving as few nodes as
// possible: the longest strictly-increasing subsequence of claim orders
// stays put and everything else is repositioned with InsertBefore.
package hydrate
