// Package sharing resolves how a workspace directory is shared.
//
// A Rules map assigns a Strategy to free-form path keys:
//
//	screenshots      = global     # one copy for every workspace
//	interface/addons = base       # one copy per base
//	wtf              = workspace  # private per workspace
//
// Keys match case-insensitively on the whole path, on a path prefix, or on
// any single path component, so "addons" matches "Interface/AddOns". When
// several keys match, the longest key wins and equal lengths are decided
// lexically, which keeps resolution independent of map iteration order.
package sharing
