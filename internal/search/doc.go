// Package search turns a bookmark forest and a free-text query into the
// entries the UI lists.
//
// Flatten projects the forest onto its leaves with an explicit stack: every
// root is pushed, then the top is popped repeatedly; a folder pushes its
// children and a bookmark is emitted. The order is a stack traversal, not
// a pre-order walk, and callers must not rely on anything beyond "every
// leaf exactly once" unless they pin it in a test.
//
// Normalize maps Han characters to tone-less pinyin and lowercases the
// result, so "新闻" becomes "xinwen". Other runes pass through.
//
// A Matcher accepts an entry when any of these hold:
//
//	Normalize(title) contains Normalize(query)
//	title contains query
//	url contains query
//	url contains Normalize(query)
//
// The literal checks are case-sensitive unless Options.IgnoreCase is set.
// The phonetic check is case-insensitive because Normalize lowercases both
// sides. An empty query accepts everything.
//
// Rank optionally reorders matches by fuzzy score (sahilm/fuzzy) over the
// normalized text. Entries without a fuzzy hit keep their relative order
// after the ranked ones.
package search
