package search

import "github.com/five82/trawl/internal/browser"

// Flatten returns every bookmark in forest. Folders, including empty ones,
// are never emitted. The input is not modified.
func Flatten(forest []browser.TreeNode) []browser.FlatEntry {
	out := make([]browser.FlatEntry, 0)
	stack := make([]browser.TreeNode, 0, len(forest))
	stack = append(stack, forest...)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.IsFolder() {
			stack = append(stack, node.Children...)
			continue
		}
		out = append(out, browser.FlatEntry{ID: node.ID, Title: node.Title, URL: node.URL})
	}
	return out
}
