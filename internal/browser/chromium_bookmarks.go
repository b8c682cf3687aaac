package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type chromiumBookmarkNode struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Type     string                 `json:"type"`
	URL      string                 `json:"url"`
	Children []chromiumBookmarkNode `json:"children"`
}

// Only these roots are user-visible; the file may carry others.
var chromiumBookmarkRoots = []string{"bookmark_bar", "other", "synced"}

func (c *Chromium) BookmarkTree(ctx context.Context) ([]TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, fail(SourceBookmarks, err)
	}
	data, err := os.ReadFile(c.bookmarksPath())
	if err != nil {
		return nil, fail(SourceBookmarks, fmt.Errorf("read bookmarks: %w", err))
	}
	forest, err := parseChromiumBookmarks(data)
	if err != nil {
		return nil, fail(SourceBookmarks, err)
	}
	return forest, nil
}

func parseChromiumBookmarks(data []byte) ([]TreeNode, error) {
	var file struct {
		Roots map[string]json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	if file.Roots == nil {
		return nil, &FetchError{Source: SourceBookmarks, Kind: KindMalformed, Err: errors.New("bookmarks file has no roots")}
	}

	root := TreeNode{ID: "0", Children: []TreeNode{}}
	for _, key := range chromiumBookmarkRoots {
		raw, ok := file.Roots[key]
		if !ok {
			continue
		}
		var node chromiumBookmarkNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("decode bookmarks %s: %w", key, err)
		}
		// Roots are folders even when the type field is missing.
		node.Type = "folder"
		root.Children = append(root.Children, convertChromiumNode(node))
	}
	return []TreeNode{root}, nil
}

func convertChromiumNode(n chromiumBookmarkNode) TreeNode {
	out := TreeNode{ID: n.ID, Title: n.Name, URL: n.URL}
	if n.Type != "folder" {
		return out
	}
	out.Children = make([]TreeNode, 0, len(n.Children))
	for _, child := range n.Children {
		out.Children = append(out.Children, convertChromiumNode(child))
	}
	return out
}
