package content

import "github.com/eringen/devopsite/markdown"

// BuildTOC nests a flat, document-ordered heading list into a forest.
// A heading becomes a child of the closest preceding heading with a lower
// level; headings with no such ancestor are top-level siblings.
func BuildTOC(headings []markdown.Heading) []*TOCItem {
	var roots []*TOCItem
	var stack []*TOCItem
	for _, h := range headings {
		item := &TOCItem{ID: h.ID, Title: h.Text, Level: h.Level}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, item)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, item)
		}
		stack = append(stack, item)
	}
	return roots
}
