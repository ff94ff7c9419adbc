package outline

// Node is an outline entry with the entries nested beneath it.
type Node struct {
	Entry
	Children []*Node `json:"children,omitempty"`
}

// Nest turns the flat, level-annotated outline into a tree. Each entry
// hangs under the closest preceding entry with a smaller level; entries
// without one become roots.
func Nest(entries []Entry) []*Node {
	var roots []*Node
	var stack []*Node
	for _, e := range entries {
		n := &Node{Entry: e}
		for len(stack) > 0 && stack[len(stack)-1].Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
	}
	return roots
}
