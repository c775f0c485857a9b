package trie

// Node is one position in the character path space.
type Node struct {
	children *ChildTable
	// terminalLength is the length of the word ending here, 0 if none.
	terminalLength int
	importance     int
}

// NewNode returns a node with an empty ChildTable.
func NewNode() *Node {
	return &Node{children: NewChildTable()}
}

// Terminal reports whether a complete word ends at this node.
func (n *Node) Terminal() bool { return n.terminalLength > 0 }

// TerminalLength returns the length of the word ending here, or 0.
func (n *Node) TerminalLength() int { return n.terminalLength }

// Importance returns the accumulated importance counter.
func (n *Node) Importance() int { return n.importance }

// Children exposes the node's ChildTable for read-only inspection.
func (n *Node) Children() *ChildTable { return n.children }

// Child returns the child reached by key.
func (n *Node) Child(key byte) (*Node, bool) {
	return n.children.Search(key)
}
