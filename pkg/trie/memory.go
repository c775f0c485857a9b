package trie

// Fixed costs used by EstimateMemory. They describe the structure, not the
// Go runtime's actual allocation sizes.
const (
	nodeBytes        = 8  // terminal length + importance
	tableHeaderBytes = 12 // capacity, size, max probe
	slotBytes        = 12 // key, probe length, child reference
)

// EstimateMemory returns a deterministic structural estimate of the trie's
// footprint in bytes. It is meant for benchmarking only.
func (t *Trie) EstimateMemory() int {
	total := 0
	t.Walk(func(_ []byte, n *Node) bool {
		total += nodeBytes + tableHeaderBytes + n.children.Cap()*slotBytes
		return true
	})
	return total
}

// Stats summarizes the shape of a trie.
type Stats struct {
	Nodes    int
	Words    int
	Slots    int
	Children int
	MaxProbe int
	Bytes    int
}

// Stats walks the trie once and returns its shape.
func (t *Trie) Stats() Stats {
	var s Stats
	t.Walk(func(_ []byte, n *Node) bool {
		s.Nodes++
		if n.Terminal() {
			s.Words++
		}
		s.Slots += n.children.Cap()
		s.Children += n.children.Len()
		if p := n.children.MaxProbe(); p > s.MaxProbe {
			s.MaxProbe = p
		}
		s.Bytes += nodeBytes + tableHeaderBytes + n.children.Cap()*slotBytes
		return true
	})
	return s
}
