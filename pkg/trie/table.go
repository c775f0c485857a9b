package trie

import "fmt"

const (
	// InitialTableCapacity is the slot count of a freshly created ChildTable.
	InitialTableCapacity = 5

	// MaxTableCapacity bounds how far the growth schedule is extended.
	MaxTableCapacity = 4096

	// loadFactor is the fill ratio above which a table rehashes before inserting.
	loadFactor = 0.9
)

// growthSchedule lists the fixed capacities. Past the last one, nextCapacity
// extends it with the smallest prime at least 8/5 of the previous capacity.
var growthSchedule = []int{5, 11, 19, 29}

// slot is one cell of a ChildTable. A nil child marks an empty slot.
type slot struct {
	key   byte
	probe int
	child *Node
}

// ChildTable maps a letter to an owned child Node using open addressing
// with Robin Hood displacement.
type ChildTable struct {
	slots    []slot
	size     int
	maxProbe int
}

// NewChildTable returns an empty table with InitialTableCapacity slots.
func NewChildTable() *ChildTable {
	return &ChildTable{slots: make([]slot, InitialTableCapacity)}
}

// Len returns the number of stored children.
func (ct *ChildTable) Len() int { return ct.size }

// Cap returns the current slot count.
func (ct *ChildTable) Cap() int { return len(ct.slots) }

// MaxProbe returns the largest probe length among the current entries.
func (ct *ChildTable) MaxProbe() int { return ct.maxProbe }

func (ct *ChildTable) home(key byte) int {
	return int(key) % len(ct.slots)
}

// Search returns the child stored under key. It gives up once it has walked
// further than MaxProbe steps from the home slot.
func (ct *ChildTable) Search(key byte) (*Node, bool) {
	capacity := len(ct.slots)
	index := ct.home(key)
	for probe := 0; probe <= ct.maxProbe && probe < capacity; probe++ {
		s := &ct.slots[index]
		if s.child == nil {
			return nil, false
		}
		if s.key == key {
			return s.child, true
		}
		index = (index + 1) % capacity
	}
	return nil, false
}

// Insert stores child under key, replacing the child of an existing key.
// A table that is more than 90% full is rehashed into the next capacity
// first. On error the table is left unchanged.
func (ct *ChildTable) Insert(key byte, child *Node) error {
	if !IsLetter(key) {
		return fmt.Errorf("insert %q: %w", key, ErrInvalidCharacter)
	}
	if child == nil {
		return ErrNilChild
	}

	if idx, ok := ct.indexOf(key); ok {
		ct.slots[idx].child = child
		return nil
	}

	if float64(ct.size) > loadFactor*float64(len(ct.slots)) {
		if err := ct.rehash(); err != nil {
			return err
		}
	}
	ct.place(slot{key: key, child: child})
	return nil
}

// indexOf is Search returning the slot position.
func (ct *ChildTable) indexOf(key byte) (int, bool) {
	capacity := len(ct.slots)
	index := ct.home(key)
	for probe := 0; probe <= ct.maxProbe && probe < capacity; probe++ {
		s := &ct.slots[index]
		if s.child == nil {
			return 0, false
		}
		if s.key == key {
			return index, true
		}
		index = (index + 1) % capacity
	}
	return 0, false
}

// place runs the Robin Hood probe for an entry known to be absent. The
// caller guarantees at least one empty slot.
func (ct *ChildTable) place(entry slot) {
	capacity := len(ct.slots)
	index := ct.home(entry.key)
	entry.probe = 0

	for {
		occupant := &ct.slots[index]
		if occupant.child == nil {
			*occupant = entry
			ct.size++
			ct.raiseMaxProbe(entry.probe)
			return
		}
		// steal from the rich: the entry closer to its home slot moves on
		if occupant.probe < entry.probe {
			entry, *occupant = *occupant, entry
			ct.raiseMaxProbe(occupant.probe)
		}
		index = (index + 1) % capacity
		entry.probe++
	}
}

func (ct *ChildTable) raiseMaxProbe(probe int) {
	if probe > ct.maxProbe {
		ct.maxProbe = probe
	}
}

// rehash moves every entry into a table of the next scheduled capacity.
func (ct *ChildTable) rehash() error {
	next, err := nextCapacity(len(ct.slots))
	if err != nil {
		return err
	}

	old := ct.slots
	ct.slots = make([]slot, next)
	ct.size = 0
	ct.maxProbe = 0
	for _, s := range old {
		if s.child != nil {
			ct.place(s)
		}
	}
	return nil
}

// nextCapacity returns the schedule step after current.
func nextCapacity(current int) (int, error) {
	for i, c := range growthSchedule {
		if c == current && i+1 < len(growthSchedule) {
			return growthSchedule[i+1], nil
		}
	}
	next := nextPrime(current * 8 / 5)
	if next <= current || next > MaxTableCapacity {
		return 0, fmt.Errorf("grow from %d slots: %w", current, ErrCapacityExhausted)
	}
	return next, nil
}

func nextPrime(n int) int {
	if n < 2 {
		return 2
	}
	for ; ; n++ {
		if isPrime(n) {
			return n
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Entry is a key/child pair as seen by iteration.
type Entry struct {
	Key   byte
	Child *Node
}

// Each calls fn for every stored entry in slot order. Iteration stops when
// fn returns false.
func (ct *ChildTable) Each(fn func(key byte, child *Node) bool) {
	for _, s := range ct.slots {
		if s.child == nil {
			continue
		}
		if !fn(s.key, s.child) {
			return
		}
	}
}

// Children returns the entries ordered by key.
func (ct *ChildTable) Children() []Entry {
	if ct.size == 0 {
		return nil
	}
	var byKey [AlphabetSize]*Node
	for _, s := range ct.slots {
		if s.child != nil {
			byKey[s.key-'a'] = s.child
		}
	}
	out := make([]Entry, 0, ct.size)
	for i, child := range byKey {
		if child != nil {
			out = append(out, Entry{Key: byte('a' + i), Child: child})
		}
	}
	return out
}

// probeLengthOf returns the recorded probe length for key, or -1.
func (ct *ChildTable) probeLengthOf(key byte) int {
	if idx, ok := ct.indexOf(key); ok {
		return ct.slots[idx].probe
	}
	return -1
}
