package memory

import (
	"errors"
	"fmt"
)

const none = -1

// ErrInvalidBlock is returned when freeing a block that is unknown or already free.
var ErrInvalidBlock = errors.New("memory: invalid block")

// BlockID identifies a block within a Space.  Identifiers are never reused.
type BlockID int

// Block is a read-only view of a contiguous address range
type Block struct {
	ID     BlockID `json:"id"`
	Start  int     `json:"start"`
	Length int     `json:"length"`
	Free   bool    `json:"free"`
}

// End returns the first address after the block
func (b Block) End() int {
	return b.Start + b.Length
}

type node struct {
	start  int
	length int
	free   bool
	live   bool
	prev   int
	next   int
}

// Space represents a simulated address space
type Space struct {
	total int
	nodes []node
	head  int
	tail  int
}

// New creates a space with a single free block covering [0, total)
func New(total int) *Space {
	if total < 0 {
		total = 0
	}
	ret := &Space{total: total}
	whole := ret.newNode(0, total, true)
	ret.head, ret.tail = whole, whole
	return ret
}

// Total returns the size of the address space
func (s *Space) Total() int {
	return s.total
}

// Allocate reserves size units using best fit: the smallest free block that
// can hold the request, the lowest address winning ties.  It returns false
// when no free block is large enough; callers are expected to retry later.
func (s *Space) Allocate(size int) (BlockID, bool) {
	if size < 0 {
		return 0, false
	}
	best := none
	for i := s.head; i != none; i = s.nodes[i].next {
		candidate := &s.nodes[i]
		if !candidate.free || candidate.length < size {
			continue
		}
		if best == none || candidate.length < s.nodes[best].length {
			best = i
		}
	}
	if best == none {
		return 0, false
	}
	if remainder := s.nodes[best].length - size; remainder > 0 {
		hole := s.newNode(s.nodes[best].start+size, remainder, true)
		s.linkAfter(best, hole)
		s.mergeNext(hole)
	}
	s.nodes[best].length = size
	s.nodes[best].free = false
	return BlockID(best), true
}

// Free releases an allocated block and coalesces it with free neighbours,
// next first, then previous.
func (s *Space) Free(id BlockID) error {
	idx := int(id)
	if idx < 0 || idx >= len(s.nodes) || !s.nodes[idx].live {
		return fmt.Errorf("%w: %d", ErrInvalidBlock, id)
	}
	if s.nodes[idx].free {
		return fmt.Errorf("%w: %d already free", ErrInvalidBlock, id)
	}
	s.nodes[idx].free = true
	s.mergeNext(idx)
	if prev := s.nodes[idx].prev; prev != none && s.nodes[prev].free {
		s.mergeNext(prev)
	}
	return nil
}

// Block returns a view of the block with the supplied id
func (s *Space) Block(id BlockID) (Block, bool) {
	idx := int(id)
	if idx < 0 || idx >= len(s.nodes) || !s.nodes[idx].live {
		return Block{}, false
	}
	return s.view(idx), true
}

// Blocks returns all blocks in address order
func (s *Space) Blocks() []Block {
	var ret []Block
	for i := s.head; i != none; i = s.nodes[i].next {
		ret = append(ret, s.view(i))
	}
	return ret
}

// FreeBytes returns the sum of free block lengths
func (s *Space) FreeBytes() int {
	ret := 0
	for i := s.head; i != none; i = s.nodes[i].next {
		if s.nodes[i].free {
			ret += s.nodes[i].length
		}
	}
	return ret
}

// Validate checks the partition invariant: blocks are address ordered, cover
// [0, total) without gaps or overlaps, links agree in both directions and no
// two neighbours are both free.
func (s *Space) Validate() error {
	expected := 0
	prev := none
	for i := s.head; i != none; i = s.nodes[i].next {
		n := s.nodes[i]
		if !n.live {
			return fmt.Errorf("memory: released block %d still linked", i)
		}
		if n.prev != prev {
			return fmt.Errorf("memory: block %d prev link %d, expected %d", i, n.prev, prev)
		}
		if n.start != expected {
			return fmt.Errorf("memory: block %d starts at %d, expected %d", i, n.start, expected)
		}
		if n.length < 0 {
			return fmt.Errorf("memory: block %d has negative length %d", i, n.length)
		}
		if prev != none && n.free && s.nodes[prev].free {
			return fmt.Errorf("memory: adjacent free blocks %d and %d", prev, i)
		}
		expected += n.length
		prev = i
	}
	if prev != s.tail {
		return fmt.Errorf("memory: tail is %d, last linked block is %d", s.tail, prev)
	}
	if expected != s.total {
		return fmt.Errorf("memory: blocks cover %d of %d", expected, s.total)
	}
	return nil
}

func (s *Space) String() string {
	ret := "["
	for i, block := range s.Blocks() {
		if i > 0 {
			ret += " "
		}
		state := "used"
		if block.Free {
			state = "free"
		}
		ret += fmt.Sprintf("%d+%d:%s", block.Start, block.Length, state)
	}
	return ret + "]"
}

func (s *Space) view(idx int) Block {
	n := s.nodes[idx]
	return Block{ID: BlockID(idx), Start: n.start, Length: n.length, Free: n.free}
}

func (s *Space) newNode(start, length int, free bool) int {
	s.nodes = append(s.nodes, node{start: start, length: length, free: free, live: true, prev: none, next: none})
	return len(s.nodes) - 1
}

// linkAfter inserts idx immediately after at
func (s *Space) linkAfter(at, idx int) {
	next := s.nodes[at].next
	s.nodes[idx].prev = at
	s.nodes[idx].next = next
	if next != none {
		s.nodes[next].prev = idx
	} else {
		s.tail = idx
	}
	s.nodes[at].next = idx
}

// mergeNext absorbs the next block into idx when both are free
func (s *Space) mergeNext(idx int) {
	next := s.nodes[idx].next
	if next == none || !s.nodes[idx].free || !s.nodes[next].free {
		return
	}
	s.nodes[idx].length += s.nodes[next].length
	s.unlink(next)
}

func (s *Space) unlink(idx int) {
	prev, next := s.nodes[idx].prev, s.nodes[idx].next
	if prev != none {
		s.nodes[prev].next = next
	} else {
		s.head = next
	}
	if next != none {
		s.nodes[next].prev = prev
	} else {
		s.tail = prev
	}
	s.nodes[idx] = node{prev: none, next: none}
}
