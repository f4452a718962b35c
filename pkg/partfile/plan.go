package partfile

// DefaultParts is the part count used when no sizing directive is given.
// Files smaller than DefaultParts bytes get one part per byte.
const DefaultParts = 24

type sizingMode int

const (
	sizeDefault sizingMode = iota
	sizeCount
	sizeMax
)

// Sizing selects how a source is partitioned: a fixed part count, a
// maximum part size, or the default. The zero value is the default.
type Sizing struct {
	mode     sizingMode
	count    int
	maxBytes int64
}

// FixedCount splits the source into exactly n parts.
func FixedCount(n int) Sizing {
	return Sizing{mode: sizeCount, count: n}
}

// MaxPartSize splits the source into the fewest parts such that no part
// exceeds bytes.
func MaxPartSize(bytes int64) Sizing {
	return Sizing{mode: sizeMax, maxBytes: bytes}
}

// DefaultSizing splits the source into min(DefaultParts, size) parts.
func DefaultSizing() Sizing {
	return Sizing{}
}

// Plan is an ordered partition of a source file: Lengths[i] is the byte
// length of part i, and the lengths sum exactly to the source size. Part i
// covers the contiguous range starting at Offset(i).
type Plan struct {
	Lengths []int64
}

// Count returns the number of planned parts.
func (p Plan) Count() int {
	return len(p.Lengths)
}

// TotalSize returns the sum of all part lengths.
func (p Plan) TotalSize() int64 {
	var total int64
	for _, n := range p.Lengths {
		total += n
	}
	return total
}

// Offset returns the byte offset of part i within the source.
func (p Plan) Offset(i int) int64 {
	var off int64
	for _, n := range p.Lengths[:i] {
		off += n
	}
	return off
}

// PlanParts computes the partition of a size-byte source under the given
// sizing. Pure function, no I/O.
//
// The remainder rule is fixed: with count parts, base = size/count and
// r = size%count; the first r parts get base+1 bytes and the rest get base.
// Lengths therefore differ by at most one, larger parts first, and always
// sum to size.
//
// Requesting more parts than there are bytes fails rather than emitting
// zero-length parts.
func PlanParts(size int64, s Sizing) (Plan, error) {
	if size <= 0 {
		return Plan{}, invalidf("plan", "source size must be positive, got %d", size)
	}

	var count int64
	switch s.mode {
	case sizeCount:
		if s.count < 1 {
			return Plan{}, invalidf("plan", "part count must be at least 1, got %d", s.count)
		}
		if int64(s.count) > size {
			return Plan{}, invalidf("plan", "cannot split %d bytes into %d parts without zero-length parts", size, s.count)
		}
		count = int64(s.count)
	case sizeMax:
		if s.maxBytes < 1 {
			return Plan{}, invalidf("plan", "max part size must be at least 1 byte, got %d", s.maxBytes)
		}
		count = (size + s.maxBytes - 1) / s.maxBytes
	default:
		count = DefaultParts
		if size < count {
			count = size
		}
	}

	base := size / count
	rem := size % count
	lengths := make([]int64, count)
	for i := range lengths {
		lengths[i] = base
		if int64(i) < rem {
			lengths[i]++
		}
	}

	// Hard constraint, not a silent clamp: the derived count must keep
	// every part within the requested bound.
	if s.mode == sizeMax {
		for i, n := range lengths {
			if n > s.maxBytes {
				return Plan{}, invalidf("plan", "part %d length %d exceeds max part size %d", i, n, s.maxBytes)
			}
		}
	}

	return Plan{Lengths: lengths}, nil
}
