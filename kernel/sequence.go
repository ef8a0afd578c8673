package kernel

import (
	"fmt"

	"github.com/yuth/jsii/domain"
)

// Default origin and stride for the instance ID sequence (§4.1). Reserving
// the low numbers lets the host allocate sentinel IDs without collision.
const (
	DefaultOrigin = 10000
	DefaultStride = 1
)

// sequence is a monotonic integer generator parameterized by origin and
// stride. It is not safe for concurrent use; the object store serializes
// access under its own lock.
type sequence struct {
	origin int
	stride int
	next   int
}

var _ domain.InstanceSequenceIface = (*sequence)(nil)

// newSequence builds a sequence yielding origin, origin+stride, origin+2*stride, ...
func newSequence(origin, stride int) *sequence {
	if stride <= 0 {
		stride = DefaultStride
	}
	if origin < 0 {
		origin = DefaultOrigin
	}
	return &sequence{origin: origin, stride: stride, next: origin}
}

// Next returns the wire-format instance ID "«classFQN»@«n»" for the next
// value in the sequence.
func (s *sequence) Next(classFQN string) string {
	n := s.next
	s.next += s.stride
	return fmt.Sprintf("%s@%d", classFQN, n)
}
