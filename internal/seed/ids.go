package seed

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDKind is the fourth group of a sequential identifier. Each entity kind owns its own range.
type IDKind int

const (
	KindUser        IDKind = 0
	KindCompany     IDKind = 1
	KindResource    IDKind = 2
	KindAchievement IDKind = 4
)

// SequentialID formats n as 00000000-0000-0000-<kind>-<n, 12 digits>.
func SequentialID(kind IDKind, n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-%04d-%012d", kind, n))
}

// SequenceOf recovers n from an identifier built by SequentialID.
func SequenceOf(id uuid.UUID) (int, error) {
	s := id.String()
	return strconv.Atoi(s[len(s)-12:])
}

const (
	courseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	courseDigits  = 100000
)

// CourseIDAllocator hands out course identifiers of three uppercase letters and five digits,
// unique across every semester it has served.
type CourseIDAllocator struct {
	src  *Source
	used map[string]struct{}
}

func NewCourseIDAllocator(src *Source) *CourseIDAllocator {
	return &CourseIDAllocator{src: src, used: make(map[string]struct{})}
}

// Next draws identifiers until one has not been issued before.
func (a *CourseIDAllocator) Next() string {
	return uniqueString(a.used, func() string {
		b := make([]byte, 3, 8)
		for i := range b {
			b[i] = courseLetters[a.src.Rand.Intn(len(courseLetters))]
		}
		return fmt.Sprintf("%s%05d", b, a.src.Rand.Intn(courseDigits))
	})
}

// Issued reports how many identifiers have been allocated.
func (a *CourseIDAllocator) Issued() int {
	return len(a.used)
}

// newRandomID draws a version 4 UUID from the seeded stream.
func newRandomID(src *Source) (uuid.UUID, error) {
	return uuid.NewRandomFromReader(src.Rand)
}
