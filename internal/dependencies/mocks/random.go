package mocks

import (
	"github.com/mcoot/yahtzee-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// UUIDResults is a queue of results to return from UUID
	UUIDResults []string
	uuidIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// UUID returns the next queued identifier, or a fixed one if none remaining
func (r *MockRandom) UUID() string {
	if r.uuidIndex >= len(r.UUIDResults) {
		return "00000000-0000-4000-8000-000000000000"
	}
	result := r.UUIDResults[r.uuidIndex]
	r.uuidIndex++
	return result
}

// QueueUUID adds values to the UUID result queue
func (r *MockRandom) QueueUUID(values ...string) {
	r.UUIDResults = append(r.UUIDResults, values...)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueDice queues die faces (1-6) for the next rolls
func (r *MockRandom) QueueDice(faces ...int) {
	for _, f := range faces {
		r.IntnResults = append(r.IntnResults, f-1)
	}
}

// Remaining returns how many queued results have not been consumed
func (r *MockRandom) Remaining() int {
	return len(r.IntnResults) - r.intnIndex
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.UUIDResults = nil
	r.uuidIndex = 0
}
