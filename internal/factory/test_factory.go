package factory

import (
	"time"

	"github.com/mcoot/yahtzee-go/internal/dependencies/mocks"
	"github.com/mcoot/yahtzee-go/internal/events"
	"github.com/mcoot/yahtzee-go/internal/storage/memory"
	"github.com/mcoot/yahtzee-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Events records everything the controller publishes
	Events *events.Recorder
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	recorder := events.NewRecorder()

	app := newWithDependencies(store, mockClock, mockRandom, nil, 0, testutil.NopLogger(), recorder)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Events:     recorder,
	}
}

// QueueTurn queues the faces for the next roll
func (t *TestApp) QueueTurn(faces ...int) {
	t.MockRandom.QueueDice(faces...)
}
