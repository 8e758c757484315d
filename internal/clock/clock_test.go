package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulated(t *testing.T) {
	var testCases = []struct {
		description string
		start       int
		quantum     int
		ticks       int
		expect      int
	}{
		{description: "unit quantum", quantum: 1, ticks: 3, expect: 3},
		{description: "larger quantum", quantum: 3, ticks: 2, expect: 6},
		{description: "no ticks", start: 5, quantum: 2, expect: 5},
	}
	for _, testCase := range testCases {
		c := NewSimulated(testCase.start, testCase.quantum)
		for i := 0; i < testCase.ticks; i++ {
			c.Tick()
		}
		assert.Equal(t, testCase.expect, c.Now(), testCase.description)
		assert.Equal(t, testCase.quantum, c.Quantum(), testCase.description)
	}
}

func TestNow(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return fixed }
	defer func() { NowFunc = time.Now }()
	assert.Equal(t, fixed, Now())
}
