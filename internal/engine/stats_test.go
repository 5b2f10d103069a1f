package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLedgerAccuracy(t *testing.T) {
	var l Ledger
	assert.Equal(t, 100.0, l.Accuracy())

	l.Record(true)
	l.Record(false)
	l.Record(true)
	l.Record(true)
	assert.Equal(t, 4, l.Total)
	assert.Equal(t, 1, l.Incorrect)
	assert.Equal(t, 75.0, l.Accuracy())
}

func TestWPM(t *testing.T) {
	assert.Zero(t, WPM(50, 0))
	assert.Equal(t, 60.0, WPM(300, time.Minute))
	assert.InDelta(t, 2.0, WPM(5, 30*time.Second), 1e-9)
}

func TestTimer(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tm Timer

	assert.False(t, tm.Started())
	assert.Zero(t, tm.Elapsed(base.Add(time.Hour)))

	tm.Start(base)
	tm.Start(base.Add(time.Second))
	assert.Equal(t, 3*time.Second, tm.Elapsed(base.Add(3*time.Second)))

	tm.Stop(base.Add(5 * time.Second))
	tm.Stop(base.Add(9 * time.Second))
	assert.Equal(t, 5*time.Second, tm.Elapsed(base.Add(time.Minute)))

	tm.Reset()
	assert.False(t, tm.Started())
}

func TestSampleHistoryFillsWholeSeconds(t *testing.T) {
	h := sampleHistory(nil, 2500*time.Millisecond, 41.6)
	assert.Equal(t, []int{42, 42}, h)

	h = sampleHistory(h, 2900*time.Millisecond, 50)
	assert.Equal(t, []int{42, 42}, h)

	h = sampleHistory(h, 4*time.Second, 50)
	assert.Equal(t, []int{42, 42, 50, 50}, h)
}
