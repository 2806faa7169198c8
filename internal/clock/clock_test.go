package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	got, err := Combine("2024-01-01", "10:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, loc), got)
	assert.Equal(t, time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC), got.UTC())

	_, err = Combine("2024-13-01", "10:30", loc)
	assert.Error(t, err)
	_, err = Combine("2024-01-01", "", loc)
	assert.Error(t, err)
}

func TestFixed(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewFixed(base)
	assert.Equal(t, base, c.Now())
	c.Advance(time.Hour)
	assert.Equal(t, base.Add(time.Hour), c.Now())
	assert.Equal(t, time.UTC, c.Location())
}

func TestDateOptionsAndSlots(t *testing.T) {
	now := time.Date(2024, 1, 30, 22, 15, 0, 0, time.UTC)
	dates := DateOptions(now, 7)
	require.Len(t, dates, 7)
	assert.Equal(t, "2024-01-30", dates[0])
	assert.Equal(t, "2024-02-05", dates[6])

	slots := TimeSlots(8, 24)
	require.Len(t, slots, 16)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "23:00", slots[15])
	assert.Nil(t, TimeSlots(10, 10))
}

func TestSystem(t *testing.T) {
	c := NewSystem(time.UTC)
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Equal(t, time.Local, NewSystem(nil).Location())
}
