package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	local := time.Date(2026, 10, 20, 5, 0, 0, 0, loc) // 2026-10-19 19:00 UTC

	assert.Equal(t, "2026-10-19", DateKey(local))
}

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	a := WordIndex(day, 5, "salt", 50)
	assert.Equal(t, a, WordIndex(later, 5, "salt", 50), "same date, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 50)
}

func TestWordIndexVaries(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	base := WordIndex(day, 5, "salt", 1000)

	tests := []struct {
		name string
		vary func(i int) int
	}{
		{"date", func(i int) int { return WordIndex(day.AddDate(0, 0, i), 5, "salt", 1000) }},
		{"length", func(i int) int { return WordIndex(day, 4+i, "salt", 1000) }},
		{"salt", func(i int) int { return WordIndex(day, 5, string(rune('a'+i)), 1000) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := false
			for i := 1; i <= 10; i++ {
				if tt.vary(i) != base {
					diff = true
				}
			}
			assert.True(t, diff)
		})
	}
}

func TestWordIndexEmpty(t *testing.T) {
	assert.Equal(t, 0, WordIndex(time.Now(), 5, "salt", 0))
	assert.Equal(t, 0, WordIndex(time.Now(), 5, "salt", -3))
}

func TestPick(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	words := []string{"APPLE", "CRANE", "LEVEL"}

	got := Pick(words, day, "salt")
	assert.Contains(t, words, got)
	assert.Equal(t, got, Pick(words, day, "salt"))
	assert.Equal(t, words[WordIndex(day, 5, "salt", len(words))], got)
	assert.Equal(t, "", Pick(nil, day, "salt"))
}
