package chords

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionarySize(t *testing.T) {
	assert.Equal(t, 91, Len())
	assert.Len(t, Names(), 91)
	assert.True(t, sort.StringsAreSorted(Names()))
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, []int{6}, c.Muted)
	assert.Equal(t, Position{String: 4, Fret: 2, Finger: 2}, c.Fingers[1])

	e, ok := Lookup("E")
	require.True(t, ok)
	assert.NotNil(t, e.Muted)
	assert.Empty(t, e.Muted)

	_, ok = Lookup("am")
	assert.False(t, ok)
	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestLookupReturnsCopy(t *testing.T) {
	c, _ := Lookup("D")
	c.Fingers[0].Fret = 12
	c.Muted[0] = 1

	again, _ := Lookup("D")
	assert.Equal(t, 0, again.Fingers[0].Fret)
	assert.Equal(t, 6, again.Muted[0])
}

func TestStringHelpers(t *testing.T) {
	tests := []struct {
		chord  string
		string int
		muted  bool
		open   bool
	}{
		{"A", 6, true, false},
		{"A", 5, false, true},
		{"A", 4, false, false},
		{"D", 5, true, false},
		{"E", 6, false, true},
		{"nope", 1, false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.muted, IsStringMuted(tt.chord, tt.string), "%s muted %d", tt.chord, tt.string)
		assert.Equal(t, tt.open, IsOpenString(tt.chord, tt.string), "%s open %d", tt.chord, tt.string)
	}
}

func TestEveryChordIsConsistent(t *testing.T) {
	for _, name := range Names() {
		c, _ := Lookup(name)
		assert.Equal(t, name, c.Name)
		for _, p := range c.Fingers {
			assert.True(t, p.String >= 1 && p.String <= 6, "%s: string %d", name, p.String)
			assert.False(t, IsStringMuted(name, p.String), "%s: string %d both fretted and muted", name, p.String)
		}
	}
}
