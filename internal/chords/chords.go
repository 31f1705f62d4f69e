// Package chords is the static guitar chord dictionary.
package chords

import "sort"

// Position places a finger on a string at a fret.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
	Finger int `json:"finger"`
}

// Chord is a named fingering.
type Chord struct {
	Name    string     `json:"name"`
	Fingers []Position `json:"fingers"`
	Muted   []int      `json:"muted"`
}

var names = func() []string {
	out := make([]string, 0, len(dictionary))
	for name := range dictionary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}()

// Lookup returns a copy of the named chord. Names are case-sensitive ("Am" is not "AM").
func Lookup(name string) (Chord, bool) {
	c, ok := dictionary[name]
	if !ok {
		return Chord{}, false
	}
	return Chord{
		Name:    c.Name,
		Fingers: append([]Position(nil), c.Fingers...),
		Muted:   append([]int{}, c.Muted...),
	}, true
}

// Names lists every chord name in sorted order.
func Names() []string {
	return append([]string(nil), names...)
}

// Len reports the number of chords.
func Len() int {
	return len(dictionary)
}

// IsStringMuted reports whether string n is not played in the chord.
func IsStringMuted(name string, n int) bool {
	c, ok := dictionary[name]
	if !ok {
		return false
	}
	for _, m := range c.Muted {
		if m == n {
			return true
		}
	}
	return false
}

// IsOpenString reports whether string n is played open (fret 0) in the chord.
func IsOpenString(name string, n int) bool {
	c, ok := dictionary[name]
	if !ok {
		return false
	}
	for _, p := range c.Fingers {
		if p.String == n && p.Fret == 0 {
			return true
		}
	}
	return false
}
