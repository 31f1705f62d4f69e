package chords

// dictionary maps chord names to standard-tuning fingerings.
// Strings are numbered 1 (high E) to 6 (low E); fret 0 is an open string
// and finger 0 means no fretting finger.
var dictionary = map[string]Chord{
	// Major chords
	"A": {
		Name:    "A",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 2, 3}, {2, 2, 4}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"B": {
		Name:    "B",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 4, 4}, {2, 4, 4}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"C": {
		Name:    "C",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 0, 0}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"D": {
		Name:    "D",
		Fingers: []Position{{4, 0, 0}, {3, 2, 1}, {2, 3, 3}, {1, 2, 2}},
		Muted:   []int{6, 5},
	},
	"E": {
		Name:    "E",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}, {3, 1, 1}, {2, 0, 0}, {1, 0, 0}},
	},
	"F": {
		Name:    "F",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}, {3, 2, 2}, {2, 1, 1}, {1, 1, 1}},
	},
	"G": {
		Name:    "G",
		Fingers: []Position{{6, 3, 2}, {5, 2, 1}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 3, 3}},
	},

	// Minor chords
	"Am": {
		Name:    "Am",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 2, 3}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Bm": {
		Name:    "Bm",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 4, 4}, {2, 3, 2}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"Cm": {
		Name:    "Cm",
		Fingers: []Position{{5, 3, 1}, {4, 5, 3}, {3, 5, 4}, {2, 4, 2}, {1, 3, 1}},
		Muted:   []int{6},
	},
	"Dm": {
		Name:    "Dm",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 3, 3}, {1, 1, 1}},
		Muted:   []int{6, 5},
	},
	"Em": {
		Name:    "Em",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
	},
	"Fm": {
		Name:    "Fm",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}, {3, 1, 1}, {2, 1, 1}, {1, 1, 1}},
	},
	"Gm": {
		Name:    "Gm",
		Fingers: []Position{{6, 3, 3}, {5, 5, 5}, {4, 5, 5}, {3, 3, 1}, {2, 3, 1}, {1, 3, 1}},
	},

	// 7th chords
	"A7": {
		Name:    "A7",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 0, 0}, {2, 2, 3}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"B7": {
		Name:    "B7",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 2, 1}, {2, 4, 4}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"C7": {
		Name:    "C7",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 3, 4}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"D7": {
		Name:    "D7",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 1, 1}, {1, 2, 3}},
		Muted:   []int{6, 5},
	},
	"E7": {
		Name:    "E7",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 0, 0}, {3, 1, 1}, {2, 3, 4}, {1, 0, 0}},
	},
	"F7": {
		Name:    "F7",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 1, 1}, {3, 2, 2}, {2, 1, 1}, {1, 1, 1}},
	},
	"G7": {
		Name:    "G7",
		Fingers: []Position{{6, 3, 3}, {5, 2, 2}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 1, 1}},
	},

	// Major 7th chords
	"Amaj7": {
		Name:    "Amaj7",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 1, 1}, {2, 2, 3}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Bmaj7": {
		Name:    "Bmaj7",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 3, 2}, {2, 4, 4}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"Cmaj7": {
		Name:    "Cmaj7",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Dmaj7": {
		Name:    "Dmaj7",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 2, 1}, {1, 2, 3}},
		Muted:   []int{6, 5},
	},
	"Emaj7": {
		Name:    "Emaj7",
		Fingers: []Position{{6, 0, 0}, {5, 2, 1}, {4, 1, 2}, {3, 1, 3}, {2, 0, 0}, {1, 0, 0}},
	},
	"Fmaj7": {
		Name:    "Fmaj7",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 2, 2}, {3, 2, 2}, {2, 1, 1}, {1, 1, 1}},
	},
	"Gmaj7": {
		Name:    "Gmaj7",
		Fingers: []Position{{6, 3, 3}, {5, 2, 2}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 2, 1}},
	},

	// Minor 7th chords
	"Am7": {
		Name:    "Am7",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 0, 0}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Bm7": {
		Name:    "Bm7",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 2, 1}, {2, 3, 2}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"Cm7": {
		Name:    "Cm7",
		Fingers: []Position{{5, 3, 1}, {4, 5, 3}, {3, 3, 1}, {2, 4, 2}, {1, 3, 1}},
		Muted:   []int{6},
	},
	"Dm7": {
		Name:    "Dm7",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 1, 1}, {1, 1, 1}},
		Muted:   []int{6, 5},
	},
	"Em7": {
		Name:    "Em7",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
	},
	"Fm7": {
		Name:    "Fm7",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 1, 1}, {3, 1, 1}, {2, 1, 1}, {1, 1, 1}},
	},
	"Gm7": {
		Name:    "Gm7",
		Fingers: []Position{{6, 3, 3}, {5, 5, 4}, {4, 3, 1}, {3, 3, 1}, {2, 3, 1}, {1, 3, 1}},
	},

	// Dominant 9th chords
	"A9": {
		Name:    "A9",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"B9": {
		Name:    "B9",
		Fingers: []Position{{5, 2, 2}, {4, 1, 1}, {3, 2, 3}, {2, 2, 4}},
		Muted:   []int{6, 1},
	},
	"C9": {
		Name:    "C9",
		Fingers: []Position{{5, 3, 3}, {4, 2, 1}, {3, 3, 4}, {2, 3, 4}, {1, 3, 4}},
		Muted:   []int{6},
	},
	"D9": {
		Name:    "D9",
		Fingers: []Position{{4, 0, 0}, {3, 2, 1}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6, 5},
	},
	"E9": {
		Name:    "E9",
		Fingers: []Position{{6, 0, 0}, {5, 2, 1}, {4, 0, 0}, {3, 1, 2}, {2, 0, 0}, {1, 2, 3}},
	},
	"F9": {
		Name:    "F9",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 1, 1}, {3, 2, 2}, {2, 1, 1}, {1, 3, 4}},
	},
	"G9": {
		Name:    "G9",
		Fingers: []Position{{6, 3, 3}, {5, 2, 2}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 1, 1}},
	},

	// Major 6th chords
	"A6": {
		Name:    "A6",
		Fingers: []Position{{5, 0, 0}, {4, 2, 1}, {3, 2, 2}, {2, 2, 3}, {1, 2, 4}},
		Muted:   []int{6},
	},
	"B6": {
		Name:    "B6",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 4, 4}, {2, 4, 4}, {1, 4, 4}},
		Muted:   []int{6},
	},
	"C6": {
		Name:    "C6",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 2, 1}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"D6": {
		Name:    "D6",
		Fingers: []Position{{4, 0, 0}, {3, 2, 1}, {2, 0, 0}, {1, 2, 3}},
		Muted:   []int{6, 5},
	},
	"E6": {
		Name:    "E6",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}, {3, 1, 1}, {2, 2, 4}, {1, 0, 0}},
	},
	"F6": {
		Name:    "F6",
		Fingers: []Position{{6, 1, 1}, {5, 3, 4}, {4, 3, 3}, {3, 2, 2}, {2, 3, 4}, {1, 1, 1}},
	},
	"G6": {
		Name:    "G6",
		Fingers: []Position{{6, 3, 4}, {5, 2, 2}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
	},

	// Minor 6th chords
	"Am6": {
		Name:    "Am6",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 2, 3}, {2, 1, 1}, {1, 2, 4}},
		Muted:   []int{6},
	},
	"Bm6": {
		Name:    "Bm6",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 4, 4}, {2, 3, 2}, {1, 4, 4}},
		Muted:   []int{6},
	},
	"Cm6": {
		Name:    "Cm6",
		Fingers: []Position{{5, 3, 1}, {4, 5, 3}, {3, 5, 4}, {2, 4, 2}, {1, 5, 4}},
		Muted:   []int{6},
	},
	"Dm6": {
		Name:    "Dm6",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 0, 0}, {1, 1, 1}},
		Muted:   []int{6, 5},
	},
	"Em6": {
		Name:    "Em6",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}, {3, 0, 0}, {2, 2, 4}, {1, 0, 0}},
	},
	"Fm6": {
		Name:    "Fm6",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}, {3, 1, 1}, {2, 3, 3}, {1, 1, 1}},
	},
	"Gm6": {
		Name:    "Gm6",
		Fingers: []Position{{6, 3, 3}, {5, 5, 4}, {4, 3, 2}, {3, 3, 1}, {2, 3, 1}, {1, 3, 1}},
	},

	// Suspended chords (sus2, sus4)
	"Asus2": {
		Name:    "Asus2",
		Fingers: []Position{{5, 0, 0}, {4, 2, 1}, {3, 2, 2}, {2, 0, 0}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Asus4": {
		Name:    "Asus4",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 2, 3}, {2, 3, 4}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Dsus2": {
		Name:    "Dsus2",
		Fingers: []Position{{4, 0, 0}, {3, 2, 1}, {2, 0, 0}, {1, 0, 0}},
		Muted:   []int{6, 5},
	},
	"Dsus4": {
		Name:    "Dsus4",
		Fingers: []Position{{4, 0, 0}, {3, 2, 1}, {2, 3, 3}, {1, 3, 4}},
		Muted:   []int{6, 5},
	},
	"Esus2": {
		Name:    "Esus2",
		Fingers: []Position{{6, 0, 0}, {5, 2, 1}, {4, 4, 3}, {3, 4, 4}, {2, 0, 0}, {1, 0, 0}},
	},
	"Esus4": {
		Name:    "Esus4",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}, {3, 2, 4}, {2, 0, 0}, {1, 0, 0}},
	},
	"Fsus2": {
		Name:    "Fsus2",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}, {3, 0, 0}, {2, 1, 1}, {1, 1, 1}},
	},
	"Fsus4": {
		Name:    "Fsus4",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}, {3, 3, 4}, {2, 1, 1}, {1, 1, 1}},
	},
	"Gsus2": {
		Name:    "Gsus2",
		Fingers: []Position{{6, 3, 3}, {5, 5, 4}, {4, 5, 4}, {3, 5, 4}, {2, 3, 1}, {1, 3, 1}},
	},
	"Gsus4": {
		Name:    "Gsus4",
		Fingers: []Position{{6, 3, 3}, {5, 3, 3}, {4, 0, 0}, {3, 0, 0}, {2, 1, 1}, {1, 3, 4}},
	},

	// Augmented chords
	"Aaug": {
		Name:    "Aaug",
		Fingers: []Position{{5, 0, 0}, {4, 3, 4}, {3, 2, 2}, {2, 2, 3}, {1, 1, 1}},
		Muted:   []int{6},
	},
	"Caug": {
		Name:    "Caug",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 1, 1}, {2, 1, 1}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Eaug": {
		Name:    "Eaug",
		Fingers: []Position{{6, 0, 0}, {5, 3, 3}, {4, 2, 2}, {3, 1, 1}, {2, 1, 1}, {1, 0, 0}},
	},
	"Gaug": {
		Name:    "Gaug",
		Fingers: []Position{{6, 3, 3}, {5, 2, 1}, {4, 1, 1}, {3, 0, 0}, {2, 0, 0}, {1, 3, 4}},
	},

	// Diminished chords
	"Adim": {
		Name:    "Adim",
		Fingers: []Position{{5, 0, 0}, {4, 1, 1}, {3, 2, 3}, {2, 1, 2}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Bdim": {
		Name:    "Bdim",
		Fingers: []Position{{5, 2, 2}, {4, 3, 3}, {3, 4, 4}, {2, 3, 3}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"Ddim": {
		Name:    "Ddim",
		Fingers: []Position{{4, 0, 0}, {3, 1, 1}, {2, 3, 4}, {1, 2, 3}},
		Muted:   []int{6, 5},
	},
	"Edim": {
		Name:    "Edim",
		Fingers: []Position{{6, 0, 0}, {5, 2, 3}, {4, 1, 1}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
	},

	// Dominant 7th flat 5 chords
	"A7b5": {
		Name:    "A7b5",
		Fingers: []Position{{5, 0, 0}, {4, 1, 1}, {3, 0, 0}, {2, 2, 3}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"B7b5": {
		Name:    "B7b5",
		Fingers: []Position{{5, 2, 2}, {4, 3, 3}, {3, 2, 1}, {2, 4, 4}, {1, 2, 1}},
		Muted:   []int{6},
	},
	"E7b5": {
		Name:    "E7b5",
		Fingers: []Position{{6, 0, 0}, {5, 1, 1}, {4, 0, 0}, {3, 1, 2}, {2, 3, 4}, {1, 0, 0}},
	},

	// Add9 chords
	"Cadd9": {
		Name:    "Cadd9",
		Fingers: []Position{{5, 3, 3}, {4, 2, 2}, {3, 0, 0}, {2, 3, 4}, {1, 0, 0}},
		Muted:   []int{6},
	},
	"Dadd9": {
		Name:    "Dadd9",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 3, 3}, {1, 0, 0}},
		Muted:   []int{6, 5},
	},
	"Gadd9": {
		Name:    "Gadd9",
		Fingers: []Position{{6, 3, 3}, {5, 2, 1}, {4, 0, 0}, {3, 2, 2}, {2, 0, 0}, {1, 3, 4}},
	},

	// Slash chords (with different bass notes)
	"C/G": {
		Name:    "C/G",
		Fingers: []Position{{6, 3, 3}, {5, 3, 4}, {4, 2, 2}, {3, 0, 0}, {2, 1, 1}, {1, 0, 0}},
	},
	"D/F#": {
		Name:    "D/F#",
		Fingers: []Position{{6, 2, 1}, {4, 0, 0}, {3, 2, 2}, {2, 3, 4}, {1, 2, 3}},
		Muted:   []int{5},
	},
	"G/B": {
		Name:    "G/B",
		Fingers: []Position{{5, 2, 1}, {4, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 3, 4}},
		Muted:   []int{6},
	},
	"Am/G": {
		Name:    "Am/G",
		Fingers: []Position{{6, 3, 3}, {5, 0, 0}, {4, 2, 2}, {3, 2, 1}, {2, 1, 1}, {1, 0, 0}},
	},

	// Power chords (5 chords)
	"A5": {
		Name:    "A5",
		Fingers: []Position{{5, 0, 0}, {4, 2, 2}, {3, 2, 3}},
		Muted:   []int{6, 2, 1},
	},
	"B5": {
		Name:    "B5",
		Fingers: []Position{{5, 2, 1}, {4, 4, 3}, {3, 4, 4}},
		Muted:   []int{6, 2, 1},
	},
	"C5": {
		Name:    "C5",
		Fingers: []Position{{5, 3, 1}, {4, 5, 3}, {3, 5, 4}},
		Muted:   []int{6, 2, 1},
	},
	"D5": {
		Name:    "D5",
		Fingers: []Position{{4, 0, 0}, {3, 2, 2}, {2, 3, 3}},
		Muted:   []int{6, 5, 1},
	},
	"E5": {
		Name:    "E5",
		Fingers: []Position{{6, 0, 0}, {5, 2, 2}, {4, 2, 3}},
		Muted:   []int{3, 2, 1},
	},
	"F5": {
		Name:    "F5",
		Fingers: []Position{{6, 1, 1}, {5, 3, 3}, {4, 3, 4}},
		Muted:   []int{3, 2, 1},
	},
	"G5": {
		Name:    "G5",
		Fingers: []Position{{6, 3, 3}, {5, 5, 4}, {4, 5, 4}},
		Muted:   []int{3, 2, 1},
	},
}
