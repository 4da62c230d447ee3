package game

import "math/rand"

// Roll is the outcome of throwing the four Tâb sticks.
type Roll struct {
	Value      int    `json:"value"`
	Repeatable bool   `json:"repeatable"`
	Sticks     [4]int `json:"sticks"` // 1 = light face up
}

// Repeatable reports whether a dice value obliges a re-roll when no move
// exists, or grants a bonus roll when one was made.
func Repeatable(value int) bool {
	return value == 1 || value == 4 || value == 6
}

// RollSticks throws four independent binary sticks. The light-face count
// maps to the step value and repeat flag:
//
//	0 -> 6 (repeat), 1 -> 1 (repeat), 2 -> 2, 3 -> 3, 4 -> 4 (repeat)
//
// The mapping defines the game's probability distribution and must not
// change.
func RollSticks(rng *rand.Rand) Roll {
	var r Roll
	light := 0
	for i := range r.Sticks {
		if rng.Intn(2) == 1 {
			r.Sticks[i] = 1
			light++
		}
	}
	switch light {
	case 0:
		r.Value, r.Repeatable = 6, true
	case 1:
		r.Value, r.Repeatable = 1, true
	case 2:
		r.Value = 2
	case 3:
		r.Value = 3
	case 4:
		r.Value, r.Repeatable = 4, true
	}
	return r
}
