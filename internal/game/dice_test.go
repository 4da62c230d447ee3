package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestRepeatable(t *testing.T) {
	want := map[int]bool{1: true, 2: false, 3: false, 4: true, 6: true}
	for value, repeat := range want {
		if got := Repeatable(value); got != repeat {
			t.Fatalf("Repeatable(%d) = %v, want %v", value, got, repeat)
		}
	}
}

// The light-face count must map exactly to the step value and repeat
// flag: 0->6(T), 1->1(T), 2->2(F), 3->3(F), 4->4(T).
func TestStickMapping(t *testing.T) {
	valueOf := map[int]int{0: 6, 1: 1, 2: 2, 3: 3, 4: 4}
	repeatOf := map[int]bool{0: true, 1: true, 2: false, 3: false, 4: true}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		r := RollSticks(rng)
		light := 0
		for _, s := range r.Sticks {
			if s != 0 && s != 1 {
				t.Fatalf("stick face %d, want 0 or 1", s)
			}
			light += s
		}
		if r.Value != valueOf[light] {
			t.Fatalf("%d light sticks -> value %d, want %d", light, r.Value, valueOf[light])
		}
		if r.Repeatable != repeatOf[light] {
			t.Fatalf("%d light sticks -> repeatable %v, want %v", light, r.Repeatable, repeatOf[light])
		}
	}
}

// Four fair binary sticks: the light-count histogram must match
// binomial(4, 0.5) = 1/16, 4/16, 6/16, 4/16, 1/16.
func TestStickDistribution(t *testing.T) {
	const n = 100000
	rng := rand.New(rand.NewSource(7))

	counts := make([]int, 5)
	for i := 0; i < n; i++ {
		r := RollSticks(rng)
		light := 0
		for _, s := range r.Sticks {
			light += s
		}
		counts[light]++
	}

	expected := []float64{1, 4, 6, 4, 1}
	for k, c := range counts {
		want := expected[k] / 16
		got := float64(c) / n
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("P(k=%d) = %.4f, want %.4f (±0.01)", k, got, want)
		}
	}
}
