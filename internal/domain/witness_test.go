package domain

import (
	"math/rand"
	"testing"
)

func TestWitnessProbability_Clamped(t *testing.T) {
	cases := []struct {
		difficulty int
		want       float64
	}{
		{0, 0},
		{100, 0.5},
		{200, 1.0},
		{300, 1.0},
		{-50, 0},
	}
	for _, tc := range cases {
		if got := WitnessProbability(tc.difficulty); got != tc.want {
			t.Fatalf("WitnessProbability(%d) = %f, want %f", tc.difficulty, got, tc.want)
		}
	}
}

func TestWitnessRoll_Extremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		if WitnessRoll(rng, 0) {
			t.Fatal("Difficulty 0 must never be witnessed")
		}
		if !WitnessRoll(rng, 200) {
			t.Fatal("Difficulty 200 must always be witnessed")
		}
	}
}

func TestWitnessRoll_SeededDeterminism(t *testing.T) {
	first := rand.New(rand.NewSource(42))
	second := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		if WitnessRoll(first, 100) != WitnessRoll(second, 100) {
			t.Fatalf("Seeded rolls diverged at %d", i)
		}
	}
}
