package domain

import "math/rand"

// WitnessDifficultyScale divides action difficulty into a witness
// probability: a difficulty-200 crime is always observed.
const WitnessDifficultyScale = 200.0

// WitnessProbability is the chance a single crime attempt is observed.
// Harder crimes draw more eyes.
func WitnessProbability(difficulty int) float64 {
	p := float64(difficulty) / WitnessDifficultyScale
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// WitnessRoll performs the observation roll for one crime attempt.
func WitnessRoll(rng *rand.Rand, difficulty int) bool {
	return rng.Float64() < WitnessProbability(difficulty)
}
