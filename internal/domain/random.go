package domain

// Randomizer is the source of permutations used when shuffling a quiz.
// *math/rand.Rand satisfies it, which lets tests pass a seeded source.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
}
