package generation

import "sinpath/data"

// OrderBosses derives the run's boss sequence: the catalog's non-finale
// bosses permuted by a Fisher-Yates shuffle on stream. It is the first thing
// drawn from a run's stream, so the pool and the map generator agree on it
// without sharing state.
func OrderBosses(catalog *data.Catalog, stream *Stream) []string {
	order := catalog.SinIDs()
	stream.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// BossOrderForSeed is OrderBosses on a fresh stream for seed
func BossOrderForSeed(catalog *data.Catalog, seed Seed) []string {
	return OrderBosses(catalog, NewStream(seed))
}
