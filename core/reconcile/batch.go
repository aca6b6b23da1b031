package reconcile

// DefaultBatchSize is the number of rows written per storage round trip.
const DefaultBatchSize = 500

// Chunk splits items into consecutive batches of at most size elements.
// A non-positive size falls back to DefaultBatchSize.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

// DedupeLastWins removes items sharing a key, keeping the last occurrence at the
// position of the first one. It returns the keys that were seen more than once.
func DedupeLastWins[T any](items []T, key func(T) string) ([]T, []string) {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	var dups []string

	for _, item := range items {
		k := key(item)
		if pos, seen := index[k]; seen {
			out[pos] = item
			dups = append(dups, k)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out, dups
}
