package types

// Tokenizer splits one normalized line into words. Each emits the same words
// as Tokenize, in order, without building the slice.
type Tokenizer interface {
	Tokenize() []string
	Each(emit func(word string))
}

// Counter is the word table shared by all workers. IncrementOrInsert must be
// safe for concurrent use; the read accessors are only valid once every
// writer has returned.
type Counter interface {
	IncrementOrInsert(word string)
	Len() int
	Entries() []WordEntry
	Total() uint64
}
