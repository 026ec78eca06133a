package gui

import "hash/fnv"

// ID identifies a panel across frames. It is derived from the panel title.
type ID uint64

// IDOf hashes name into a stable ID.
func IDOf(name string) ID {
	h := fnv.New64a()
	h.Write([]byte(name))
	return ID(h.Sum64())
}
