package jslift

// Options is the LiftingOptions bitset. Unknown bits are ignored by
// construction: Options is just a uint32 and every recognized flag is a
// single bit tested independently.
type Options uint32

const (
	IncludeComments Options = 1 << iota
	Minify
	DumpTypes
	CollectTypes
)

func (o Options) has(flag Options) bool { return o&flag != 0 }
