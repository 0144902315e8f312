package automaton

// mix is the MurmurHash3 32-bit finalizer. Composition hashes are sums of
// mixed state ids, which keeps them independent of insertion order.
func mix(v int) uint32 {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return k ^ (k >> 16)
}
