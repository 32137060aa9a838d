package domain

// AccessStats bundles the read counter of one token.
type AccessStats struct {
	TotalAccesses uint32
	NFTID         uint32
}

// SystemStats bundles the registry size and the summed read counters.
// TotalAccesses is 64-bit so the sum of 32-bit counters cannot wrap.
type SystemStats struct {
	TotalNFTs     uint32
	TotalAccesses uint64
}

// IntegrityReport holds three independent existence checks for a token.
type IntegrityReport struct {
	NFTExists           bool
	PublicDataExists    bool
	EncryptedDataExists bool
}
