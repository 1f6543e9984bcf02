package hdcore

// Network selects the version-header bytes used when serializing an
// extended key to its xprv/xpub text form.
type Network int

const (
	// MainNet selects the 0x0488ADE4 (xprv) / 0x0488B21E (xpub) headers.
	MainNet Network = iota
	// TestNet selects the 0x04358394 (xprv) / 0x043587CF (xpub) headers.
	TestNet
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	default:
		return "unknown"
	}
}

var (
	versionXprvMainNet = [4]byte{0x04, 0x88, 0xAD, 0xE4}
	versionXpubMainNet = [4]byte{0x04, 0x88, 0xB2, 0x1E}
	versionXprvTestNet = [4]byte{0x04, 0x35, 0x83, 0x94}
	versionXpubTestNet = [4]byte{0x04, 0x35, 0x87, 0xCF}
)

// XprvVersion returns the 4-byte xprv version header for n.
func XprvVersion(n Network) [4]byte {
	if n == TestNet {
		return versionXprvTestNet
	}
	return versionXprvMainNet
}

// XpubVersion returns the 4-byte xpub version header for n.
func XpubVersion(n Network) [4]byte {
	if n == TestNet {
		return versionXpubTestNet
	}
	return versionXpubMainNet
}

// NetworkFromXprvVersion maps a 4-byte xprv version header back to its
// Network, reporting false if v is not one of the two known headers.
func NetworkFromXprvVersion(v [4]byte) (Network, bool) {
	switch v {
	case versionXprvMainNet:
		return MainNet, true
	case versionXprvTestNet:
		return TestNet, true
	default:
		return 0, false
	}
}

// NetworkFromXpubVersion maps a 4-byte xpub version header back to its
// Network, reporting false if v is not one of the two known headers.
func NetworkFromXpubVersion(v [4]byte) (Network, bool) {
	switch v {
	case versionXpubMainNet:
		return MainNet, true
	case versionXpubTestNet:
		return TestNet, true
	default:
		return 0, false
	}
}
