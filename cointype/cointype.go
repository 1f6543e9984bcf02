// Package cointype provides constants for registered cryptocurrency coin
// types as defined in BIP-44 and the SLIP-44 registry
// (https://github.com/satoshilabs/slips/blob/master/slip-0044.md), the same
// registry the teacher's coin-type/coin_type.go draws its single Tron
// constant from. This package widens that constant set to the coins
// spec.md's walker examples (S7 uses coin_type=133, Zcash) and the pack's
// other HD-wallet examples exercise.
package cointype

const (
	Bitcoin  = 0
	Testnet  = 1
	Litecoin = 2
	Dogecoin = 3
	Ethereum = 60
	Zcash    = 133
	Tron     = 195
)

var byName = map[string]uint32{
	"bitcoin":  Bitcoin,
	"testnet":  Testnet,
	"litecoin": Litecoin,
	"dogecoin": Dogecoin,
	"ethereum": Ethereum,
	"zcash":    Zcash,
	"tron":     Tron,
}

// ByName looks up a coin type by its lowercase SLIP-44 registry name, e.g.
// "zcash" for Zcash. ok is false for any name not in this registry.
func ByName(name string) (coinType uint32, ok bool) {
	coinType, ok = byName[name]
	return
}
