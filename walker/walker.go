// Package walker implements the BIP-44 path builders and gap-limit account/
// address discovery walk. It generalizes the fixed `m/44'/coin'/account'/
// change/index` builder in iavl-okchain-go-sdk's hdpath.go (BIP44Params/
// DerivationPath) into the two builders spec.md §4.G names, and threads a
// context.Context through every probe call the way the pack's networked
// examples (e.g. rosetta-ravencoin) thread ctx through blocking calls, to
// give the single-in-flight-probe walk cooperative cancellation.
package walker

import (
	"context"

	"github.com/nerdcash/hdcore/keypath"
)

// Purpose is the BIP-43 purpose field BIP-44 reserves: 44'.
const Purpose uint32 = 44 | keypath.HardenedBit

func harden(i uint32) uint32 {
	return i | keypath.HardenedBit
}

// AccountPath builds m/44'/coinType'/account'. coinType and account may be
// given with or without the hardened bit already set; it is OR-ed in if
// absent.
func AccountPath(coinType, account uint32) *keypath.Path {
	return keypath.Root(true).
		Append(Purpose).
		Append(harden(coinType)).
		Append(harden(account))
}

// AddressPath builds m/44'/coinType'/account'/change/addressIndex. change
// must be 0 (external/receiving chain) or 1 (internal/change chain).
func AddressPath(coinType, account, change, addressIndex uint32) *keypath.Path {
	return AccountPath(coinType, account).Append(change).Append(addressIndex)
}

// Probe reports whether the address at path has been used. Probe errors
// abort the walk; the error propagates to the walk's caller unchanged.
type Probe func(ctx context.Context, path *keypath.Path) (bool, error)

// DiscoverUsedAddresses scans both chains under accountPath (0 = external,
// then 1 = internal) and returns every path probe reported as used. A chain
// stops after gapLimit consecutive false probes. The internal chain is
// scanned only if the external chain yielded at least one used address.
// At most one probe call is in flight at a time; ctx cancellation stops the
// walk before its next probe call.
func DiscoverUsedAddresses(ctx context.Context, accountPath *keypath.Path, probe Probe, gapLimit uint32) ([]*keypath.Path, error) {
	var used []*keypath.Path

	externalUsed, err := scanChain(ctx, accountPath, 0, probe, gapLimit, &used)
	if err != nil {
		return nil, err
	}
	if externalUsed == 0 {
		return used, nil
	}

	if _, err := scanChain(ctx, accountPath, 1, probe, gapLimit, &used); err != nil {
		return nil, err
	}
	return used, nil
}

func scanChain(ctx context.Context, accountPath *keypath.Path, change uint32, probe Probe, gapLimit uint32, used *[]*keypath.Path) (int, error) {
	chainPath := accountPath.Append(change)
	usedCount := 0
	consecutiveUnused := uint32(0)
	for index := uint32(0); consecutiveUnused < gapLimit; index++ {
		if err := ctx.Err(); err != nil {
			return usedCount, err
		}
		addressPath := chainPath.Append(index)
		ok, err := probe(ctx, addressPath)
		if err != nil {
			return usedCount, err
		}
		if ok {
			*used = append(*used, addressPath)
			usedCount++
			consecutiveUnused = 0
		} else {
			consecutiveUnused++
		}
	}
	return usedCount, nil
}

// DiscoverUsedAccounts iterates accounts 0, 1, 2, ... under coinType,
// emitting the account path for every account whose DiscoverUsedAddresses
// call yields at least one used address, and stopping at the first unused
// account (account-gap-limit = 1).
func DiscoverUsedAccounts(ctx context.Context, coinType uint32, probe Probe, gapLimit uint32) ([]*keypath.Path, error) {
	var usedAccounts []*keypath.Path
	for account := uint32(0); ; account++ {
		if err := ctx.Err(); err != nil {
			return usedAccounts, err
		}
		accountPath := AccountPath(coinType, account)
		used, err := DiscoverUsedAddresses(ctx, accountPath, probe, gapLimit)
		if err != nil {
			return nil, err
		}
		if len(used) == 0 {
			return usedAccounts, nil
		}
		usedAccounts = append(usedAccounts, accountPath)
	}
}
