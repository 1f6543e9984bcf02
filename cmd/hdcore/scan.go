package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nerdcash/hdcore/hdkey"
	"github.com/nerdcash/hdcore/keypath"
	"github.com/nerdcash/hdcore/walker"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Walk the BIP-44 gap-limit address scan under an account xpub",
	Long: `Walk the BIP-44 gap-limit address scan under an account xpub.

This command performs no network I/O and derives no child keys: it decodes
the xpub, walks the chain/index paths below it, and decides each address
"used" against --used-indices, a comma-separated
list of chain/index pairs (e.g. "0/2,0/5,1/0") supplied by the caller in
place of a blockchain probe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		gapLimit := viper.GetInt("gap-limit")
		xpub := viper.GetString("xpub")
		usedSpec := viper.GetString("used-indices")

		account, err := hdkey.DecodeXpub(xpub)
		if err != nil {
			return err
		}

		used, err := parseUsedIndices(usedSpec)
		if err != nil {
			return fmt.Errorf("invalid --used-indices: %w", err)
		}

		probe := func(_ context.Context, path *keypath.Path) (bool, error) {
			change, err := path.Step(path.Length() - 1)
			if err != nil {
				return false, err
			}
			index, err := path.Step(path.Length())
			if err != nil {
				return false, err
			}
			return used[[2]uint32{change, index}], nil
		}

		accountPath := account.DerivationPath()
		if accountPath == nil {
			accountPath = keypath.Root(true)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		results, err := walker.DiscoverUsedAddresses(ctx, accountPath, probe, uint32(gapLimit))
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("no used addresses found")
			return nil
		}
		for _, p := range results {
			fmt.Println(p.String())
		}
		return nil
	},
}

func parseUsedIndices(spec string) (map[[2]uint32]bool, error) {
	used := make(map[[2]uint32]bool)
	if spec == "" {
		return used, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(pair, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected chain/index, got %q", pair)
		}
		change, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad chain %q: %w", parts[0], err)
		}
		index, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", parts[1], err)
		}
		used[[2]uint32{uint32(change), uint32(index)}] = true
	}
	return used, nil
}

func init() {
	scanCmd.Flags().String("xpub", "", "account-level extended public key to scan (required)")
	scanCmd.Flags().Int("gap-limit", 20, "consecutive-unused stopping threshold per chain")
	scanCmd.Flags().String("used-indices", "", `comma-separated "chain/index" pairs treated as used, e.g. "0/2,1/0"`)
	_ = scanCmd.MarkFlagRequired("xpub")
}
