package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nerdcash/hdcore/cointype"
	"github.com/nerdcash/hdcore/hdkey"
	"github.com/nerdcash/hdcore/keypath"
	"github.com/nerdcash/hdcore/walker"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive an extended key along a BIP-32 path from a seed",
	Long: `Derive an extended key along a BIP-32 path from a seed.

The path may be given explicitly with --path, or built from --coin
(a SLIP-44 registry name such as "zcash") plus --account/--change/--index,
which assembles m/44'/coin'/account'/change/index via the BIP-44 path
builders. --coin takes precedence over --path when both are set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		seedHex := viper.GetString("seed")
		pathStr := viper.GetString("path")
		networkStr := viper.GetString("network")
		coinName := viper.GetString("coin")

		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return fmt.Errorf("invalid --seed hex: %w", err)
		}
		network, err := parseNetwork(networkStr)
		if err != nil {
			return err
		}

		var path *keypath.Path
		if coinName != "" {
			coinType, ok := cointype.ByName(coinName)
			if !ok {
				return fmt.Errorf("unrecognized --coin %q", coinName)
			}
			path = walker.AddressPath(coinType, viper.GetUint32("account"), viper.GetUint32("change"), viper.GetUint32("index"))
		} else {
			path, err = keypath.Parse(pathStr)
			if err != nil {
				return fmt.Errorf("invalid --path: %w", err)
			}
		}

		master, err := hdkey.MasterFromSeed(seed, network)
		if err != nil {
			return err
		}
		defer master.Close()

		derived, err := master.Derive(path)
		if err != nil {
			return err
		}
		defer derived.Close()

		fmt.Println("xprv:", derived.Encode())
		fmt.Println("xpub:", derived.Public().Encode())
		return nil
	},
}

func init() {
	deriveCmd.Flags().String("seed", "", "hex-encoded seed bytes (required)")
	deriveCmd.Flags().String("path", "m", "BIP-32 derivation path")
	deriveCmd.Flags().String("network", "mainnet", "mainnet or testnet")
	deriveCmd.Flags().String("coin", "", `SLIP-44 coin name (e.g. "zcash"); builds the path in place of --path`)
	deriveCmd.Flags().Uint32("account", 0, "account index, used with --coin")
	deriveCmd.Flags().Uint32("change", 0, "change chain (0 external, 1 internal), used with --coin")
	deriveCmd.Flags().Uint32("index", 0, "address index, used with --coin")
	_ = deriveCmd.MarkFlagRequired("seed")
}
