package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nerdcash/hdcore"
)

var rootCmd = &cobra.Command{
	Use:   "hdcore",
	Short: "Deterministic Bitcoin-family wallet core: mnemonics, HD keys, and BIP-44 discovery",
}

func init() {
	viper.SetEnvPrefix("HDCORE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(generateCmd, deriveCmd, scanCmd)
}

// bindFlags binds every flag on cmd into viper under the flag's own name,
// so resolution follows flag > env (HDCORE_*) > default.
func bindFlags(cmd *cobra.Command) {
	_ = viper.BindPFlags(cmd.Flags())
}

func parseNetwork(s string) (hdcore.Network, error) {
	switch strings.ToLower(s) {
	case "mainnet", "":
		return hdcore.MainNet, nil
	case "testnet":
		return hdcore.TestNet, nil
	default:
		return 0, fmt.Errorf("unrecognized network %q: want mainnet or testnet", s)
	}
}
