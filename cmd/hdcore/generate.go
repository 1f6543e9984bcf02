package main

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nerdcash/hdcore/mnemonic"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a BIP-39 mnemonic and its seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		bits := viper.GetInt("bits")
		passphrase := viper.GetString("passphrase")

		m, err := mnemonic.Generate(bits, rand.Reader)
		if err != nil {
			return err
		}
		defer m.Close()

		fmt.Println("Mnemonic:", m.Phrase())
		fmt.Printf("Seed:     %x\n", m.Seed(passphrase))
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("bits", 256, "entropy length in bits (32-512, multiple of 32)")
	generateCmd.Flags().String("passphrase", "", "optional BIP-39 passphrase mixed into the seed")
}
