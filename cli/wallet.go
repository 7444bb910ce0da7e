package cli

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 23/12/2025
 * Time: 17:30
 */

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golang-walletauth/wallet"
)

func (cli *CommandLine) wallets() (*wallet.Wallets, error) {
	return wallet.CreateWallets(cli.config.DataDir, cli.config.Profile)
}

func (cli *CommandLine) createWalletCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "createwallet",
		Short: "Create a new wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wallets, err := cli.wallets()
			if err != nil {
				return err
			}
			address, err := wallets.AddWallet()
			if err != nil {
				return err
			}
			if err := wallets.SaveFile(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New wallet created with address: %s\n", address)
			return nil
		},
	}
}

func (cli *CommandLine) listAddressesCommand() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "listaddresses",
		Short: "List the addresses in the wallet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wallets, err := cli.wallets()
			if err != nil {
				return err
			}
			for _, address := range wallets.GetAllAddresses() {
				if legacy {
					w, _ := wallets.GetWallet(address)
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", address, w.LegacyAddress())
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), address)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&legacy, "legacy", false, "also print the Bitcoin-style address of each wallet")
	return cmd
}

func (cli *CommandLine) signCommand() *cobra.Command {
	var address, message string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with a wallet and print the Base58 signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wallets, err := cli.wallets()
			if err != nil {
				return err
			}
			w, ok := wallets.GetWallet(address)
			if !ok {
				return fmt.Errorf("no wallet with address %s in profile %s", address, cli.config.Profile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Sign([]byte(message)))
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "wallet address")
	cmd.Flags().StringVar(&message, "message", "", "message to sign")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func (cli *CommandLine) verifyCommand() *cobra.Command {
	var address, message, signature string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a Base58 signature of a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := wallet.VerifySignature(address, []byte(message), signature); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signature is valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "signer address")
	cmd.Flags().StringVar(&message, "message", "", "signed message")
	cmd.Flags().StringVar(&signature, "signature", "", "Base58 signature")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}

func (cli *CommandLine) validateAddressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validateaddress ADDRESS",
		Short: "Check whether ADDRESS is a Solana-style or legacy address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch address := args[0]; {
			case wallet.ValidateAddress(address):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid ed25519 address\n", address)
			case wallet.ValidateLegacyAddress(address):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid legacy address\n", address)
			default:
				return fmt.Errorf("%s: invalid address", address)
			}
			return nil
		},
	}
}
