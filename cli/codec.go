package cli

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 23/12/2025
 * Time: 17:05
 */

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golang-walletauth/base58"
)

const encodeLong = `Base58 encode DATA, or standard input when DATA is omitted.

One trailing newline on standard input is dropped, so "echo hi | walletauth encode"
encodes the two bytes "hi".`

func (cli *CommandLine) encodeCommand() *cobra.Command {
	var (
		isHex   bool
		check   bool
		version uint8
	)

	cmd := &cobra.Command{
		Use:   "encode [DATA]",
		Short: "Base58 encode DATA (or stdin)",
		Long:  encodeLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 1 {
				data = []byte(args[0])
			} else {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				// drop the line ending added by echo and friends
				if trimmed, ok := bytes.CutSuffix(in, []byte("\n")); ok {
					in = bytes.TrimSuffix(trimmed, []byte("\r"))
				}
				data = in
			}

			if isHex {
				decoded, err := hex.DecodeString(strings.TrimSpace(string(data)))
				if err != nil {
					return fmt.Errorf("invalid hex input: %w", err)
				}
				data = decoded
			}

			if check {
				fmt.Fprintln(cmd.OutOrStdout(), base58.CheckEncode(data, version))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), base58.Encode(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "DATA is hex encoded")
	cmd.Flags().BoolVar(&check, "check", false, "use Base58Check")
	cmd.Flags().Uint8Var(&version, "version", 0, "Base58Check version byte")
	return cmd
}

func (cli *CommandLine) decodeCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "decode STRING",
		Short: "Decode a Base58 STRING and print it as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				payload, version, err := base58.CheckDecode(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d\npayload: %x\n", version, payload)
				return nil
			}

			decoded, err := base58.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", decoded)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "verify and strip a Base58Check checksum")
	return cmd
}
