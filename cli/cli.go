package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/golang-walletauth/config"
)

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 23/12/2025
 * Time: 16:42
 */

// CommandLine carries the state shared by all commands.
type CommandLine struct {
	viper  *viper.Viper
	config *config.Config
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the walletauth command tree.
func NewRootCommand() *cobra.Command {
	cli := &CommandLine{viper: config.NewViper()}
	var configFile string

	root := &cobra.Command{
		Use:          "walletauth",
		Short:        "Base58 tooling, wallets and the wallet sign-in server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configFile != "" {
				cli.viper.SetConfigFile(configFile)
			}
			cfg, err := config.Load(cli.viper)
			if err != nil {
				return err
			}
			cli.config = cfg
			setupLogging(cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("data-dir", "", "directory holding wallets and the session database")
	flags.String("profile", "", "wallet file profile")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console or json)")
	for key, name := range map[string]string{
		"data_dir":   "data-dir",
		"profile":    "profile",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		_ = cli.viper.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		cli.encodeCommand(),
		cli.decodeCommand(),
		cli.createWalletCommand(),
		cli.listAddressesCommand(),
		cli.signCommand(),
		cli.verifyCommand(),
		cli.validateAddressCommand(),
		cli.serveCommand(),
		cli.purgeCommand(),
	)
	return root
}

func setupLogging(cfg *config.Config, w io.Writer) {
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &l
}
