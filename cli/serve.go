package cli

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 24/12/2025
 * Time: 09:14
 */

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/golang-walletauth/auth"
	"github.com/golang-walletauth/server"
	"github.com/golang-walletauth/store"
)

const sessionsDir = "sessions"

func (cli *CommandLine) openStore() (*store.Store, error) {
	return store.Open(store.Options{Dir: filepath.Join(cli.config.DataDir, sessionsDir)})
}

func (cli *CommandLine) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wallet sign-in HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}

			a := auth.New(s, auth.Options{
				Domain:       cli.config.Domain,
				ChallengeTTL: cli.config.ChallengeTTL,
				SessionTTL:   cli.config.SessionTTL,
			})
			log.Info().
				Str("domain", cli.config.Domain).
				Dur("challenge_ttl", cli.config.ChallengeTTL).
				Dur("session_ttl", cli.config.SessionTTL).
				Msg("starting")

			return server.New(a, log.Logger).ListenAndServe(cli.config.Addr, s)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	_ = cli.viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (cli *CommandLine) purgeCommand() *cobra.Command {
	var challenges, sessions, dryRun bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete stored challenges and/or sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !challenges && !sessions {
				return errors.New("nothing to purge: pass --challenges and/or --sessions")
			}

			s, err := cli.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, target := range []struct {
				name   string
				prefix []byte
				on     bool
			}{
				{"challenges", store.ChallengePrefix, challenges},
				{"sessions", store.SessionPrefix, sessions},
			} {
				if !target.on {
					continue
				}
				var n int
				if dryRun {
					n, err = s.Count(target.prefix)
				} else {
					n, err = s.DeleteByPrefix(target.prefix)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", target.name, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&challenges, "challenges", false, "purge pending challenges")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "purge sessions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only count the records")
	return cmd
}
