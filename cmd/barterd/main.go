package main

import (
	"fmt"
	"os"

	"github.com/iov-one/barter"
	barterd "github.com/iov-one/barter/cmd/barterd/app"
	"github.com/iov-one/barter/commands"
	"github.com/iov-one/barter/commands/server"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "barterd",
		Short:         "Two party token swap node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String("home", defaultHome(), "directory to store files under")
	flags.Bool("debug", false, "include stack traces in error responses")
	flags.String("log_level", "info", "minimal log level: debug, info, error or none")
	flags.String("log_file", "", "write logs to a rotated file instead of stdout")

	root.AddCommand(
		initCmd(),
		startCmd(),
		validateCmd(),
		testgenCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the configuration and the logger for a command.
func setup(cmd *cobra.Command) (*Config, log.Logger, error) {
	conf, err := LoadConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := conf.NewLogger(cmd.OutOrStdout())
	if err != nil {
		return nil, nil, err
	}
	return conf, logger, nil
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [address] [ticker...]",
		Short: "Initialize app options in the genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			return server.InitCmd(barterd.GenInitOptions, logger, conf.Home, force, args)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing app state")
	return cmd
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			return server.StartCmd(barterd.GenerateApp, logger, conf.Home, server.StartOptions{
				Bind:        conf.Bind,
				Debug:       conf.Debug,
				MetricsAddr: conf.MetricsAddr,
			})
		},
	}
	cmd.Flags().String("bind", "tcp://localhost:26658", "address the abci server listens on")
	cmd.Flags().String("metrics_addr", "", "serve prometheus metrics on this address, disabled if empty")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Check that genesis files are accepted by the application",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := server.ValidateGenesis(barterd.Initializers(), args); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "genesis is valid")
			return nil
		},
	}
}

func testgenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "testgen [dir]",
		Short: "Write serialized example messages for client tests",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commands.TestGenCmd(barterd.Examples(), args); err != nil {
				return err
			}
			for i, key := range barterd.ExampleKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "key %d: %s\n", i, key.PublicKey().Address())
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), barter.Version)
		},
	}
}
