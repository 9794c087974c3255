// Package dotstow assembles the command-line interface.
package dotstow

import (
	"fmt"

	"github.com/arthur-debert/dotstow/internal/version"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity    int
		dotfilesRoot string
	)

	rootCmd := &cobra.Command{
		Use:     "dotstow",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&dotfilesRoot, "dotfiles", "", MsgFlagDotfiles)

	rootCmd.AddCommand(newDeployCmd(&dotfilesRoot))
	rootCmd.AddCommand(newCheckCmd(&dotfilesRoot))
	rootCmd.AddCommand(newVerifyCmd(&dotfilesRoot))
	rootCmd.AddCommand(newBackupCmd(&dotfilesRoot))
	rootCmd.AddCommand(newConfigCmd(&dotfilesRoot))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotstow version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
