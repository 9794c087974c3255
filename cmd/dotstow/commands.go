package dotstow

import (
	"fmt"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/deploy"
	"github.com/arthur-debert/dotstow/pkg/output"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/arthur-debert/dotstow/pkg/verify"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// setup resolves paths and configuration for one invocation.
func setup(dotfilesRoot string) (*config.Config, *paths.Paths, error) {
	p, err := paths.New(dotfilesRoot)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(p.DotfilesRoot())
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

func newDeployCmd(dotfilesRoot *string) *cobra.Command {
	var (
		force bool
		adopt bool
		work  bool
	)
	cmd := &cobra.Command{
		Use:   "deploy [packs...]",
		Short: MsgDeployShort,
		Long:  MsgDeployLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := setup(*dotfilesRoot)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := paths.ValidatePackName(name); err != nil {
					return err
				}
			}
			o := deploy.New(cfg, p, output.New(), nil)
			return o.DeployBase(deploy.Options{
				Force: force,
				Adopt: adopt,
				Work:  work,
				Packs: args,
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&adopt, "adopt", false, MsgFlagAdopt)
	cmd.Flags().BoolVar(&work, "work", false, MsgFlagWork)
	return cmd
}

func newCheckCmd(dotfilesRoot *string) *cobra.Command {
	var (
		work      bool
		porcelain bool
	)
	cmd := &cobra.Command{
		Use:   "check [packs...]",
		Short: MsgCheckShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := setup(*dotfilesRoot)
			if err != nil {
				return err
			}
			out := output.New()
			checker := conflicts.NewChecker(p.DotfilesRoot(), p.TargetRoot())
			records, report := checker.CheckAll(cfg.AllPackages(args, work))
			if len(records) == 0 {
				out.OK(MsgNoConflicts)
				return nil
			}
			if porcelain {
				fmt.Println(types.EncodeConflicts(records))
			} else {
				out.Plain(report)
			}
			return fmt.Errorf("%d conflicts found", len(records))
		},
	}
	cmd.Flags().BoolVar(&work, "work", false, MsgFlagWork)
	cmd.Flags().BoolVar(&porcelain, "porcelain", false, MsgFlagPorcelain)
	return cmd
}

func newVerifyCmd(dotfilesRoot *string) *cobra.Command {
	var work bool
	cmd := &cobra.Command{
		Use:   "verify [packs...]",
		Short: MsgVerifyShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := setup(*dotfilesRoot)
			if err != nil {
				return err
			}
			out := output.New()
			o := deploy.New(cfg, p, out, nil)

			var expected []string
			for _, name := range cfg.AllPackages(args, work) {
				expected = append(expected, o.ExpectedLinks(name)...)
			}

			report := verify.New(p.DotfilesRoot()).Verify(expected)
			if report.OK() {
				out.OK("Verified: %s", report.Summary())
				return nil
			}
			out.Warn("Verification: %s", report.Summary())
			for _, issue := range report.Issues {
				out.Warn("  %s: %s", issue.Path, issue.Reason)
			}
			// Verification is informational; issues never fail the command.
			return nil
		},
	}
	cmd.Flags().BoolVar(&work, "work", false, MsgFlagWork)
	return cmd
}

func newBackupCmd(dotfilesRoot *string) *cobra.Command {
	var (
		work bool
		skip bool
	)
	cmd := &cobra.Command{
		Use:   "backup [packs...]",
		Short: MsgBackupShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := setup(*dotfilesRoot)
			if err != nil {
				return err
			}
			out := output.New()
			o := deploy.New(cfg, p, out, nil)

			var targets []string
			for _, name := range cfg.AllPackages(args, work) {
				targets = append(targets, o.ExpectedLinks(name)...)
			}

			mgr := backup.NewManager(p.DotfilesRoot(), p.TargetRoot(), p.BackupRoot(), cfg.Backup.Prefix)
			if !mgr.NeedsBackup(targets) {
				out.Info(MsgNothingToBackup)
				return nil
			}
			res, err := mgr.CreateBackup(targets, skip)
			if err != nil {
				return err
			}
			out.OK("Backed up %d paths to %s", res.BackedUp, res.Dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&work, "work", false, MsgFlagWork)
	cmd.Flags().BoolVar(&skip, "skip", false, MsgFlagSkip)
	return cmd
}

func newConfigCmd(dotfilesRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := setup(*dotfilesRoot)
			if err != nil {
				return err
			}
			out, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("# dotfiles: %s\n# target:   %s\n# backups:  %s\n\n",
				p.DotfilesRoot(), p.TargetRoot(), p.BackupRoot())
			fmt.Print(string(out))
			return nil
		},
	}
}
