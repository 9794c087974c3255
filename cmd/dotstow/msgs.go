package dotstow

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Deploy dotfiles as symlinks with GNU Stow"
	MsgDeployShort  = "Deploy packs into the home directory"
	MsgCheckShort   = "Check packs for conflicts without deploying"
	MsgVerifyShort  = "Verify that deployed packs are correctly linked"
	MsgBackupShort  = "Back up target paths without deploying"
	MsgTopicsShort  = "Display extended documentation topics"
	MsgConfigShort  = "Print the effective configuration"
	MsgVersionShort = "Print version information"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce     = "Remove conflicting paths automatically (after backing them up)"
	MsgFlagAdopt     = "Absorb existing files into the packs via stow --adopt"
	MsgFlagWork      = "Include the work overlay packs"
	MsgFlagDotfiles  = "Dotfiles source root (default: $DOTFILES_ROOT or ~/dotfiles)"
	MsgFlagSkip      = "Skip the backup step"
	MsgFlagPorcelain = "Emit machine-readable conflict records, one per line"

	// Status messages
	MsgNoConflicts     = "No conflicts found."
	MsgNothingToBackup = "Nothing needs backing up."
)

// Long messages
const (
	MsgRootLong = `dotstow deploys your dotfiles as symlinks into your home directory,
using GNU Stow as the linking mechanism. Each pack is a directory whose
layout mirrors where its files should appear under the target root.

Before anything is linked, dotstow scans for conflicts: existing files
or foreign symlinks at target paths. Conflicts abort the deployment
unless you pass --force (remove them, after a backup) or --adopt
(absorb them into the packs).`

	MsgDeployLong = `Deploy the named packs, or the configured default set when no packs
are named. The sequence is: conflict check, backup, forced resolution
(with --force), directory preparation, stow invocation per pack, and a
final verification pass.`
)
