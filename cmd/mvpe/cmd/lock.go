package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvp-express/core/pkg/ids"
)

// lockCmd groups the lockfile maintenance tooling §4.4.6 anticipates:
// the allocator never auto-tombstones or auto-aliases, so retiring a
// symbol or recording a rename is an explicit, separate operation.
var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Maintain the ids lockfile directly",
	Long: `Operations on the .mvpe.ids.lock file that the allocator itself never
performs automatically: retiring an id (tombstone) and recording a rename
(alias).`,
}

// applyTombstone mutates lock in place per the "mvpe lock tombstone" args,
// extracted from the Run closure so it can be tested without going through
// cobra or os.Exit.
func applyTombstone(lock *ids.Lock, args []string) error {
	space := args[0]
	switch space {
	case "service":
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		lock.TombstoneServices[id] = true
	case "message":
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		lock.TombstoneMessages[id] = true
	case "method":
		if len(args) != 3 {
			return fmt.Errorf("tombstoning a method id requires <service> <id>")
		}
		service := args[1]
		id, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[2])
		}
		lock.TombstonesForService(service)[id] = true
	default:
		return fmt.Errorf("unknown space %q (must be service, method, or message)", space)
	}
	return nil
}

// applyAlias mutates lock in place per the "mvpe lock alias" args.
func applyAlias(lock *ids.Lock, space, oldName, newName string) error {
	switch space {
	case "service":
		lock.AliasServices[oldName] = newName
	case "message":
		lock.AliasMessages[oldName] = newName
	default:
		return fmt.Errorf("unknown space %q (must be service or message)", space)
	}
	return nil
}

var lockTombstoneCmd = &cobra.Command{
	Use:   "tombstone <space> <id>",
	Short: "Retire an id so the allocator never reuses it",
	Long: `Mark an id as tombstoned in the given space (service, method, or
message). Tombstoned ids are permanently excluded from future deterministic
allocation and explicit assignment.

Examples:
  mvpe lock tombstone service 500
  mvpe lock tombstone method AccountService 7`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		lockfilePath, _ := cmd.Flags().GetString("lockfile")
		lock, err := ids.LoadLockfile(lockfilePath)
		if err != nil {
			cmd.Printf("Error loading lockfile: %v\n", err)
			os.Exit(exitIOFailure)
		}

		if err := applyTombstone(lock, args); err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(exitValidationError)
		}

		if err := ids.SaveLockfile(lock, lockfilePath); err != nil {
			cmd.Printf("Error saving lockfile: %v\n", err)
			os.Exit(exitIOFailure)
		}
		cmd.Printf("Tombstoned %s id in %s\n", args[0], lockfilePath)
	},
}

var lockAliasCmd = &cobra.Command{
	Use:   "alias <space> <old-name> <new-name>",
	Short: "Record a rename so the old name's id carries forward",
	Long: `Record that old-name was renamed to new-name in the given space
(service or message). The next "mvpe write" resolves the chain and migrates
the lockfile entry onto the new name while keeping its numeric id.

Examples:
  mvpe lock alias message GetBalanceRequest GetBalanceRequestV2`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		lockfilePath, _ := cmd.Flags().GetString("lockfile")
		lock, err := ids.LoadLockfile(lockfilePath)
		if err != nil {
			cmd.Printf("Error loading lockfile: %v\n", err)
			os.Exit(exitIOFailure)
		}

		if err := applyAlias(lock, args[0], args[1], args[2]); err != nil {
			cmd.Printf("Error: %v\n", err)
			os.Exit(exitValidationError)
		}

		if err := ids.SaveLockfile(lock, lockfilePath); err != nil {
			cmd.Printf("Error saving lockfile: %v\n", err)
			os.Exit(exitIOFailure)
		}
		cmd.Printf("Recorded alias %s -> %s in %s\n", args[1], args[2], lockfilePath)
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	lockCmd.AddCommand(lockTombstoneCmd)
	lockCmd.AddCommand(lockAliasCmd)

	lockCmd.PersistentFlags().String("lockfile", ".mvpe.ids.lock", "Path to the ids lockfile")
}
