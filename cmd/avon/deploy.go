package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avon-lang/avon"
)

func newDeployCmd() *cobra.Command {
	var root, policyFlag string
	var force, appendMode, ifNotExists, backup, keepGoing bool

	cmd := &cobra.Command{
		Use:   "deploy <file.avon> [-name value ...] [args ...]",
		Short: "Evaluate a program and write its FileTemplate values to disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			named, positional, err := parseNamedArgs(args[1:])
			if err != nil {
				return err
			}
			val, err := evalFile(args[0], named, positional)
			if err != nil {
				return err
			}

			policy := resolvePolicy(k.String("policy"), force || k.Bool("force"), appendMode || k.Bool("append"), ifNotExists || k.Bool("if-not-exists"), backup || k.Bool("backup"))
			opts := avon.DeployOptions{
				Root:      k.String("root"),
				Policy:    policy,
				KeepGoing: keepGoing || k.Bool("keep-going"),
			}
			results, deployErr := avon.Deploy(val, opts)
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("error  %s: %s\n", r.Path, r.Err)
					continue
				}
				fmt.Printf("%-10s %s\n", r.Action, r.Path)
			}
			if deployErr != nil {
				return &cliDiagError{deployErr.Error()}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "deployment root directory")
	cmd.Flags().StringVar(&policyFlag, "policy", "default", "write policy: default, force, append, if-not-exists, backup")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing targets")
	cmd.Flags().BoolVar(&appendMode, "append", false, "append to existing targets")
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "fail when a target already exists")
	cmd.Flags().BoolVar(&backup, "backup", false, "rename an existing target to <path>.bak before writing")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "attempt every FileTemplate even after a failure")
	cmd.MarkFlagsMutuallyExclusive("append", "if-not-exists")
	// Flags come before the source file; everything after it is a
	// -name value pair for the program's top-level environment.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// resolvePolicy maps the policy flags onto a single WritePolicy.
// --backup composes with --force (the backup happens before the
// overwrite either way), so backup wins when both are set.
func resolvePolicy(flagVal string, force, appendMode, ifNotExists, backup bool) avon.WritePolicy {
	switch {
	case backup:
		return avon.PolicyBackup
	case force:
		return avon.PolicyForce
	case appendMode:
		return avon.PolicyAppend
	case ifNotExists:
		return avon.PolicyIfNotExists
	}
	switch flagVal {
	case "force":
		return avon.PolicyForce
	case "append":
		return avon.PolicyAppend
	case "if-not-exists":
		return avon.PolicyIfNotExists
	case "backup":
		return avon.PolicyBackup
	default:
		return avon.PolicyDefault
	}
}
