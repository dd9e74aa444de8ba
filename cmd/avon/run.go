package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avon-lang/avon"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.avon> [-name value ...] [args ...]",
		Short: "Evaluate a program and print its result",
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
			fmt.Println(avon.FormatJSON(val))
			return nil
		},
	}
	// Anything after the source file is a -name value pair for the
	// program's top-level environment, not a flag of this command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
