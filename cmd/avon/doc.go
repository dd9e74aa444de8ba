package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/avon-lang/avon"
)

func newDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [category]",
		Short: "List builtins grouped by category, optionally one category only",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := avon.ListBuiltins()
			byCategory := map[string][]*avon.BuiltinDef{}
			for _, d := range defs {
				byCategory[d.Category] = append(byCategory[d.Category], d)
			}
			var categories []string
			if len(args) == 1 {
				if _, ok := byCategory[args[0]]; !ok {
					return fmt.Errorf("unknown category %q", args[0])
				}
				categories = []string{args[0]}
			} else {
				for c := range byCategory {
					categories = append(categories, c)
				}
				sort.Strings(categories)
			}
			for _, c := range categories {
				fmt.Printf("# %s\n", c)
				group := byCategory[c]
				sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
				for _, d := range group {
					fmt.Printf("  %-20s %s\n", d.Name, d.Doc)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
