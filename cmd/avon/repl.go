package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avon-lang/avon"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read-eval-print loop over stdin, one expression per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := avon.NewGlobalEnv(nil)
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Fprint(os.Stderr, "avon> ")
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					fmt.Fprint(os.Stderr, "avon> ")
					continue
				}
				toks, diagErr := avon.Lex(line)
				if diagErr != nil {
					fmt.Fprintln(os.Stderr, diagErr.Error())
					fmt.Fprint(os.Stderr, "avon> ")
					continue
				}
				node, diagErr := avon.ParseTokens(toks)
				if diagErr != nil {
					fmt.Fprintln(os.Stderr, diagErr.Error())
					fmt.Fprint(os.Stderr, "avon> ")
					continue
				}
				val, diagErr := avon.Eval(node, env)
				if diagErr != nil {
					fmt.Fprintln(os.Stderr, diagErr.Error())
					fmt.Fprint(os.Stderr, "avon> ")
					continue
				}
				fmt.Println(val.ToDisplayString())
				fmt.Fprint(os.Stderr, "avon> ")
			}
			return scanner.Err()
		},
	}
}
