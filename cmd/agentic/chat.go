package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/effective-security/agentic/callbacks"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/orchestrator"
	"github.com/spf13/cobra"
)

// exitKeywords end the chat session.
var exitKeywords = []string{"exit", "quit", "bye"}

func newChatCmd(flags *cliFlags) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "start an interactive chat session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newOracleClient(flags)
			if err != nil {
				return err
			}

			opts := []orchestrator.Option{
				orchestrator.WithPersona(flags.persona),
			}
			if verbose {
				opts = append(opts, orchestrator.WithCallback(
					callbacks.NewPrinter(cmd.ErrOrStderr(), callbacks.ModeVerbose)))
			}

			loop, err := orchestrator.New(client, newToolRegistry(), opts...)
			if err != nil {
				return err
			}
			return runChat(cmd, loop)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "print cycle progress")
	return cmd
}

func runChat(cmd *cobra.Command, loop *orchestrator.Loop) error {
	out := cmd.OutOrStdout()
	ctx := chatmodel.WithChatID(cmd.Context(), chatmodel.NewChatID())

	fmt.Fprintf(out, "%s ready. Type %s to leave.\n",
		loop.Name(), strings.Join(exitKeywords, ", "))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExitKeyword(input) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		res, err := loop.Chat(ctx, input)
		if err != nil {
			fmt.Fprintf(out, "Sorry, something went wrong. Please try again.\n")
			continue
		}
		fmt.Fprintln(out, res.Response)
	}
}

func isExitKeyword(input string) bool {
	for _, kw := range exitKeywords {
		if strings.EqualFold(input, kw) {
			return true
		}
	}
	return false
}
