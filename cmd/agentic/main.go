// Command agentic runs the task orchestration agent from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/oracle"
	"github.com/effective-security/agentic/tools"
	"github.com/effective-security/agentic/tools/calc"
	"github.com/effective-security/agentic/tools/clock"
	"github.com/effective-security/agentic/tools/weather"
	"github.com/effective-security/agentic/tools/websearch"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "cli")

type cliFlags struct {
	cfgFile  string
	provider string
	model    string
	persona  string
	debug    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:           "agentic",
		Short:         "agentic is a task orchestration agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
			if flags.debug {
				xlog.SetGlobalLogLevel(xlog.DEBUG)
			} else {
				xlog.SetGlobalLogLevel(xlog.WARNING)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.cfgFile, "cfg", "", "path to the oracle configuration file")
	cmd.PersistentFlags().StringVar(&flags.provider, "provider", "", "oracle provider name from the configuration")
	cmd.PersistentFlags().StringVar(&flags.model, "model", "", "oracle model identifier")
	cmd.PersistentFlags().StringVar(&flags.persona, "persona", "", "agent persona text")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")

	cmd.AddCommand(newChatCmd(flags))
	cmd.AddCommand(newToolsCmd())

	return cmd
}

// newOracleClient builds the oracle client from the configuration file,
// or from environment defaults when no file is given.
func newOracleClient(flags *cliFlags) (oracle.Client, error) {
	if flags.cfgFile != "" {
		f, err := oracle.Load(flags.cfgFile)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to load configuration")
		}
		if flags.provider != "" {
			return f.ClientByName(flags.provider)
		}
		return f.DefaultClient()
	}

	opts := []oracle.OpenAIOption{}
	if flags.model != "" {
		opts = append(opts, oracle.WithModel(flags.model))
	}
	return oracle.NewOpenAI(opts...)
}

// newToolRegistry registers every available tool. The web search tool
// needs a credential and is skipped without one; the weather tool
// degrades to simulated reports on its own.
func newToolRegistry() *tools.Registry {
	registry := tools.NewRegistry(
		calc.New(),
		weather.New(),
		clock.New(),
	)
	if ws, err := websearch.New(); err == nil {
		registry.Register(ws)
	} else {
		logger.KV(xlog.DEBUG, "reason", "web search disabled", "err", err.Error())
	}
	return registry
}
