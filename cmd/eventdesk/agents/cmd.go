// Package agentscmd implements the `eventdesk agents` command group.
package agentscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/agents"
	"github.com/go-ports/eventdesk/internal/config"
)

// Command implements `eventdesk agents`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the agents command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "agents",
		Short: "Register the eventdesk MCP server with coding agents",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newInstall(ctx),
		newUninstall(),
		newStatus(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

type targetFlags struct {
	configDir string
	project   bool
}

func (tf *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tf.configDir, "config-dir", "", "Agent config directory (e.g. path to .claude)")
	cmd.Flags().BoolVar(&tf.project, "project", false, "Use the current project's config instead of the global one")
}

func (tf *targetFlags) resolve(name string) (agents.Agent, string, error) {
	a, err := agents.Parse(name)
	if err != nil {
		return "", "", err
	}
	path, err := agents.ConfigPath(a, tf.configDir, tf.project)
	if err != nil {
		return "", "", err
	}
	return a, path, nil
}

// ---------------------------------------------------------------------------
// agents install
// ---------------------------------------------------------------------------

func newInstall(ctx *shared.Context) *cobra.Command {
	tf := &targetFlags{}
	cmd := &cobra.Command{
		Use:       "install <agent>",
		Short:     "Add eventdesk to an agent's MCP servers (claude-code, cursor, codex, opencode)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: agentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, path, err := tf.resolve(args[0])
			if err != nil {
				return err
			}
			// Pin the data home unless it is the default one.
			home, source := ctx.ResolvedHome()
			if source == config.SourceDefault {
				home = ""
			}
			added, err := agents.Install(a, path, home)
			if err != nil {
				return fmt.Errorf("install %s: %w", a, err)
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Installed eventdesk MCP server in %s\n", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Already installed")
			}
			return nil
		},
	}
	tf.register(cmd)
	return cmd
}

// ---------------------------------------------------------------------------
// agents uninstall
// ---------------------------------------------------------------------------

func newUninstall() *cobra.Command {
	tf := &targetFlags{}
	cmd := &cobra.Command{
		Use:       "uninstall <agent>",
		Short:     "Remove eventdesk from an agent's MCP servers",
		Args:      cobra.ExactArgs(1),
		ValidArgs: agentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, path, err := tf.resolve(args[0])
			if err != nil {
				return err
			}
			removed, err := agents.Uninstall(a, path)
			if err != nil {
				return fmt.Errorf("uninstall %s: %w", a, err)
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed eventdesk MCP server from %s\n", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remove")
			}
			return nil
		},
	}
	tf.register(cmd)
	return cmd
}

// ---------------------------------------------------------------------------
// agents status
// ---------------------------------------------------------------------------

func newStatus() *cobra.Command {
	tf := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which agents have eventdesk registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, a := range agents.All {
				path, err := agents.ConfigPath(a, "", tf.project)
				if err != nil {
					return err
				}
				state := "not installed"
				if agents.Installed(a, path) {
					state = "installed"
				}
				fmt.Fprintf(out, "%-12s %-14s %s\n", a, state, path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tf.project, "project", false, "Check the current project's configs")
	return cmd
}

func agentNames() []string {
	names := make([]string, len(agents.All))
	for i, a := range agents.All {
		names[i] = string(a)
	}
	return names
}
