// Package configcmd implements the `eventdesk config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/config"
)

const starterConfig = `# eventdesk configuration

# Booking confirmations are written to the sentEmails log.
notifications:
  enabled: true
  from: no-reply@eventdesk.local

# Keep the signed-in user between invocations.
session:
  persist: true

# Default price ceiling for event listings.
catalog:
  max_price: 1000
`

// view is what `config` prints: the effective settings plus the data home.
type view struct {
	config.AppConfig `yaml:",inline"`
	Home             string `yaml:"home"`
	HomeSource       string `yaml:"home_source"`
}

// Command implements `eventdesk config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and data home",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newInit(ctx),
		newValidate(ctx),
		newSetHome(),
		newClearHome(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home, source := c.ctx.ResolvedHome()
	cfg, err := config.Load(configPath(home))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(view{AppConfig: *cfg, Home: home, HomeSource: source}); err != nil {
		return err
	}
	return enc.Close()
}

func configPath(home string) string { return filepath.Join(home, "config.yaml") }

// ---------------------------------------------------------------------------
// config init / validate
// ---------------------------------------------------------------------------

func newInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented starter config.yaml into the data home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := ctx.ResolvedHome()
			path := configPath(home)
			out := cmd.OutOrStdout()
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(out, "%s already exists; pass --force to replace it\n", path)
				return nil
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(starterConfig), 0o600); err != nil {
				return err
			}
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("starter config does not load: %w", err)
			}
			fmt.Fprintf(out, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config.yaml")
	return cmd
}

func newValidate(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check config.yaml in the data home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := ctx.ResolvedHome()
			path := configPath(home)
			if _, err := config.Load(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "No config at %s; defaults apply\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config set-home / clear-home
// ---------------------------------------------------------------------------

func newSetHome() *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Remember a data home for when " + config.EnvHome + " is unset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.SetPersistedHome(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Persisted data home: %s\n", home)
			return nil
		},
	}
}

func newClearHome() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-home",
		Short: "Forget the remembered data home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cleared, err := config.ClearPersistedHome()
			if err != nil {
				return err
			}
			if cleared {
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared persisted data home setting.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No persisted data home setting was found.")
			}
			return nil
		},
	}
}
