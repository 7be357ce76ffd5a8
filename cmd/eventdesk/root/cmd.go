// Package rootcmd wires the root cobra.Command for the eventdesk CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	admincmd "github.com/go-ports/eventdesk/cmd/eventdesk/admin"
	agentscmd "github.com/go-ports/eventdesk/cmd/eventdesk/agents"
	bookcmd "github.com/go-ports/eventdesk/cmd/eventdesk/book"
	bookingscmd "github.com/go-ports/eventdesk/cmd/eventdesk/bookings"
	cancelcmd "github.com/go-ports/eventdesk/cmd/eventdesk/cancel"
	configcmd "github.com/go-ports/eventdesk/cmd/eventdesk/config"
	emailscmd "github.com/go-ports/eventdesk/cmd/eventdesk/emails"
	eventscmd "github.com/go-ports/eventdesk/cmd/eventdesk/events"
	initcmd "github.com/go-ports/eventdesk/cmd/eventdesk/init"
	logincmd "github.com/go-ports/eventdesk/cmd/eventdesk/login"
	logoutcmd "github.com/go-ports/eventdesk/cmd/eventdesk/logout"
	mcpcmd "github.com/go-ports/eventdesk/cmd/eventdesk/mcp"
	profilecmd "github.com/go-ports/eventdesk/cmd/eventdesk/profile"
	reviewscmd "github.com/go-ports/eventdesk/cmd/eventdesk/reviews"
	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	storecmd "github.com/go-ports/eventdesk/cmd/eventdesk/store"
	subscribecmd "github.com/go-ports/eventdesk/cmd/eventdesk/subscribe"
	whoamicmd "github.com/go-ports/eventdesk/cmd/eventdesk/whoami"
	"github.com/go-ports/eventdesk/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the eventdesk CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "eventdesk",
		Short:         "EventDesk, browse, book and review events from the terminal",
		Version:       buildinfo.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Home, "home", "",
		"Override data home directory (default: $EVENTDESK_HOME env → persisted config → ~/.eventdesk)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		logincmd.New(ctx).Cmd(),
		logoutcmd.New(ctx).Cmd(),
		whoamicmd.New(ctx).Cmd(),
		profilecmd.New(ctx).Cmd(),
		eventscmd.New(ctx).Cmd(),
		bookcmd.New(ctx).Cmd(),
		cancelcmd.New(ctx).Cmd(),
		bookingscmd.New(ctx).Cmd(),
		reviewscmd.New(ctx).Cmd(),
		subscribecmd.New(ctx).Cmd(),
		emailscmd.New(ctx).Cmd(),
		admincmd.New(ctx).Cmd(),
		storecmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		agentscmd.New(ctx).Cmd(),
	)

	return root
}
