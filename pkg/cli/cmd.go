package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/display"
	"github.com/unikiosk/displays/pkg/service"
	"github.com/unikiosk/displays/pkg/store/disk"
	"github.com/unikiosk/displays/pkg/util/logger"
)

type globals struct {
	envFile string

	config *config.Config
	log    *zap.Logger

	// newDisplays is swapped out in tests
	newDisplays func(log *zap.Logger) *display.Client
}

// RunCLI executes the displays command line.
func RunCLI(ctx context.Context) error {
	return NewCommand().ExecuteContext(ctx)
}

// NewCommand returns the root cobra command.
func NewCommand() *cobra.Command {
	return newCommand(&globals{newDisplays: display.New})
}

func newCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "displays",
		Short:        "Display enumeration",
		Long:         "Lists active display outputs and their pixel dimensions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(g.envFile)
			if err != nil {
				return err
			}
			g.config = c
			g.log = logger.GetLoggerInstance(c.LogPath, logger.ParseLogLevel(c.LogLevel))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Environment file merged into the configuration when present")

	cmd.AddCommand(
		newListCommand(g),
		newSizeCommand(g),
		newWatchCommand(g),
		newServeCommand(g),
	)
	return cmd
}

func newListCommand(g *globals) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitors, err := g.newDisplays(g.log.Named("display")).Monitors()
			if err != nil {
				return err
			}
			if raw {
				spew.Fdump(cmd.OutOrStdout(), monitors)
				return nil
			}
			return printMonitors(cmd.OutOrStdout(), monitors)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Dump the raw display records")
	return cmd
}

func newSizeCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "size <id>",
		Short: "Print WIDTHxHEIGHT of one display",
		Long:  "Print the size of one display. Ids come from 'displays list' and are only valid until the display configuration changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := display.ParseHandle(args[0])
			if err != nil {
				return err
			}
			size, err := g.newDisplays(g.log.Named("display")).QuerySize(h)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
}

func newWatchCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print display layout changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := newService(ctx, g)
			if err != nil {
				return err
			}

			events := svc.Events().Subscribe(ctx)
			go func() {
				for ev := range events {
					printEvent(cmd.OutOrStdout(), ev)
				}
			}()

			return svc.Watch(ctx)
		},
	}
}

func newServeCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the display API and watch for layout changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context(), g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context())
		},
	}
}

func newService(ctx context.Context, g *globals) (*service.ServiceManager, error) {
	store, err := disk.New(g.log.Named("store"), g.config)
	if err != nil {
		return nil, err
	}
	return service.NewWithDisplays(ctx, g.log, g.config, g.newDisplays(g.log.Named("display")), store)
}

func printMonitors(w io.Writer, monitors []display.Monitor) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tBOUNDS\tWORK AREA\tPRIMARY")
	for _, m := range monitors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", m.Handle, m.Size, formatRect(m.Bounds), formatRect(m.WorkArea), m.Primary)
	}
	return tw.Flush()
}

func formatRect(r display.Rect) string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

func printEvent(w io.Writer, ev api.Event) {
	switch ev.Type {
	case api.EventTypeEnumerationFailed:
		fmt.Fprintf(w, "%s: %s\n", ev.Type, ev.Error)
	default:
		fmt.Fprintf(w, "%s: %d display(s) at %s\n", ev.Type, len(ev.Snapshot.Monitors), ev.Snapshot.Taken.Format("15:04:05"))
		for _, m := range ev.Snapshot.Monitors {
			fmt.Fprintf(w, "  %s %dx%d primary=%t\n", m.ID, m.Width, m.Height, m.Primary)
		}
	}
}
