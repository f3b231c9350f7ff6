package cli

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"growfield/internal/growth"
	"growfield/internal/term"
)

func newWatchCmd(o *options) *cobra.Command {
	var (
		tps     int
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a shape grow in the terminal.",
		Long: `watch grows the configured seed in interactive mode and draws one Z
slice of the field, two rows per character. Keys: space pauses, n steps,
up/down (or k/j) change the slice, p toggles a top-down projection, r regrows
and q quits.`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			if !fs.Changed("mode") {
				o.set["mode"] = growth.Interactive.String()
			}
			// the screen owns the terminal; logs go to a file or nowhere
			o.log.SetOutput(io.Discard)
			if logFile != "" {
				fh, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer fh.Close()
				o.log.SetOutput(fh)
			}

			w, err := o.world(fs)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return term.New(screen, w, tps, o.log).Run(ctx)
		},
	}
	bindConfigFlags(cmd.Flags())
	cmd.Flags().IntVar(&tps, "tps", 30, "ticks per second")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
