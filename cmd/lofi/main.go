package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"lofi/internal/bootstrap"
	audiodto "lofi/internal/modules/audio/dto"
	checklistdto "lofi/internal/modules/checklist/dto"
	timerdto "lofi/internal/modules/timer/dto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts bootstrap.Options

	root := &cobra.Command{
		Use:           "lofi",
		Short:         "Focus timer, lo-fi music and a daily checklist in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (default: user config dir)")
	root.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "keep everything in memory and discard it on exit")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(&opts))
	root.AddCommand(newTaskCmd(&opts))
	root.AddCommand(newStatsCmd(&opts))
	root.AddCommand(newQuoteCmd(&opts))
	root.AddCommand(newSettingsCmd(&opts))
	root.AddCommand(newTimerCmd(&opts))
	root.AddCommand(newPlayCmd(&opts))
	root.AddCommand(newOnboardingCmd(&opts))
	return root
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runTUI(parent context.Context, opts bootstrap.Options) error {
	ctx, stop := signalContext(parent)
	defer stop()
	app, err := bootstrap.New(opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return bootstrap.RunTUI(ctx, app)
}

// withApp builds the app for one command and closes it afterwards.
func withApp(opts *bootstrap.Options, fn func(app *bootstrap.App) error) error {
	app, err := bootstrap.New(*opts)
	if err != nil {
		return err
	}
	runErr := fn(app)
	if closeErr := app.Close(); runErr == nil {
		runErr = closeErr
	}
	return runErr
}

func newTUICmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), *opts)
		},
	}
}

func newTaskCmd(opts *bootstrap.Options) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage today's checklist"}

	task.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a task for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ChecklistCLI.Add(context.Background(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Text, shortID(out.ID))
				return nil
			})
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				snap, err := app.ChecklistCLI.Load(context.Background())
				if err != nil {
					return err
				}
				printSnapshot(cmd, snap)
				return nil
			})
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "toggle <n|id>",
		Short: "Toggle a task by list position or id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				snap, err := app.ChecklistCLI.Load(ctx)
				if err != nil {
					return err
				}
				id, err := resolveTask(snap, args[0])
				if err != nil {
					return err
				}
				out, err := app.ChecklistCLI.Toggle(ctx, id)
				if err != nil {
					return err
				}
				state := "open"
				if out.Task.IsCompleted {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Task.Text, state)
				if out.StreakIncreased {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "all done for today, streak %d\n", out.Stats.Streak)
				}
				return nil
			})
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "delete <n|id>",
		Short: "Delete a task by list position or id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				snap, err := app.ChecklistCLI.Load(ctx)
				if err != nil {
					return err
				}
				id, err := resolveTask(snap, args[0])
				if err != nil {
					return err
				}
				if err := app.ChecklistCLI.Delete(ctx, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			})
		},
	})
	return task
}

func resolveTask(snap checklistdto.Snapshot, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(snap.Tasks) {
			return "", fmt.Errorf("no task #%d (have %d)", n, len(snap.Tasks))
		}
		return snap.Tasks[n-1].ID, nil
	}
	var match string
	for _, t := range snap.Tasks {
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task with id %q", arg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printSnapshot(cmd *cobra.Command, snap checklistdto.Snapshot) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s  %d/%d completed  streak %d\n", snap.Today, snap.Completed, len(snap.Tasks), snap.Stats.Streak)
	if len(snap.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, "no tasks for today")
		return
	}
	for i, t := range snap.Tasks {
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "%2d. [%s] %s\t%s\n", i+1, mark, t.Text, shortID(t.ID))
	}
}

func newStatsCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the completion streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				snap, err := app.ChecklistCLI.Load(context.Background())
				if err != nil {
					return err
				}
				last := snap.Stats.LastCompletionDate
				if last == "" {
					last = "never"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak\t%d\nlast\t%s\n", snap.Stats.Streak, last)
				return nil
			})
		},
	}
}

func newQuoteCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				q := app.QuoteCLI.Refresh(cmd.Context())
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "“%s”\n  - %s\n", q.Content, q.Author)
				return nil
			})
		},
	}
}

func newSettingsCmd(opts *bootstrap.Options) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Timer durations"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show focus and break durations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.TimerCLI.Settings(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus\t%dm\nbreak\t%dm\n", s.FocusMinutes, s.BreakMinutes)
				return nil
			})
		},
	})

	var focus, brk int
	set := &cobra.Command{
		Use:   "set",
		Short: "Change focus and break durations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				current, err := app.TimerCLI.Settings(ctx)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("focus") {
					focus = current.FocusMinutes
				}
				if !cmd.Flags().Changed("break") {
					brk = current.BreakMinutes
				}
				st, err := app.TimerCLI.SaveSettings(ctx, focus, brk)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus %dm, break %dm\n", st.Settings.FocusMinutes, st.Settings.BreakMinutes)
				return nil
			})
		},
	}
	set.Flags().IntVar(&focus, "focus", 0, "focus minutes (1-60)")
	set.Flags().IntVar(&brk, "break", 0, "break minutes (1-30)")
	settings.AddCommand(set)
	return settings
}

func newTimerCmd(opts *bootstrap.Options) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Headless focus timer"}

	var phases int
	run := &cobra.Command{
		Use:   "run",
		Short: "Count down phases in the terminal with chime and notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.Start(ctx, nil); err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for i := 0; phases <= 0 || i < phases; i++ {
					done, err := app.TimerCLI.RunPhase(ctx, func(u timerdto.Update) {
						if u.Completion == nil {
							_, _ = fmt.Fprintf(w, "\r%-11s %6s", u.State.Label, u.State.Clock)
						}
					})
					if err != nil {
						_, _ = fmt.Fprintln(w)
						if ctx.Err() != nil {
							return nil
						}
						return err
					}
					_, _ = fmt.Fprintf(w, "\r%s finished, next: %s\n", strings.ToLower(done.Finished), strings.ToLower(done.Next))
				}
				return nil
			})
		},
	}
	run.Flags().IntVar(&phases, "phases", 1, "phases to run, 0 for until interrupted")
	timer.AddCommand(run)
	return timer
}

func newPlayCmd(opts *bootstrap.Options) *cobra.Command {
	var volume int
	play := &cobra.Command{
		Use:   "play",
		Short: "Play the lo-fi playlist until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return withApp(opts, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				unsubscribe := app.AudioCLI.Subscribe(func(st audiodto.PlayerState) {
					if st.IsPlaying {
						_, _ = fmt.Fprintf(w, "♪ %s (%d/%d)\n", st.Title, st.Index+1, st.TrackCount)
					}
				})
				defer unsubscribe()

				app.AudioCLI.SetVolume(ctx, float64(volume)/100)
				if st := app.AudioCLI.TogglePlay(ctx); !st.IsPlaying {
					return errors.New("playback unavailable: audio disabled or stream unreachable")
				}
				<-ctx.Done()
				return nil
			})
		},
	}
	play.Flags().IntVar(&volume, "volume", 50, "volume 0-100")
	return play
}

func newOnboardingCmd(opts *bootstrap.Options) *cobra.Command {
	onboarding := &cobra.Command{Use: "onboarding", Short: "Welcome screen state"}

	onboarding.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the welcome screen was dismissed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed\t%t\n", app.OnboardingCLI.Completed(context.Background()))
				return nil
			})
		},
	})

	onboarding.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show the welcome screen again on next launch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.OnboardingCLI.Reset(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "welcome screen will show on next launch")
				return nil
			})
		},
	})
	return onboarding
}
