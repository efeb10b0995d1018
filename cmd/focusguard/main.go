package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusguard/internal/bootstrap"
	engineinadapter "focusguard/internal/modules/engine/adapter/in"
	enginedto "focusguard/internal/modules/engine/dto"
	sessiondto "focusguard/internal/modules/session/dto"
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "focusguard",
		Short:         "Focus mode, site blocking and work sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "state directory (default: user config dir)")

	root.AddCommand(newDaemonCmd(&dataDir))
	root.AddCommand(newSendCmd(&dataDir))
	root.AddCommand(newFocusCmd(&dataDir))
	root.AddCommand(newBlockListCmd(&dataDir))
	root.AddCommand(newReminderCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newRulesCmd(&dataDir))
	root.AddCommand(newNotifierCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

// withApp loads config, opens the log and wires the app for one command.
// The daemon also mirrors its log to stderr.
func withApp(dataDir string, toStderr bool, run func(app *bootstrap.App) error) error {
	cfg, err := config.New(dataDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	var out io.Writer = logFile
	if toStderr {
		out = io.MultiWriter(logFile, os.Stderr)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: out})

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return run(app)
}

// send routes msg through the in-process engine and turns a failed reply
// into an error.
func send(app *bootstrap.App, msg enginedto.Message) (enginedto.Response, error) {
	resp := app.EngineCLI.Send(context.Background(), msg)
	if !resp.Success {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printState(w io.Writer, state *enginedto.StateOutput) {
	if state == nil {
		return
	}
	focus := "off"
	if state.IsBlocking {
		focus = "on"
	}
	_, _ = fmt.Fprintf(w, "focus: %s\n", focus)
	_, _ = fmt.Fprintf(w, "block list: %s\n", strings.Join(state.BlockList, ", "))
	_, _ = fmt.Fprintf(w, "reminder: %d min armed=%t\n", state.FocusReminderMinutes, state.ReminderArmed)
	if s := state.Session; s != nil && s.IsActive {
		_, _ = fmt.Fprintf(w, "session: %q ends %s (%s left)\n", s.Intent, s.EndTime.Local().Format(time.Kitchen), (time.Duration(s.RemainingSeconds) * time.Second).String())
	}
}

func newDaemonCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run boot recovery, the alarm pump and the socket server",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*dataDir, true, func(app *bootstrap.App) error {
				return app.RunDaemon(ctx)
			})
		},
	}
}

func newSendCmd(dataDir *string) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "send '<json>'",
		Short: "Post a raw message to the running daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := engineinadapter.DecodeMessage(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				var resp enginedto.Response
				if local {
					resp = app.EngineCLI.Send(context.Background(), msg)
				} else {
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					resp, err = app.SendToDaemon(ctx, msg)
					if err != nil {
						return fmt.Errorf("%w (is `focusguard daemon` running? use --local to skip it)", err)
					}
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "handle the message in this process instead of the daemon")
	return cmd
}

func newFocusCmd(dataDir *string) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Focus mode"}

	setter := func(use, short string, msg func() enginedto.Message) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(*dataDir, false, func(app *bootstrap.App) error {
					resp, err := send(app, msg())
					if err != nil {
						return err
					}
					printState(cmd.OutOrStdout(), resp.State)
					return nil
				})
			},
		}
	}
	focus.AddCommand(
		setter("on", "Turn focus mode on", func() enginedto.Message {
			on := true
			return enginedto.Message{Action: enginedto.ActionSetBlockingState, IsBlocking: &on}
		}),
		setter("off", "Turn focus mode off", func() enginedto.Message {
			off := false
			return enginedto.Message{Action: enginedto.ActionSetBlockingState, IsBlocking: &off}
		}),
		setter("toggle", "Toggle focus mode", func() enginedto.Message {
			return enginedto.Message{Action: enginedto.ActionToggleBlocking}
		}),
		setter("status", "Show focus state", func() enginedto.Message {
			return enginedto.Message{Action: enginedto.ActionGetState}
		}),
	)
	return focus
}

func newBlockListCmd(dataDir *string) *cobra.Command {
	blockList := &cobra.Command{Use: "blocklist", Short: "Blocked sites"}

	blockList.AddCommand(&cobra.Command{
		Use:   "set <domain>...",
		Short: "Replace the block list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				resp, err := send(app, enginedto.Message{Action: enginedto.ActionUpdateBlockList, BlockList: append([]string{}, args...)})
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), resp.State)
				return nil
			})
		},
	})
	blockList.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the block list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				status, err := app.BlockingCLI.Status(context.Background())
				if err != nil {
					return err
				}
				if len(status.BlockList) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "block list is empty")
					return nil
				}
				for _, domain := range status.BlockList {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), domain)
				}
				return nil
			})
		},
	})
	return blockList
}

func newReminderCmd(dataDir *string) *cobra.Command {
	reminder := &cobra.Command{Use: "reminder", Short: "Distraction reminder while focus is off"}

	reminder.AddCommand(&cobra.Command{
		Use:   "set <minutes>",
		Short: "Set the reminder interval (0 disables it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be a whole number: %w", err)
			}
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				resp, err := send(app, enginedto.Message{Action: enginedto.ActionUpdateFocusReminderMinutes, Minutes: &minutes})
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), resp.State)
				return nil
			})
		},
	})
	reminder.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the reminder interval and next fire time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				status, err := app.ReminderCLI.Status(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "minutes=%d armed=%t", status.Minutes, status.Armed)
				if status.Armed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " next=%s", status.NextAt.Local().Format(time.RFC3339))
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	})
	return reminder
}

type sessionFlags struct {
	minutes       int
	intent        string
	eyeBreak      bool
	water         bool
	waterEvery    int
	movement      bool
	movementEvery int
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minutes, "minutes", 0, "session length in minutes")
	cmd.Flags().StringVar(&f.intent, "intent", "", "what the session is for")
	cmd.Flags().BoolVar(&f.eyeBreak, "eye-break", true, "20-minute eye break reminders")
	cmd.Flags().BoolVar(&f.water, "water", false, "water reminders")
	cmd.Flags().IntVar(&f.waterEvery, "water-every", 0, "water reminder interval in minutes")
	cmd.Flags().BoolVar(&f.movement, "movement", false, "movement reminders")
	cmd.Flags().IntVar(&f.movementEvery, "movement-every", 0, "movement reminder interval in minutes")
}

// config keeps only the flags the user set so unset ones fall back to the
// saved defaults.
func (f *sessionFlags) config(cmd *cobra.Command) sessiondto.SessionConfig {
	changed := cmd.Flags().Changed
	c := sessiondto.SessionConfig{}
	if changed("minutes") {
		c.DurationMinutes = &f.minutes
	}
	if changed("intent") {
		c.Intent = &f.intent
	}
	if changed("eye-break") {
		c.EyeBreakEnabled = &f.eyeBreak
	}
	if changed("water") {
		c.WaterReminderEnabled = &f.water
	}
	if changed("water-every") {
		c.WaterReminderInterval = &f.waterEvery
	}
	if changed("movement") {
		c.MovementReminderEnabled = &f.movement
	}
	if changed("movement-every") {
		c.MovementReminderInterval = &f.movementEvery
	}
	return c
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Work session lifecycle"}

	startFlags := &sessionFlags{}
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a work session and turn focus on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessionConfig := startFlags.config(cmd)
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				resp, err := send(app, enginedto.Message{Action: enginedto.ActionStartWorkSession, Config: &sessionConfig})
				if err != nil {
					return err
				}
				s := resp.Session
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %d min, ends %s\n", s.DurationMinutes, s.EndTime.Local().Format(time.Kitchen))
				return nil
			})
		},
	}
	startFlags.register(start)

	end := &cobra.Command{
		Use:   "end",
		Short: "End the current work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				resp, err := send(app, enginedto.Message{Action: enginedto.ActionEndWorkSession})
				if err != nil {
					return err
				}
				if resp.Ended.AlreadyRecorded {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session was already recorded")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended after %d min\n", resp.Ended.ActualDurationMinutes)
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.Status(context.Background())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), s)
			})
		},
	}

	defaults := &cobra.Command{
		Use:   "defaults",
		Short: "Show saved session defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				d, err := app.SessionCLI.Defaults(context.Background())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), d)
			})
		},
	}
	defaultFlags := &sessionFlags{}
	setDefaults := &cobra.Command{
		Use:   "set",
		Short: "Save session defaults; unset flags keep their saved value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessionConfig := defaultFlags.config(cmd)
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				d, err := app.SessionCLI.UpdateDefaults(context.Background(), sessionConfig)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), d)
			})
		},
	}
	defaultFlags.register(setDefaults)
	defaults.AddCommand(setDefaults)

	session.AddCommand(start, end, status, defaults)
	return session
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Completed work sessions of the last 7 days"}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				entries, err := app.HistoryCLI.List(context.Background())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions in the last 7 days")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d/%d min\t%s\t%s\n", e.StartTime.Local().Format("2006-01-02 15:04"), e.ActualDurationMinutes, e.DurationMinutes, e.CompletedReason, e.Intent)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var exportDir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write one markdown note per session plus an index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				dir := exportDir
				if strings.TrimSpace(dir) == "" {
					dir = filepath.Join(app.Config().DataDir, "history")
				}
				out, err := app.HistoryCLI.Export(context.Background(), dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s (index %s)\n", len(out.Paths), out.Dir, out.IndexPath)
				return nil
			})
		},
	}
	export.Flags().StringVar(&exportDir, "dir", "", "target directory (default: <data-dir>/history)")

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Drop sessions older than 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				removed, err := app.HistoryCLI.Prune(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d sessions\n", removed)
				return nil
			})
		},
	}

	history.AddCommand(list, export, prune)
	return history
}

func newRulesCmd(dataDir *string) *cobra.Command {
	rules := &cobra.Command{Use: "rules", Short: "Installed blocking rules"}

	rules.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				installed, err := app.BlockingCLI.Rules(context.Background())
				if err != nil {
					return err
				}
				if len(installed) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no rules installed")
					return nil
				}
				for _, r := range installed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", r.ID, r.Scope, r.URLFilter, r.Redirect)
				}
				return nil
			})
		},
	})
	rules.AddCommand(&cobra.Command{
		Use:   "reconcile",
		Short: "Make installed rules match focus state and block list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				out, err := app.BlockingCLI.Reconcile(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed=%d added=%d\n", out.Removed, out.Added)
				return nil
			})
		},
	})
	return rules
}

func newNotifierCmd(dataDir *string) *cobra.Command {
	notifier := &cobra.Command{Use: "notifier", Short: "Notifier plugins"}
	notifier.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifier manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				notifiers, err := app.NotifyCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(notifiers) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifiers configured")
					return nil
				}
				for _, n := range notifiers {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s kinds=%s\n", n.Name, n.Version, n.Enabled, n.Binary, strings.Join(n.Kinds, ","))
				}
				return nil
			})
		},
	})
	notifier.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate notifier checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				results, err := app.NotifyCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifiers configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	return notifier
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusguard dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, false, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(context.Background(), app)
			})
		},
	}
}
