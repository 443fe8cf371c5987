package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brainrot-academy/academy-client/internal/settings"
	"github.com/brainrot-academy/academy-client/pkg/api"
	"github.com/brainrot-academy/academy-client/pkg/format"
	"github.com/brainrot-academy/academy-client/pkg/notify"
	"github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("usage")

// Streams are the command's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

type runFunc func(ctx context.Context, a *App, s Streams, args []string) error

// commandNames keeps Usage output in a stable order.
var commandNames = []string{"progress", "challenge", "submit", "mood-analytics", "mood-record", "mood-tips", "theme"}

var usages = map[string]string{
	"progress":       "progress",
	"challenge":      "challenge <level>",
	"submit":         "submit <level> <file|->",
	"mood-analytics": "mood-analytics <student-id> [--days n] [--summary]",
	"mood-record":    "mood-record <student-id> <mood 1-5> [--notes text]",
	"mood-tips":      "mood-tips <student-id>",
	"theme":          "theme [dark|light|toggle]",
}

var commands = map[string]runFunc{
	"progress":       runProgress,
	"challenge":      runChallenge,
	"submit":         runSubmit,
	"mood-analytics": runMoodAnalytics,
	"mood-record":    runMoodRecord,
	"mood-tips":      runMoodTips,
	"theme":          runTheme,
}

// Usage lists the available commands.
func Usage() string {
	var b strings.Builder
	b.WriteString("usage: academyctl <command> [args]\n\ncommands:\n")
	for _, n := range commandNames {
		fmt.Fprintf(&b, "  %s\n", usages[n])
	}
	return b.String()
}

// Dispatch runs the command named by args[0].
func Dispatch(ctx context.Context, a *App, s Streams, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", ErrUsage, Usage())
	}
	run, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, args[0], Usage())
	}
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	return run(ctx, a, s, args[1:])
}

func usageErr(cmd string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usages[cmd])
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

func runProgress(ctx context.Context, a *App, s Streams, args []string) error {
	if len(args) != 0 {
		return usageErr("progress")
	}
	payload, err := a.api.StudentProgress(ctx)
	if err != nil {
		return err
	}
	return printJSON(s.Out, payload)
}

func runChallenge(ctx context.Context, a *App, s Streams, args []string) error {
	if len(args) != 1 {
		return usageErr("challenge")
	}
	payload, err := a.api.Challenge(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(s.Out, payload)
}

func runSubmit(ctx context.Context, a *App, s Streams, args []string) error {
	if len(args) != 2 {
		return usageErr("submit")
	}
	level, src := args[0], args[1]

	var (
		code []byte
		err  error
	)
	if src == "-" {
		code, err = io.ReadAll(s.In)
	} else {
		code, err = os.ReadFile(src)
	}
	if err != nil {
		return fmt.Errorf("read solution: %w", err)
	}
	a.log.InfoObj("submitting solution", "submission", map[string]any{
		"level": level,
		"size":  format.FileSize(int64(len(code))),
	})

	payload, err := a.api.SubmitChallenge(ctx, level, string(code))
	if err != nil {
		return err
	}

	var result api.ChallengeResult
	if err := api.Decode(payload, &result); err == nil && result.Message != "" {
		sev := notify.SeverityWarning
		if result.Passed {
			sev = notify.SeveritySuccess
		}
		_, _ = a.emitter.Notify(ctx, result.Message, sev)
	}
	return printJSON(s.Out, payload)
}

func runMoodAnalytics(ctx context.Context, a *App, s Streams, args []string) error {
	fs := pflag.NewFlagSet("mood-analytics", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	days := fs.Int("days", api.DefaultAnalyticsDays, "window in days")
	summary := fs.Bool("summary", false, "print a readable summary instead of JSON")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageErr("mood-analytics")
	}

	payload, err := a.api.MoodAnalytics(ctx, fs.Arg(0), *days)
	if err != nil {
		return err
	}
	if !*summary {
		return printJSON(s.Out, payload)
	}

	var report api.MoodAnalyticsReport
	if err := api.Decode(payload, &report); err != nil {
		return err
	}
	return writeMoodSummary(s.Out, report)
}

func writeMoodSummary(w io.Writer, report api.MoodAnalyticsReport) error {
	if report.TotalRecords == 0 {
		msg := report.Message
		if msg == "" {
			msg = "no mood data for this period"
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "average %.2f, trend %s, %d records\n", report.AverageMood, report.Trend, report.TotalRecords)
	for _, r := range report.Records {
		when, err := format.DateString(r.Date)
		if err != nil {
			when = r.Date
		}
		line := fmt.Sprintf("  %s  %s %d", when, r.MoodEmoji, r.Mood)
		if r.Notes != "" {
			line += "  " + r.Notes
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func runMoodRecord(ctx context.Context, a *App, s Streams, args []string) error {
	fs := pflag.NewFlagSet("mood-record", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	notes := fs.String("notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return usageErr("mood-record")
	}
	mood, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("%w: mood must be a number: %s", ErrUsage, fs.Arg(1))
	}

	payload, err := a.api.RecordMood(ctx, fs.Arg(0), mood, *notes)
	if err != nil {
		return err
	}

	var result api.MoodRecordResult
	if err := api.Decode(payload, &result); err == nil && result.Success && result.Message != "" {
		_, _ = a.emitter.Notify(ctx, result.Message, notify.SeveritySuccess)
	}
	return printJSON(s.Out, payload)
}

func runMoodTips(ctx context.Context, a *App, s Streams, args []string) error {
	if len(args) != 1 {
		return usageErr("mood-tips")
	}
	payload, err := a.api.MoodRecommendations(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(s.Out, payload)
}

func runTheme(_ context.Context, a *App, s Streams, args []string) error {
	if len(args) > 1 {
		return usageErr("theme")
	}
	var apply func(*settings.Settings) error
	if len(args) == 1 {
		switch args[0] {
		case "dark":
			apply = func(st *settings.Settings) error { return st.SetDarkMode(true) }
		case "light":
			apply = func(st *settings.Settings) error { return st.SetDarkMode(false) }
		case "toggle":
			apply = func(st *settings.Settings) error {
				_, err := st.ToggleDarkMode()
				return err
			}
		default:
			return usageErr("theme")
		}
	}

	var theme string
	err := a.withSettings(func(st *settings.Settings) error {
		if apply != nil {
			if err := apply(st); err != nil {
				return fmt.Errorf("update theme: %w", err)
			}
		}
		var err error
		if theme, err = st.Theme(); err != nil {
			return fmt.Errorf("read theme: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.Out, theme)
	return err
}
