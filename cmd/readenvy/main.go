package main

import (
	"context"
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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"readenvy/internal/bootstrap"
	libdto "readenvy/internal/modules/library/dto"
	"readenvy/internal/platform/config"
	"readenvy/internal/platform/logging"
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
		Use:           "readenvy",
		Short:         "Local-first reading tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding the database and readenvy.yaml")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newImportCmd(&dataDir))
	root.AddCommand(newBookCmd(&dataDir))
	root.AddCommand(newProgressCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newStreakCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newResetAllCmd(&dataDir))
	root.AddCommand(newClearCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newWatchCmd(&dataDir))
	root.AddCommand(newReadCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "readenvy")
	}
	return ".readenvy"
}

// withApp opens the application for one command and closes it afterwards.
// Logs go to stderr unless a log file is configured.
func withApp(dataDir string, logOut io.Writer, fn func(*bootstrap.App) error) (err error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	logger, logCloser, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logCloser.Close()) }()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			// The alt screen owns stdout, so only a configured log file receives logs.
			return withApp(*dataDir, nil, bootstrap.RunTUI)
		},
	}
}

func newImportCmd(dataDir *string) *cobra.Command {
	var title, author, priority string
	var tags []string

	cmd := &cobra.Command{
		Use:   "import <file.pdf>",
		Short: "Import a PDF into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.Import(cmd.Context(), args[0], title, author, priority, tags)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "imported %q (%s), %d pages\n", out.Book.Title, out.Book.ID, out.Book.TotalPages)
				if out.Warning != "" {
					_, _ = fmt.Fprintf(w, "warning: %s\n", out.Warning)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "title (defaults to the PDF metadata or file name)")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&priority, "priority", "", "priority: high|medium|low")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	return cmd
}

func newBookCmd(dataDir *string) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Library commands"}

	var filter, search, sortKey string
	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				books, err := app.LibraryCLI.Browse(cmd.Context(), filter, search, sortKey)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(books) == 0 {
					_, _ = fmt.Fprintln(w, "no books")
					return nil
				}
				for _, b := range books {
					_, _ = fmt.Fprintf(w, "%s\t%3d%%\t%-9s\t%s%s\t%s\n",
						b.ID, b.PercentComplete, b.Status, b.Title, byline(b.Author), lastRead(b.LastReadAt))
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&filter, "filter", "all", "all|active|completed|archived")
	list.Flags().StringVar(&search, "search", "", "case-insensitive title/author search")
	list.Flags().StringVar(&sortKey, "sort", "last_read", "last_read|title|progress|date_added")

	show := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show a book and its reading sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := cmd.Context()
				b, err := app.LibraryCLI.GetBook(ctx, args[0])
				if err != nil {
					return err
				}
				sessions, err := app.ProgressCLI.Sessions(ctx, b.ID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				printBook(w, b)
				_, _ = fmt.Fprintf(w, "sessions:     %d\n", len(sessions))
				for _, s := range sessions {
					_, _ = fmt.Fprintf(w, "  %s  p.%d → p.%d  (+%d, %s)\n", s.Date, s.StartPage, s.EndPage, s.PagesRead, duration(s.Duration))
				}
				return nil
			})
		},
	}

	archive := bookAction(dataDir, "archive", "Archive a book", func(ctx context.Context, app *bootstrap.App, id string) (string, error) {
		b, err := app.LibraryCLI.Archive(ctx, id)
		return fmt.Sprintf("archived %q", b.Title), err
	})
	restore := bookAction(dataDir, "restore", "Restore an archived book", func(ctx context.Context, app *bootstrap.App, id string) (string, error) {
		b, err := app.LibraryCLI.Restore(ctx, id)
		return fmt.Sprintf("restored %q as %s", b.Title, b.Status), err
	})
	remove := bookAction(dataDir, "remove", "Delete a book and its sessions", func(ctx context.Context, app *bootstrap.App, id string) (string, error) {
		return "removed " + id, app.LibraryCLI.Remove(ctx, id)
	})
	reset := bookAction(dataDir, "reset", "Reset a book's progress to page 0", func(ctx context.Context, app *bootstrap.App, id string) (string, error) {
		b, err := app.ProgressCLI.Reset(ctx, id)
		return fmt.Sprintf("reset %q", b.Title), err
	})

	book.AddCommand(list, show, archive, restore, remove, reset)
	return book
}

func bookAction(dataDir *string, use, short string, fn func(context.Context, *bootstrap.App, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <book-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				msg, err := fn(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
}

func newProgressCmd(dataDir *string) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Progress commands"}

	var seconds int
	record := &cobra.Command{
		Use:   "record <book-id> <page>",
		Short: "Record the page you reached",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := parsePositive(args[1], "page", true)
			if err != nil {
				return err
			}
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := cmd.Context()
				out, err := app.ProgressCLI.Record(ctx, args[0], page, seconds)
				if err != nil {
					return err
				}
				snap, err := app.GoalsCLI.Refresh(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s: page %d of %d (%d%%, %s)\n",
					out.Book.Title, out.Book.CurrentPage, out.Book.TotalPages, out.Book.PercentComplete, out.Book.Status)
				if out.Session != nil {
					_, _ = fmt.Fprintf(w, "session: +%d pages\n", out.Session.PagesRead)
				} else {
					_, _ = fmt.Fprintln(w, "no new pages, no session recorded")
				}
				_, _ = fmt.Fprintf(w, "today: %d/%d pages, streak %d\n", snap.TodayPagesRead, snap.DailyGoal, snap.Streak.CurrentStreak)
				return nil
			})
		},
	}
	record.Flags().IntVar(&seconds, "duration", 0, "reading time in seconds")

	progress.AddCommand(record)
	return progress
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Reading goal commands"}

	var goalType string
	set := &cobra.Command{
		Use:   "set <target>",
		Short: "Set a goal (daily pages by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePositive(args[0], "target", false)
			if err != nil {
				return err
			}
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				g, err := app.GoalsCLI.SetGoal(cmd.Context(), goalType, target)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s goal set to %d\n", g.Type, g.Target)
				return nil
			})
		},
	}
	set.Flags().StringVar(&goalType, "type", "daily_pages", "daily_pages|weekly_pages|books_per_month")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show goals and today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := cmd.Context()
				goals, err := app.GoalsCLI.Goals(ctx)
				if err != nil {
					return err
				}
				snap, err := app.GoalsCLI.Refresh(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, g := range goals {
					_, _ = fmt.Fprintf(w, "%-16s %d\n", g.Type, g.Target)
				}
				met := ""
				if snap.GoalMet {
					met = " ✓"
				}
				_, _ = fmt.Fprintf(w, "today %s: %d/%d pages (%d%%)%s\n", snap.Today, snap.TodayPagesRead, snap.DailyGoal, snap.DailyProgress, met)
				return nil
			})
		},
	}

	goal.AddCommand(set, show)
	return goal
}

func newStreakCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the reading streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				snap, err := app.GoalsCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				last := snap.Streak.LastActiveDate
				if last == "" {
					last = "never"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current %d days, longest %d days, last goal met %s\n",
					snap.Streak.CurrentStreak, snap.Streak.LongestStreak, last)
				return nil
			})
		},
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var endDay string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library totals and the last 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := cmd.Context()
				sum, err := app.LibraryCLI.Summary(ctx)
				if err != nil {
					return err
				}
				week, err := app.ProgressCLI.Weekly(ctx, endDay)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "books:      %d (%d active, %d completed, %d archived)\n", sum.Total, sum.Active, sum.Completed, sum.Archived)
				_, _ = fmt.Fprintf(w, "pages read: %s\n", humanize.Comma(int64(sum.PagesRead)))
				_, _ = fmt.Fprintf(w, "time:       %s\n", duration(sum.TotalReadingTime))
				_, _ = fmt.Fprintf(w, "\n%s → %s: %s pages in %d sessions across %d books, %s\n",
					week.Start, week.End, humanize.Comma(int64(week.PagesRead)), week.SessionsCount, week.BooksOpened, duration(week.TimeSpent))
				for _, d := range week.Daily {
					_, _ = fmt.Fprintf(w, "  %s %4d %s\n", d.Date, d.Pages, strings.Repeat("▇", min(d.Pages/5, 40)))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&endDay, "end", "", "last day of the window, YYYY-MM-DD (default today)")
	return cmd
}

func newResetAllCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-all",
		Short: "Reset every book to page 0 and delete all sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				if err := app.ProgressCLI.ResetAll(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all progress reset")
				return nil
			})
		},
	}
}

func newClearCmd(dataDir *string) *cobra.Command {
	var confirm string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all books, sessions, goals and streak data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if confirm != "delete" {
				return fmt.Errorf("refusing to clear: pass --confirm delete")
			}
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				if err := app.LibraryCLI.ClearLibrary(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "library cleared")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", `type "delete" to confirm`)
	return cmd
}

func newExportCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Write books and a dashboard as Markdown notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				dir := app.Config.ExportDir
				if len(args) == 1 {
					dir = args[0]
				}
				out, err := app.ExportCLI.Export(cmd.Context(), dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d books and %s to %s\n", len(out.Books), filepath.Base(out.Dashboard), out.Dir)
				return nil
			})
		},
	}
}

func newWatchCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Import PDFs dropped into a folder until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				if err := app.Watcher.ImportExisting(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl+c to stop)\n", args[0])
				if err := app.Watcher.Watch(ctx, args[0]); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}
}

func newReadCmd(dataDir *string) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "read <book-id>",
		Short: "Print the text of one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				view, err := app.ReaderCLI.Page(cmd.Context(), args[0], page)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s%s, page %d of %d\n\n", view.Title, byline(view.Author), view.Page, view.TotalPages)
				_, _ = fmt.Fprintln(w, view.Text)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page to print (default: where you left off)")
	return cmd
}

func printBook(w io.Writer, b libdto.BookOutput) {
	_, _ = fmt.Fprintf(w, "id:           %s\n", b.ID)
	_, _ = fmt.Fprintf(w, "title:        %s\n", b.Title)
	if b.Author != "" {
		_, _ = fmt.Fprintf(w, "author:       %s\n", b.Author)
	}
	_, _ = fmt.Fprintf(w, "file:         %s\n", b.FilePath)
	_, _ = fmt.Fprintf(w, "status:       %s (%s priority)\n", b.Status, b.Priority)
	_, _ = fmt.Fprintf(w, "progress:     page %d of %d (%d%%)\n", b.CurrentPage, b.TotalPages, b.PercentComplete)
	_, _ = fmt.Fprintf(w, "reading time: %s\n", duration(b.TotalReadingTime))
	if len(b.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "tags:         %s\n", strings.Join(b.Tags, ", "))
	}
	_, _ = fmt.Fprintf(w, "added:        %s\n", humanize.Time(b.CreatedAt))
	_, _ = fmt.Fprintf(w, "last read:    %s\n", strings.TrimPrefix(lastRead(b.LastReadAt), "read "))
}

func byline(author string) string {
	if author == "" {
		return ""
	}
	return " by " + author
}

func lastRead(at *time.Time) string {
	if at == nil {
		return "never read"
	}
	return "read " + humanize.Time(*at)
}

func duration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func parsePositive(raw, name string, allowZero bool) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %q", name, raw)
	}
	if n < 0 || (n == 0 && !allowZero) {
		return 0, fmt.Errorf("%s must be positive: %d", name, n)
	}
	return n, nil
}
