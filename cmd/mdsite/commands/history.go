package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/eventstore"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Database string        `help:"History database (default: history.database from the site file)"`
	Build    string        `help:"Show the events of one build"`
	Since    time.Duration `help:"Show builds started within this window" default:"168h"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	db := h.Database
	if db == "" {
		file, err := config.Load(root.Config, false)
		if err != nil {
			return errors.ConfigError("load site configuration").
				WithCause(err).WithPath(root.Config).Build()
		}
		db = file.History.Database
	}
	if db == "" {
		return errors.ConfigError("no history database configured; set history.database or --database").Build()
	}

	store, err := eventstore.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.Build != "" {
		return printEvents(ctx, os.Stdout, store, h.Build)
	}
	return printBuilds(ctx, os.Stdout, store, time.Now().Add(-h.Since))
}

func printBuilds(ctx context.Context, out io.Writer, store eventstore.Store, since time.Time) error {
	builds, err := eventstore.Builds(ctx, store, since)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		_, _ = fmt.Fprintln(out, "no builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tSTATUS\tPAGES\tINDEXES\tSKIPPED\tDURATION")
	for _, b := range builds {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			b.BuildID, b.StartedAt.Format(time.RFC3339), b.Status,
			b.Pages, b.Indexes, b.Skipped, b.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

func printEvents(ctx context.Context, out io.Writer, store eventstore.Store, buildID string) error {
	events, err := store.GetByBuildID(ctx, buildID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return errors.NotFoundError("no events recorded for build").WithContext("build_id", buildID).Build()
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tEVENT\tDETAIL")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp().Format(time.RFC3339), e.Type(), detail(e))
	}
	return tw.Flush()
}

// detail renders the interesting part of an event payload on one line.
func detail(e eventstore.Event) string {
	switch e.Type() {
	case eventstore.TypePageRendered:
		var p eventstore.PageRenderedPayload
		if eventstore.DecodePayload(e, &p) == nil {
			return fmt.Sprintf("%s -> %s (%s)", p.URL, p.Output, p.Template)
		}
	case eventstore.TypePageSkipped:
		var p eventstore.PageSkippedPayload
		if eventstore.DecodePayload(e, &p) == nil {
			return fmt.Sprintf("%s: %s", p.Path, p.Error)
		}
	case eventstore.TypeBuildFailed:
		var p eventstore.BuildFailedPayload
		if eventstore.DecodePayload(e, &p) == nil {
			return p.Error
		}
	}
	return string(e.Payload())
}
