package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/mdsite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	opts, file, err := loadSite(root, b.SiteFlags)
	if err != nil {
		return err
	}

	builder := site.NewBuilder(afero.NewOsFs(), opts).WithLogger(g.Logger)
	if store := openHistory(file, g.Logger); store != nil {
		defer func() { _ = store.Close() }()
		builder.WithHistory(store)
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d pages and %d index pages into %s", report.Pages, report.Indexes, opts.Paths.OutputDir)
	if report.Skipped > 0 {
		fmt.Printf(" (%d skipped)", report.Skipped)
	}
	fmt.Println()
	return nil
}
