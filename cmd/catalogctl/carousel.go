package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/spf13/cobra"
)

type carouselOptions struct {
	view     string
	limit    int
	width    int
	delay    time.Duration
	duration time.Duration
	noLoop   bool
	verbose  bool
}

func newCarouselCmd(root *rootOptions) *cobra.Command {
	opts := &carouselOptions{}
	cmd := &cobra.Command{
		Use:   "carousel",
		Short: "Run a carousel over a view and print every slide change",
		Long: `carousel mounts a slide deck for the chosen view, binds prev/next
controls once they exist and autoplays until --duration elapses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCarousel(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", present.ViewTrending, "new-launches or trending")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", views.DefaultTrendingSize, "slides in the trending view")
	cmd.Flags().IntVar(&opts.width, "width", 1280, "viewport width in pixels")
	cmd.Flags().DurationVar(&opts.delay, "delay", carousel.DefaultAutoplayDelayMs*time.Millisecond, "autoplay delay, 0 disables autoplay")
	cmd.Flags().DurationVar(&opts.duration, "duration", 10*time.Second, "how long to run")
	cmd.Flags().BoolVar(&opts.noLoop, "no-loop", false, "stop at the last slide instead of wrapping")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log controller activity to stderr")
	return cmd
}

func runCarousel(cmd *cobra.Command, root *rootOptions, opts *carouselOptions) error {
	catalog, err := root.load()
	if err != nil {
		return err
	}

	cfg := carousel.DefaultConfig()
	cfg.AutoplayDelayMs = int(opts.delay / time.Millisecond)
	cfg.Loop = !opts.noLoop

	f := present.NewFormatter(root.locale, root.currency)
	payload, err := present.BuildCarousel(opts.view, catalog, cfg, opts.limit, f)
	if err != nil {
		return err
	}
	if len(payload.Slides) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No slides")
		return err
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	perView := cfg.SlidesFor(opts.width)
	deck := carousel.NewDeck(len(payload.Slides), perView, cfg.Loop)
	deck.OnSlideChange(func(active int) {
		s := payload.Slides[active]
		fmt.Fprintf(out, "slide %d/%d  %s  %s  %s\n", active+1, len(payload.Slides), s.Title, s.Location, s.PriceLabel)
	})

	ctrl := carousel.NewController(cfg, carousel.WithLogger(logger))
	ctrl.BeforeInit(deck)
	ctrl.Mount(deck)

	// Controls arrive after the engine mounted.
	ctrl.Prev().Mount(carousel.NewButton("prev"))
	ctrl.Next().Mount(carousel.NewButton("next"))
	ctrl.Rebind()

	first := payload.Slides[0]
	fmt.Fprintf(out, "carousel %s: %d slides, %d per view, autoplay %s\n", payload.View, len(payload.Slides), perView, opts.delay)
	fmt.Fprintf(out, "slide 1/%d  %s  %s  %s\n", len(payload.Slides), first.Title, first.Location, first.PriceLabel)

	select {
	case <-time.After(opts.duration):
	case <-cmd.Context().Done():
	}

	ctrl.Dispose()
	deck.Destroy()
	fmt.Fprintf(out, "stopped (state %s)\n", ctrl.State())
	return nil
}

