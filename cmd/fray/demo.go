package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/fray-ui/fray/internal/config"
	"github.com/fray-ui/fray/internal/quiz"
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/render"
	"github.com/fray-ui/fray/pkg/runtime"
)

func demoCmd() *cobra.Command {
	var (
		cfgPath     string
		guesses     []string
		hydrate     bool
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the quiz demo headlessly",
		Long: `Run the bundled quiz application without a browser: mount it into a
headless document, apply the given guesses, and print the resulting
HTML. With --hydrate the app is rendered once, torn down, and a second
instance adopts the leftover DOM the way a client adopts server output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			registry := prometheus.NewRegistry()
			opts := []runtime.Option{
				runtime.WithLogger(logger),
				runtime.WithDebug(cfg.Debug),
			}
			if cfg.Metrics.Enabled {
				opts = append(opts, runtime.WithMetrics(runtime.NewMetrics(
					runtime.WithNamespace(cfg.Metrics.Namespace),
					runtime.WithRegisterer(registry),
				)))
			}
			rt := runtime.New(opts...)

			roster, err := loadRoster(cfg.Roster)
			if err != nil {
				return err
			}

			doc := dom.NewDocument()
			app := quiz.NewApp(rt, doc, roster, quiz.AppOptions{Target: doc.Body()})

			if hydrate {
				app.Destroy(true)
				doc.ResetCounters()
				app = quiz.NewApp(rt, doc, roster, quiz.AppOptions{Target: doc.Body(), Hydrate: true})
				info("hydration adopted the server tree with %d mutations", doc.Counters().Total())
			}

			for _, guess := range guesses {
				app.SetGuess(guess)
				if app.Submit() {
					success("%q revealed a team (score %d)", guess, app.Score())
				} else {
					warn("%q did not reveal anything", guess)
				}
			}
			if app.Complete() {
				success("quiz complete")
			}

			out, err := render.NewRenderer(render.Config{Pretty: cfg.Pretty}).RenderChildren(doc.Body())
			if err != nil {
				return fmt.Errorf("rendering document: %w", err)
			}
			fmt.Println(out)

			if showMetrics && cfg.Metrics.Enabled {
				if err := printMetrics(registry); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to fray.yaml")
	cmd.Flags().StringSliceVarP(&guesses, "guess", "g", nil, "Guess to submit (repeatable)")
	cmd.Flags().BoolVar(&hydrate, "hydrate", false, "Exercise the server-render-then-hydrate path")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print runtime metrics after the run")

	return cmd
}

func loadRoster(path string) (*quiz.Roster, error) {
	if path == "" {
		return quiz.DefaultRoster()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return quiz.LoadRoster(data)
}

func printMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Println()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				info("%s = %.0f", mf.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				info("%s: count=%d sum=%.6fs", mf.GetName(),
					m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}
	return nil
}
