package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/skilltree"
	httpAdapter "github.com/aretw0/skilltree/pkg/adapters/http"
	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/aretw0/skilltree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP server",
	Long: `Loads the skill directory and exposes the admin API over HTTP: skill listing,
validation reports, reload, sandbox casts, events and Prometheus metrics.
Passive reapplication and cooldown sweeps run in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		world := memory.NewWorld()
		eng, err := newEngine(cmd, dir,
			skilltree.WithWorld(world),
			skilltree.WithMetrics(observability.NewMetrics(reg)),
		)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		server := httpAdapter.NewServer(eng,
			httpAdapter.WithCasters(sandboxCasters(world)),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		)
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting skilltree server on %s\n", srv.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d skill(s) from: %s\n", len(eng.Skills()), dir)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			return eng.Maintain(ctx)
		})

		if watch {
			g.Go(func() error {
				return eng.Watch(ctx, server.NotifyReload)
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "skilltree server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("watch", false, "Reload skills when the directory changes")
}

// sandboxCasters resolves casters from the world and spawns a human caster
// with full resources on first use.
func sandboxCasters(world *memory.World) httpAdapter.CasterLookup {
	return func(id string) (domain.Caster, bool) {
		if id == "" {
			return nil, false
		}
		if e, ok := world.Entity(id); ok {
			c, ok := e.(domain.Caster)
			return c, ok
		}
		mob := entity.New(id, entity.Human(), entity.WithMana(100, 100), entity.WithHealth(20, 20))
		world.Add(mob)
		return mob, true
	}
}
