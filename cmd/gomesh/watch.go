package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/openscad"
	"github.com/philipparndt/gomesh/pkg/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	opts := &quoteOptions{}
	var withQuote bool

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Recalculate volume or quote whenever a file changes",
		Long: `Watch a mesh or OpenSCAD file and print its volume (or a quote with
--quote) after every save. For OpenSCAD sources all use/include
dependencies are watched too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if !cmd.Flags().Changed("infill") {
				opts.infill = a.cfg.Pricing.DefaultInfill
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)
			log := logging.WithFields(ctx, "file", file)

			files := []string{file}
			if openscad.IsSource(file) {
				abs, err := filepath.Abs(file)
				if err != nil {
					return err
				}
				deps, err := a.renderer(abs).ResolveDependencies(abs)
				if err != nil {
					return err
				}
				files = deps
			}

			fw, err := watcher.NewFileWatcher(a.cfg.Watch.Debounce, log)
			if err != nil {
				return err
			}
			defer fw.Close()

			w := cmd.OutOrStdout()
			run := serialize(func(changed string) {
				if changed != "" {
					log.Info("change detected", "changed", changed)
				}
				if withQuote {
					q, err := a.quote(cmd, file, opts)
					if err != nil {
						log.Error("quote failed", "error", err)
						return
					}
					printQuote(w, file, q)
				} else {
					path, cleanup, err := a.meshSource(ctx, file)
					if err != nil {
						log.Error("render failed", "error", err)
						return
					}
					defer cleanup()
					result, err := mesh.ParseFile(path)
					if err != nil {
						log.Error("parse failed", "error", err)
						return
					}
					printVolume(w, file, result)
				}
				fmt.Fprintln(w)
			})

			if err := fw.Watch(files, run); err != nil {
				return err
			}
			log.Info("watching", "files", len(files))

			run("")
			fw.Run(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&withQuote, "quote", "q", false, "Print a price quote instead of the volume")
	cmd.Flags().StringVarP(&opts.material, "material", "m", "PLA", "Material name for --quote")
	cmd.Flags().Float64VarP(&opts.infill, "infill", "i", 20, "Infill percentage for --quote")
	return cmd
}

// serialize wraps fn so that calls from concurrent watcher timers run one
// at a time
func serialize(fn func(string)) func(string) {
	var mu sync.Mutex
	return func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		fn(changed)
	}
}
