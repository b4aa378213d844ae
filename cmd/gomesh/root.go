package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/config"
	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/internal/pricing"
	"github.com/philipparndt/gomesh/pkg/openscad"
	"github.com/philipparndt/gomesh/pkg/upload"
	"github.com/philipparndt/gomesh/version"
)

// app is the state shared by all subcommands once configuration is loaded
type app struct {
	envFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gomesh",
		Short: "Mesh volume calculator and print quote tool",
		Long: `gomesh reads STL (ASCII and binary) and OBJ meshes and reports their
enclosed volume. It can pre-check uploads against size and type limits,
price a print for a material and infill, and re-run on every save.`,
		Version:           version.GetFullVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before configuration")

	root.AddCommand(
		newVolumeCmd(a),
		newInfoCmd(a),
		newValidateCmd(a),
		newQuoteCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newMaterialsCmd(a),
		newCompletionCmd(root),
	)

	return root
}

// setup loads the env file and configuration, then installs the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	cmd.SetContext(logging.NewContext(cmd.Context()))

	logging.FromContext(cmd.Context()).Debug("configuration loaded", "command", cmd.Name())
	return nil
}

func (a *app) validator() *upload.Validator {
	return upload.NewValidator(a.cfg.Upload.MaxFileSizeMB, a.cfg.Upload.AllowedExtensions...)
}

func (a *app) catalog() (pricing.Catalog, error) {
	return pricing.LoadCatalog(a.cfg.Pricing.MaterialsFile)
}

func (a *app) pricingSettings() pricing.Settings {
	return pricing.Settings{
		MinimumPrice:           a.cfg.Pricing.MinimumPrice,
		SetupFee:               a.cfg.Pricing.SetupFee,
		InfillSurchargeEnabled: a.cfg.Pricing.InfillSurchargeEnabled,
		InfillSurchargeRate:    a.cfg.Pricing.InfillSurchargeRate,
	}
}

func (a *app) renderer(path string) *openscad.Renderer {
	return openscad.NewRenderer(filepath.Dir(path), a.cfg.OpenSCAD.Binary)
}

// meshSource returns a path the mesh parser can read. OpenSCAD sources are
// rendered to a temporary STL first; the returned cleanup removes it.
func (a *app) meshSource(ctx context.Context, path string) (string, func(), error) {
	if !openscad.IsSource(path) {
		return path, func() {}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	logging.WithFields(ctx, "file", path).Info("rendering OpenSCAD source")
	stl, err := a.renderer(abs).RenderTemp(ctx, abs)
	if err != nil {
		return "", nil, err
	}
	return stl, func() { os.Remove(stl) }, nil
}
