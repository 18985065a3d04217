package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/nestbox"
	"github.com/phanxgames/nestbox/host"
)

func runWindow(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	ed := nestbox.NewEditor(nestbox.EditorConfig{Logger: logger})
	ed.SetDebugMode(debug)

	return host.Run(ed, host.RunConfig{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		PixelScale:    cfg.Surface.PixelScale,
		Border:        cfg.Surface.Border,
		ShowOverlay:   cfg.Window.Overlay,
		ScreenshotDir: cfg.Window.ScreenshotDir,
		ScrollSeconds: cfg.Window.ScrollSeconds,
		Logger:        logger,
	})
}
