package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterio/internal/logger"
)

var (
	version = "0.1.0"
	verbose bool
	log     = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "rasterio",
	Short: "Load, inspect and re-encode raster images",
	Long: `rasterio decodes images from paths, stdin or URLs and writes them
back out in the format named by the destination's extension.

Quality and progressive mode are applied only when the target encoder
supports them; lossless formats silently ignore both.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(os.Stderr, verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"rasterio %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
