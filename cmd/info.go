package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterio/internal/hasher"
	"github.com/AnyUserName/rasterio/internal/raster"
	"github.com/AnyUserName/rasterio/internal/resource"
)

var infoCmd = &cobra.Command{
	Use:   "info <src>",
	Short: "Decode an image and print its dimensions, pixel format and pixel hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	src := resource.Parse(args[0])
	img, err := resource.NewLoader(log).Coerce(src)
	if err != nil {
		return err
	}

	b := img.Bounds()
	fmt.Println()
	fmt.Printf("  Source:       %s\n", src)
	fmt.Printf("  Dimensions:   %dx%d\n", b.Dx(), b.Dy())
	fmt.Printf("  Pixel format: %s\n", raster.FormatOf(img))
	fmt.Printf("  Alpha:        %t\n", raster.HasAlpha(img))
	fmt.Printf("  Pixel hash:   %s\n", hasher.PixelHash(img, 16))
	fmt.Println()
	return nil
}
