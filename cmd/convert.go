package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterio/internal/hasher"
	"github.com/AnyUserName/rasterio/internal/pathutil"
	"github.com/AnyUserName/rasterio/internal/profile"
	"github.com/AnyUserName/rasterio/internal/raster"
	"github.com/AnyUserName/rasterio/internal/resource"
	"github.com/AnyUserName/rasterio/internal/saver"
)

var (
	convertPreset      string
	convertPresetsFile string
	convertQuality     float64
	convertProgressive bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Decode an image and write it in the format of dst's extension",
	Long: `Decodes <src> (a path, "-" for stdin, or a file/http/https URL) by
content sniffing and encodes it to <dst>, a local path whose extension
selects the encoder (jpg, png, gif, tif, bmp, and webp/avif when cwebp/avifenc
are installed).

--quality and --progressive override the preset. Progressive output needs
jpegtran on PATH; without it the flag is ignored like it is for PNG.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertPreset, "preset", "p", "default", "write-option preset")
	convertCmd.Flags().StringVar(&convertPresetsFile, "presets", "", "YAML file with extra presets")
	convertCmd.Flags().Float64VarP(&convertQuality, "quality", "q", saver.DefaultQuality, "compression quality 0.0-1.0")
	convertCmd.Flags().BoolVar(&convertProgressive, "progressive", false, "force progressive (true) or baseline (false) output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()

	dst, err := pathutil.Sanitize(args[1])
	if err != nil {
		return err
	}
	dstPath := pathutil.LocalPath(dst)

	presets := profile.Builtin()
	if convertPresetsFile != "" {
		if presets, err = profile.Load(convertPresetsFile); err != nil {
			return err
		}
	}
	preset := presets.Get(convertPreset)
	opts := preset.Options()
	if cmd.Flags().Changed("quality") {
		opts = opts.WithQuality(convertQuality)
	}
	if cmd.Flags().Changed("progressive") {
		opts = opts.WithProgressive(convertProgressive)
	}

	src := resource.Parse(args[0])
	log.Debug().Str("src", src.String()).Str("dst", dst.String()).Str("preset", preset.Name).Msg("convert")

	img, err := resource.NewLoader(log).Coerce(src)
	if err != nil {
		return err
	}

	out, err := saver.New(nil, log).Save(img, dstPath, opts)
	if err != nil {
		return fmt.Errorf("save %s: %w", dstPath, err)
	}

	f, err := os.Open(out)
	if err != nil {
		return fmt.Errorf("reopen output: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	hash, err := hasher.ContentHashReader(f, 16)
	if err != nil {
		return fmt.Errorf("hash output: %w", err)
	}

	b := img.Bounds()
	fmt.Printf("  %s\n", out)
	fmt.Printf("    Size:    %dx%d %s\n", b.Dx(), b.Dy(), raster.FormatOf(img))
	fmt.Printf("    Format:  %s\n", saver.ExtensionOf(out))
	fmt.Printf("    Written: %s\n", formatBytes(info.Size()))
	fmt.Printf("    Hash:    %s\n", hash)
	fmt.Printf("    Time:    %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
