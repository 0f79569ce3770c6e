package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterio/internal/encoder"
	"github.com/AnyUserName/rasterio/internal/profile"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available encoders, their write-parameter axes and presets",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(_ *cobra.Command, _ []string) error {
	reg := encoder.NewRegistry()
	log.Debug().Msg(reg.String())

	fmt.Println()
	fmt.Printf("  %-6s  %-16s  %-8s  %s\n", "FORMAT", "EXTENSIONS", "QUALITY", "PROGRESSIVE")
	for _, enc := range reg.Encoders() {
		caps := enc.Capabilities()
		fmt.Printf("  %-6s  %-16s  %-8s  %s\n",
			enc.Format(),
			strings.Join(enc.Extensions(), ","),
			yesNo(caps.Compression),
			yesNo(caps.Progressive),
		)
	}
	fmt.Println()

	fmt.Println("  Presets:")
	presets := profile.Builtin()
	for _, name := range presets.Names() {
		p := presets[name]
		prog := "encoder default"
		if p.Progressive != nil {
			prog = fmt.Sprintf("%t", *p.Progressive)
		}
		fmt.Printf("    %-10s quality=%.2f progressive=%s\n", name, p.Quality, prog)
	}
	fmt.Println()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
