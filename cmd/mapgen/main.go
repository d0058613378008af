package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/violet-summer/MapGenerator/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mapgen",
		Short: "Procedural city map generator driven by tensor-field streamlines",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [spec-file]",
		Short: "Run the full pipeline and emit the generated map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.specPath = args[0]
			}
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.jsonOut, "out", "o", "", "write the map JSON to a file instead of stdout")
	cmd.Flags().StringVar(&opts.svgOut, "svg", "", "also write an SVG rendering")
	cmd.Flags().StringVar(&opts.pngOut, "png", "", "also write a PNG rendering")
	cmd.Flags().StringVar(&opts.stlOut, "stl", "", "also write an STL mesh")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [spec-file]",
		Short: "Validate a map spec without generating",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [spec-file]",
		Short: "Start the local dev server over a spec file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
