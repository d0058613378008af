package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/violet-summer/MapGenerator/pkg/mapgen"
	"github.com/violet-summer/MapGenerator/pkg/render"
	"github.com/violet-summer/MapGenerator/pkg/spec"
	"github.com/violet-summer/MapGenerator/pkg/validation"
)

type generateOptions struct {
	specPath string
	jsonOut  string
	svgOut   string
	pngOut   string
	stlOut   string
}

// loadAndValidate loads the spec (or defaults) and runs schema validation.
func loadAndValidate(specPath string) (*spec.MapSpec, *validation.Report, error) {
	if specPath == "" {
		s := spec.Default()
		return s, validation.ValidateSchema(s), nil
	}
	s, err := spec.Load(specPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	return s, validation.ValidateSchema(s), nil
}

func runValidate(specPath string) error {
	_, report, err := loadAndValidate(specPath)
	if err != nil {
		return err
	}
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(opts generateOptions) error {
	s, report, err := loadAndValidate(opts.specPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("spec has validation errors")
	}

	driver := mapgen.New(s)
	driver.Generate()
	model := driver.Output()
	world := s.WorldRect()

	if opts.svgOut != "" {
		f, err := os.Create(opts.svgOut)
		if err != nil {
			return fmt.Errorf("creating SVG file: %w", err)
		}
		render.WriteSVG(f, model, world, render.DefaultStyle())
		if err := f.Close(); err != nil {
			return err
		}
	}
	if opts.pngOut != "" {
		f, err := os.Create(opts.pngOut)
		if err != nil {
			return fmt.Errorf("creating PNG file: %w", err)
		}
		if err := render.WritePNG(f, model, world, 1.0, render.DefaultStyle()); err != nil {
			f.Close()
			return fmt.Errorf("rendering PNG: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if opts.stlOut != "" {
		f, err := os.Create(opts.stlOut)
		if err != nil {
			return fmt.Errorf("creating STL file: %w", err)
		}
		if err := render.WriteSTL(f, model, world); err != nil {
			f.Close()
			return fmt.Errorf("writing STL: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	out := os.Stdout
	if opts.jsonOut != "" {
		f, err := os.Create(opts.jsonOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"spec":       s,
		"validation": report,
		"map":        model,
	})
}
