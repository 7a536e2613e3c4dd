package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/catalogo/catalog"
	"github.com/ByLCY/catalogo/config"
)

// catalogFlags are the per-run overrides shared by build and plan.
type catalogFlags struct {
	table              string
	header             string
	continuationHeader string
	imagesDir          string
	imageTemplate      string
	badge              string
	fontRegular        string
	fontBold           string
	title              string
	author             string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.table, "table", "", "Product table (.xlsx, .xlsm, .csv, .parquet)")
	fs.StringVar(&f.header, "header", "", "First page header image (required)")
	fs.StringVar(&f.continuationHeader, "continuation-header", "", "Header image for the following pages (required)")
	fs.StringVar(&f.imagesDir, "images", "", "Directory holding the product images")
	fs.StringVar(&f.imageTemplate, "image-template", "", "Product image file name, ${column} refers to a table column")
	fs.StringVar(&f.badge, "badge", "", "Background image behind the product code")
	fs.StringVar(&f.fontRegular, "font-regular", "", "Regular TTF font")
	fs.StringVar(&f.fontBold, "font-bold", "", "Bold TTF font")
	fs.StringVar(&f.title, "title", "", "PDF document title")
	fs.StringVar(&f.author, "author", "", "PDF document author")
}

// apply copies the flags the user actually set over cfg.
func (f *catalogFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := func(name, value string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("table", f.table, &cfg.Table)
	set("header", f.header, &cfg.Header)
	set("continuation-header", f.continuationHeader, &cfg.ContinuationHeader)
	set("images", f.imagesDir, &cfg.ImagesDir)
	set("image-template", f.imageTemplate, &cfg.ImageTemplate)
	set("badge", f.badge, &cfg.Badge)
	set("font-regular", f.fontRegular, &cfg.Fonts.Regular)
	set("font-bold", f.fontBold, &cfg.Fonts.Bold)
	set("title", f.title, &cfg.Meta.Title)
	set("author", f.author, &cfg.Meta.Author)
}

// request resolves config file, environment and flags into a catalog request.
func (f *catalogFlags) request(cmd *cobra.Command, root *rootOptions, mutate func(*config.Config)) (catalog.Request, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return catalog.Request{}, err
	}
	f.apply(cmd, &cfg)
	if mutate != nil {
		mutate(&cfg)
	}
	return catalog.RequestFromConfig(cfg)
}
