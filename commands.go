package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/labelgen/batch"
	"github.com/openclaw/labelgen/config"
	"github.com/openclaw/labelgen/label"
	"github.com/openclaw/labelgen/sheet"
	"github.com/openclaw/labelgen/symbol"
)

type generateOptions struct {
	symbology string
	name      string
	price     string
	logo      bool
	out       string
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate <data>",
		Short: "Render one label to a PNG file",
		Example: `  labelgen generate "https://example.com"
  labelgen generate 5901234123457 -t ean13 --name "Blue Mug" --price 4.50 --logo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			path, err := runGenerate(a, args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.symbology, "type", "t", symbol.QRCode, "Symbology (see 'labelgen symbologies')")
	cmd.Flags().StringVar(&opts.name, "name", "", "Product name printed under the code")
	cmd.Flags().StringVar(&opts.price, "price", "", "Price printed under the name")
	cmd.Flags().BoolVar(&opts.logo, "logo", false, "Include the company logo from settings")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output PNG path (default <name>_<data>.png)")
	return cmd
}

// runGenerate saves a single label and returns its path. Without a name,
// price or logo the bare symbol is saved.
func runGenerate(a *app, data string, opts generateOptions) (string, error) {
	p, err := a.processor()
	if err != nil {
		return "", err
	}
	st, _ := a.settings.Load()

	bo := batch.Options{Symbology: opts.symbology, Currency: st.Currency, Plain: true}
	if opts.logo {
		bo.Logo = label.LoadLogo(st.LogoPath)
		if bo.Logo == nil {
			a.log.Warn("no usable company logo configured", "logo_path", st.LogoPath)
		}
	}

	item := batch.Item{Data: data, ProductName: opts.name, Price: opts.price}
	img, err := p.Label(item, bo)
	if err != nil {
		return "", err
	}

	path := opts.out
	if path == "" {
		name := opts.name
		if name == "" {
			name = opts.symbology
		}
		path = batch.FileName(batch.Item{Data: data, ProductName: name})
	}
	if err := sheet.SavePNG(img, path); err != nil {
		return "", err
	}
	a.log.Debug("label saved", "path", path, "symbology", opts.symbology)
	return path, nil
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <value>",
		Short: "Print the value with its trailing number incremented",
		Example: `  labelgen next ITEM-001   # ITEM-002
  labelgen next A999       # A1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := batch.Increment(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func newSymbologiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbologies",
		Short: "List the supported code types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range symbol.ListSymbologies() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

type batchOptions struct {
	symbology string
	start     string
	count     int
	name      string
	price     string
	itemsFile string
	format    string
	out       string
}

func newBatchCmd(configPath *string) *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render many labels as PNG files or a PDF sheet",
		Long: `Build a batch from an items file, a numbered series, or both, and render it.

The items file is a YAML list of {data, product_name, price}. A series starts
at --start and increments the trailing number of the data for --count items,
naming them "<name> 1", "<name> 2", ... Batch labels always carry the company
logo when one is configured.`,
		Example: `  labelgen batch --start SKU-001 --count 30 --name "Blue Mug" --price 4.50 --format pdf
  labelgen batch --items items.yaml -t code128 --out labels/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			msg, err := runBatch(a, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.symbology, "type", "t", symbol.QRCode, "Symbology (see 'labelgen symbologies')")
	cmd.Flags().StringVar(&opts.start, "start", "", "First data value of a series")
	cmd.Flags().IntVar(&opts.count, "count", 1, "Number of items in the series")
	cmd.Flags().StringVar(&opts.name, "name", "", "Product name prefix for series items")
	cmd.Flags().StringVar(&opts.price, "price", "", "Price for series items")
	cmd.Flags().StringVar(&opts.itemsFile, "items", "", "YAML file with items to add before the series")
	cmd.Flags().StringVar(&opts.format, "format", "png", "Output format: png or pdf")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (png) or file (pdf)")
	return cmd
}

func runBatch(a *app, opts batchOptions) (string, error) {
	if !symbol.Supported(opts.symbology) {
		return "", fmt.Errorf("%w: %q", symbol.ErrUnsupportedSymbology, opts.symbology)
	}
	format, err := batch.ParseFormat(opts.format)
	if err != nil {
		return "", err
	}

	var list batch.List
	if opts.itemsFile != "" {
		items, err := readItems(opts.itemsFile)
		if err != nil {
			return "", err
		}
		list.Add(items...)
	}
	if opts.start != "" {
		if opts.count < 1 {
			return "", fmt.Errorf("--count must be at least 1")
		}
		items, err := batch.Series(opts.start, opts.name, opts.price, opts.count)
		switch {
		case errors.Is(err, batch.ErrCannotIncrement) && len(items) > 0:
			// Keep what was built, like adding rows one at a time would.
			a.log.Warn("series stopped early", "wanted", opts.count, "built", len(items), "error", err)
		case err != nil:
			return "", err
		}
		list.Add(items...)
	}
	if list.Len() == 0 {
		return "", fmt.Errorf("%w: use --start or --items", batch.ErrEmptyBatch)
	}

	p, err := a.processor()
	if err != nil {
		return "", err
	}
	st, _ := a.settings.Load()
	bo := batch.Options{
		Symbology: opts.symbology,
		Currency:  st.Currency,
		Logo:      label.LoadLogo(st.LogoPath),
	}

	switch format {
	case batch.FormatPDF:
		out := opts.out
		if out == "" {
			out = "labels.pdf"
		}
		pages, err := p.WritePDF(list.Items(), out, bo)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %d labels on %d pages to %s", list.Len(), pages, out), nil
	default:
		out := opts.out
		if out == "" {
			out = "labels"
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return "", fmt.Errorf("%w: creating %s: %v", sheet.ErrIO, out, err)
		}
		paths, err := p.WritePNGs(list.Items(), out, bo)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %d labels to %s", len(paths), out), nil
	}
}

func readItems(path string) ([]batch.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	var items []batch.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing items %s: %w", path, err)
	}
	return items, nil
}

func newSettingsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the currency symbol and company logo",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			st, defaulted := a.settings.Load()
			printSettings(cmd, st, defaulted)
			return nil
		},
	})

	var currency string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the currency symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			st, _ := a.settings.Load()
			st.Currency = currency
			if err := a.settings.Save(st); err != nil {
				return err
			}
			st, _ = a.settings.Load()
			printSettings(cmd, st, false)
			return nil
		},
	}
	set.Flags().StringVar(&currency, "currency", "", "Currency symbol, at most 5 characters")
	_ = set.MarkFlagRequired("currency")
	cmd.AddCommand(set)

	var remove bool
	logo := &cobra.Command{
		Use:   "logo [path]",
		Short: "Install a company logo, or remove it with --clear",
		Args: func(cmd *cobra.Command, args []string) error {
			if remove {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			st, err := updateLogo(a.settings, remove, args)
			if err != nil {
				return err
			}
			printSettings(cmd, st, false)
			return nil
		},
	}
	logo.Flags().BoolVar(&remove, "clear", false, "Remove the current logo")
	cmd.AddCommand(logo)

	return cmd
}

func updateLogo(store *config.SettingsStore, remove bool, args []string) (config.Settings, error) {
	st, _ := store.Load()
	if remove {
		st, err := store.RemoveLogo(st)
		if err != nil {
			return st, err
		}
		return st, store.Save(st)
	}

	path, err := store.InstallLogo(args[0])
	if err != nil {
		return st, err
	}
	if st.LogoPath != "" && st.LogoPath != path {
		st, _ = store.RemoveLogo(st)
	}
	st.LogoPath = path
	return st, store.Save(st)
}

func printSettings(cmd *cobra.Command, st config.Settings, defaulted bool) {
	w := cmd.OutOrStdout()
	logo := st.LogoPath
	if logo == "" {
		logo = "(none)"
	}
	fmt.Fprintf(w, "currency: %s\n", st.Currency)
	fmt.Fprintf(w, "logo:     %s\n", logo)
	if defaulted {
		fmt.Fprintln(w, "(defaults, nothing saved yet)")
	}
}
