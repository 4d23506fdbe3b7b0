package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorpage/colorpage/pkg/convert"
	"github.com/colorpage/colorpage/pkg/export"
	"github.com/colorpage/colorpage/pkg/lineart"
	"github.com/colorpage/colorpage/pkg/server"
)

// optionFlags registers the shared pipeline tuning flags on fs and returns a
// function that assembles them into clamped Options after parsing.
func optionFlags(fs *flag.FlagSet) func() lineart.Options {
	defaults := lineart.Defaults()
	threshold := fs.Int("threshold", defaults.Threshold, "edge sensitivity (0-255)")
	blur := fs.Int("blur", defaults.BlurPasses, "smoothing passes before edge detection (0-3)")
	thickness := fs.Int("thickness", defaults.Thickness, "line thickening passes (0-2)")
	maxDim := fs.Int("max-dim", defaults.MaxDim, "longest output side in pixels")
	return func() lineart.Options {
		return lineart.Options{
			Threshold:  *threshold,
			BlurPasses: *blur,
			Thickness:  *thickness,
			MaxDim:     *maxDim,
		}.Clamp()
	}
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input photo path")
	out := fs.String("out", "", "output PNG path")
	pdf := fs.String("pdf", "", "also write a letter-size PDF of the line art (optional)")
	remote := fs.String("remote", os.Getenv("COLORPAGE_REMOTE_URL"), "remote conversion service URL (optional)")
	opts := optionFlags(fs)
	fs.Parse(args)

	if err := convertOnce(*in, *out, *pdf, *remote, opts()); err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
}

// convertOnce converts a single photo file into a line-art PNG file, and
// optionally writes the same page as a letter-size PDF.
func convertOnce(in, out, pdfOut, remoteURL string, opts lineart.Options) error {
	if in == "" || out == "" {
		return fmt.Errorf("both -in and -out are required")
	}
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	res, notice, err := convert.NewDispatcher(remoteURL).Convert(context.Background(), src, opts)
	if err != nil {
		return err
	}
	if notice != "" {
		fmt.Fprintln(os.Stderr, notice)
	}
	if err := SavePNG(out, res.PNG); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", out, res.Width, res.Height)
	if pdfOut != "" {
		if err := (export.Exporter{}).WriteFile(pdfOut, res.PNG); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", pdfOut)
	}
	return nil
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "finished page image path")
	out := fs.String("out", "", "output PDF path")
	fs.Parse(args)

	if err := exportOnce(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}
}

// exportOnce puts an already-finished page image (for example a colored-in
// page) onto a letter-size PDF. No conversion runs; the image is embedded
// as is, scaled down to fit the page.
func exportOnce(in, out string) error {
	if in == "" || out == "" {
		return fmt.Errorf("both -in and -out are required")
	}
	img, _, err := LoadImage(in)
	if err != nil {
		return err
	}
	data, err := lineart.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := (export.Exporter{}).WriteFile(out, data); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8000", "listen address")
	fs.Parse(args)

	// Stop cleanly on Ctrl-C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("colorpage service listening on %s\n", *addr)
	if err := server.New().ListenAndServe(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
	}
}
