package cli

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/colorpage/colorpage/pkg/convert"
	"github.com/colorpage/colorpage/pkg/export"
	"github.com/colorpage/colorpage/pkg/lineart"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  c  - convert the loaded photo to line art")
	fmt.Println("  t  - set threshold (0-255)")
	fmt.Println("  b  - set blur passes (0-3)")
	fmt.Println("  k  - set line thickness (0-2)")
	fmt.Println("  m  - set max output dimension")
	fmt.Println("  r  - set or clear the remote service URL")
	fmt.Println("  o  - open another image at runtime")
	fmt.Println("  s  - save current line art as PNG")
	fmt.Println("  e  - export current line art as a PDF page")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

func printHelp() {
	fmt.Println("Usage: colorpage <command> [flags]  |  colorpage [image]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  convert  - turn a photo into a line-art PNG")
	fmt.Println("  export   - put a finished page image on a letter-size PDF")
	fmt.Println("  serve    - run the HTTP conversion service")
	fmt.Println("  update   - check for a newer release")
	fmt.Println("  version  - print the version")
	fmt.Println()
	fmt.Println("With no command, an image path (or nothing) starts the interactive session.")
}

// Run dispatches the colorpage entrypoint. A recognized subcommand runs
// non-interactively; an image path argument (or no argument at all) starts
// the interactive session.
func Run() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "convert":
			runConvert(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "serve":
			runServe(os.Args[2:])
			return
		case "update":
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Println(Version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
		runInteractive(os.Args[1])
		return
	}
	runInteractive("")
}

func runInteractive(inputImagePath string) {
	opts := lineart.Defaults()
	remoteURL := os.Getenv("COLORPAGE_REMOTE_URL")

	var src *image.NRGBA
	var srcData []byte
	var srcPath string
	var result *convert.Result

	if inputImagePath != "" {
		img, raw, err := LoadImage(inputImagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", inputImagePath, err)
			os.Exit(1)
		}
		src = img
		srcData = raw
		srcPath = inputImagePath
		// Try to show an initial preview in compatible terminals.
		// Ignore errors here so preview remains optional.
		_ = PreviewImage(src)
		if info, ierr := ImageInfo(src); ierr == nil {
			fmt.Println(info)
		}
	}

	fmt.Println("Coloring Page Converter")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}

		switch r {
		case 'c':
			if src == nil {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			res, notice, cerr := convert.NewDispatcher(remoteURL).Convert(context.Background(), srcData, opts)
			if cerr != nil {
				fmt.Fprintf(os.Stderr, "conversion error: %v\n", cerr)
				continue
			}
			if notice != "" {
				fmt.Fprintln(os.Stderr, notice)
			}
			result = res
			fmt.Printf("Converted %s (%dx%d)\n", srcPath, res.Width, res.Height)
			_ = PreviewPNG(res.PNG)
			continue

		case 't':
			opts.Threshold = promptInt("Threshold (0-255)", opts.Threshold)
			opts = opts.Clamp()
			continue

		case 'b':
			opts.BlurPasses = promptInt("Blur passes (0-3)", opts.BlurPasses)
			opts = opts.Clamp()
			continue

		case 'k':
			opts.Thickness = promptInt("Line thickness (0-2)", opts.Thickness)
			opts = opts.Clamp()
			continue

		case 'm':
			opts.MaxDim = promptInt("Max output dimension", opts.MaxDim)
			opts = opts.Clamp()
			continue

		case 'r':
			cur := remoteURL
			if cur == "" {
				cur = "none"
			}
			url, _ := PromptLine(fmt.Sprintf("Remote service URL (current: %s, empty to clear): ", cur))
			remoteURL = url
			if remoteURL == "" {
				fmt.Println("Remote service cleared; conversions run locally.")
			} else {
				fmt.Printf("Remote service set to %s\n", remoteURL)
			}
			continue

		case 'o':
			selected, selErr := SelectFileWithFzf(".")
			var newPath string
			if selErr != nil || selected == "" {
				newPath, _ = PromptLine("Enter path to image to open (leave empty to cancel): ")
				if newPath == "" {
					fmt.Println("open cancelled")
					continue
				}
			} else {
				newPath = selected
			}

			img, raw, lerr := LoadImage(newPath)
			if lerr != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", newPath, lerr)
				continue
			}
			src = img
			srcData = raw
			srcPath = newPath
			result = nil
			fmt.Printf("Opened %s\n", newPath)
			_ = PreviewImage(src)
			if info, ierr := ImageInfo(src); ierr == nil {
				fmt.Println(info)
			}
			continue

		case 's':
			if result == nil {
				fmt.Println("Nothing to save yet. Press 'c' to convert first.")
				continue
			}
			out, _ := PromptLine("Enter output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if serr := SavePNG(out, result.PNG); serr != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", serr)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 'e':
			if result == nil {
				fmt.Println("Nothing to export yet. Press 'c' to convert first.")
				continue
			}
			out, _ := PromptLine("Enter output PDF filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if eerr := (export.Exporter{}).WriteFile(out, result.PNG); eerr != nil {
				fmt.Fprintf(os.Stderr, "failed to write PDF: %v\n", eerr)
				continue
			}
			fmt.Printf("Exported to %s\n", out)

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
			continue

		case 'h':
			usage()
			continue

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}
