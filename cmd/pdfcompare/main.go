// Command pdfcompare compares two PDF files locally and writes the
// highlighted comparison document.
//
//	pdfcompare -a old.pdf -b new.pdf -o diff.pdf [-side-by-side]
//	pdfcompare token -client ci-pipeline
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/config"
	"pdfcompare/internal/domain"
	"pdfcompare/internal/pdfdoc"
	"pdfcompare/internal/service"
)

func main() {
	log.SetFlags(0)
	var err error
	if len(os.Args) > 1 && os.Args[1] == "token" {
		err = runToken(os.Args[2:], os.Stdout)
	} else {
		err = runCompare(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	}
	if err != nil {
		log.Fatalf("pdfcompare: %v", err)
	}
}

func runCompare(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pdfcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	a := fs.String("a", "", "original PDF")
	b := fs.String("b", "", "revised PDF")
	out := fs.String("o", "comparison.pdf", `output PDF ("-" for stdout)`)
	sideBySide := fs.Bool("side-by-side", false, "place the documents next to each other instead of overlaying them")
	maxPages := fs.Int("max-pages", 0, "reject inputs with more pages (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *a == "" || *b == "" {
		fs.Usage()
		return errors.New("both -a and -b are required")
	}

	dataA, err := os.ReadFile(*a)
	if err != nil {
		return err
	}
	dataB, err := os.ReadFile(*b)
	if err != nil {
		return err
	}

	mode := domain.LayoutOverlay
	if *sideBySide {
		mode = domain.LayoutSideBySide
	}

	comparator := compare.NewComparator(pdfdoc.Opener, pdfdoc.NewWriter, compare.WithMaxPages(*maxPages))
	res, err := comparator.CompareBytes(ctx, dataA, dataB, mode)
	if err != nil {
		return err
	}

	summary := stdout
	if *out == "-" {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("refusing to write PDF to a terminal; redirect stdout or use -o")
		}
		if _, err := stdout.Write(res.Output); err != nil {
			return err
		}
		summary = stderr
	} else if err := os.WriteFile(*out, res.Output, 0o644); err != nil {
		return err
	}

	return printSummary(summary, *out, res)
}

func printSummary(w io.Writer, out string, res *compare.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tOUTCOME\tTEXT +\tTEXT -\tIMAGE +\tIMAGE -")
	for _, p := range res.Pages {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n",
			p.Page, p.Outcome, p.TextAdded, p.TextRemoved, p.ImageAdded, p.ImageRemoved)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := compare.Totals(res.Pages)
	_, err := fmt.Fprintf(w, "\n%d of %d pages differ, %d highlights, %d output pages -> %s\n",
		t.Page, len(res.Pages), res.Highlights(), res.PageCount, out)
	return err
}

// runToken issues an API token signed with the server's JWT settings.
func runToken(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	client := fs.String("client", "", "client id recorded on comparisons")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	tok, err := service.NewAuthService(cfg.JWT).IssueToken(*client)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\nexpires %s\n", tok.Token, tok.ExpiresAt.Format(time.RFC3339))
	return err
}
