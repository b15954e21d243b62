// Package render turns committed invoices into HTML and PDF documents.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"gst-billing/logger"
	"gst-billing/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

//go:embed templates/invoice.html
var templates embed.FS

type Options struct {
	// ChromePath overrides the browser binary; empty uses chromedp's lookup.
	ChromePath string
	// Timeout bounds one PDF conversion.
	Timeout time.Duration
}

type Renderer struct {
	tmpl *template.Template
	opts Options
	log  zerolog.Logger
}

func New(opts Options) (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Renderer{tmpl: tmpl, opts: opts, log: logger.WithComponent("render")}, nil
}

// HTML writes the printable invoice page.
func (r *Renderer) HTML(w io.Writer, inv *models.Invoice, profile models.CompanyProfile) error {
	return r.tmpl.Execute(w, NewDocument(inv, profile))
}

// PDF prints the invoice page to a landscape A4 PDF with headless Chrome.
func (r *Renderer) PDF(ctx context.Context, inv *models.Invoice, profile models.CompanyProfile) ([]byte, error) {
	var html bytes.Buffer
	if err := r.HTML(&html, inv, profile); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	if r.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ChromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		r.log.Error().Err(err).Str("invoice_no", inv.InvoiceNo).Msg("pdf generation failed")
		return nil, fmt.Errorf("print invoice %s: %w", inv.InvoiceNo, err)
	}
	return pdf, nil
}
