package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"realpix-media/models"
	"realpix-media/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// SummaryService renders a booking summary sheet (the itemized order a
// photographer takes on site) as a PNG via headless Chrome.
type SummaryService struct {
	baseURL string // Base URL for the internal render endpoint
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(baseURL string) *SummaryService {
	return &SummaryService{baseURL: baseURL}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

const summaryTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 0; padding: 32px; width: 730px; }
  h1 { font-size: 22px; margin-bottom: 4px; }
  .ref { color: #555; font-size: 14px; margin-bottom: 20px; }
  .meta { font-size: 14px; margin-bottom: 20px; line-height: 1.5; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
  td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
  td.num, th.num { text-align: right; }
  .total td { border-bottom: none; font-weight: bold; padding-top: 12px; }
</style>
</head>
<body>
  <h1>Booking Summary</h1>
  <div class="ref">{{.Booking.ReferenceNumber}} &middot; {{.Booking.Status}}</div>
  <div class="meta">
    {{.Booking.AgentName}}{{if .Booking.AgentCompany}} &middot; {{.Booking.AgentCompany}}{{end}}<br>
    {{.Booking.Address}}{{if .Booking.City}}, {{.Booking.City}}{{end}}{{if .Booking.PostalCode}} {{.Booking.PostalCode}}{{end}}<br>
    {{.Booking.PropertySize}} sq ft{{if .Booking.PreferredDate}} &middot; {{.Booking.PreferredDate}}{{end}}{{if .Booking.TimeSlot}} ({{.Booking.TimeSlot}}){{end}}
  </div>
  <table>
    <tr><th>Item</th><th class="num">Unit</th><th class="num">Qty</th><th class="num">Total</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td>
      <td class="num">{{usd .UnitPrice}}{{if .PerImage}}/img{{end}}</td>
      <td class="num">{{.Qty}}</td>
      <td class="num">{{usd .LineTotal}}</td>
    </tr>
    {{end}}
    <tr class="total"><td colspan="3">Total</td><td class="num">{{.TotalFormatted}}</td></tr>
  </table>
</body>
</html>`

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"usd": utils.FormatUSD,
}).Parse(summaryTemplate))

// RenderHTML renders the summary sheet markup for a booking. Served by the
// internal render endpoint that headless Chrome navigates to.
func (s *SummaryService) RenderHTML(booking *models.BookingResponse) ([]byte, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, booking); err != nil {
		return nil, fmt.Errorf("failed to render summary template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG screenshots the rendered summary sheet for a booking reference.
func (s *SummaryService) RenderPNG(ctx context.Context, reference string) ([]byte, error) {
	log.Printf("📸 RenderPNG: Rendering summary for booking %s", reference)

	ctxTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, opts...)
	} else {
		// Let chromedp auto-detect (may fail in containers)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctxTimeout, chromedp.NoSandbox)
	}
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/bookings/%s/render", s.baseURL, reference)

	var png []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithCaptureBeyondViewport(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture summary screenshot: %w", err)
	}

	log.Printf("✅ RenderPNG: Captured %d bytes for booking %s", len(png), reference)
	return png, nil
}
