package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"materiaux-scraper/config"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher loads one page and returns it as a parsed document, so that
// extraction is uniform no matter how the page was rendered.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
	Close() error
}

// StaticFetcher loads server-rendered pages over plain HTTP.
type StaticFetcher struct {
	client *http.Client
}

// NewStaticFetcher returns a fetcher with the given request timeout.
func NewStaticFetcher(timeout time.Duration) *StaticFetcher {
	return &StaticFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *StaticFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "fr-TN,fr;q=0.9,ar;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: GET %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch: GET %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

func (f *StaticFetcher) Close() error { return nil }

// BrowserFetcher renders JS-heavy pages in headless Chrome and hands the
// resulting DOM to goquery.
type BrowserFetcher struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	settleDelay time.Duration
}

// NewBrowserFetcher starts a headless Chrome allocator. The binary is
// taken from cfg.ChromeBin or located on the system.
func NewBrowserFetcher(cfg *config.Config) (*BrowserFetcher, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	silentCtx, _ := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		allocCtx:    silentCtx,
		cancelAlloc: cancelAlloc,
		settleDelay: 3 * time.Second,
	}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	tabCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 90*time.Second)
	defer cancelTimeout()

	// Honor caller cancellation (Ctrl-C) on top of the tab timeout.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(f.settleDelay),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch: render %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

func (f *BrowserFetcher) Close() error {
	f.cancelAlloc()
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary on the host.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
