package coffeereview

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

type BrowserOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RenderWait is how long to let scripts run after navigation.
	RenderWait time.Duration
	// ExecPath overrides the Chrome binary chromedp would find itself.
	ExecPath string
}

// BrowserFetcher renders pages in a single headless Chrome tab.
type BrowserFetcher struct {
	opts        BrowserOptions
	cancelAlloc context.CancelFunc
	tab         context.Context
	cancelTab   context.CancelFunc
}

func NewBrowserFetcher(ctx context.Context, opts BrowserOptions) (*BrowserFetcher, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(opts.UserAgent),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	// starts the browser
	err := chromedp.Run(tab)
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &BrowserFetcher{
		opts:        opts,
		cancelAlloc: cancelAlloc,
		tab:         tab,
		cancelTab:   cancelTab,
	}, nil
}

func (f *BrowserFetcher) Method() string {
	return "browser"
}

func (f *BrowserFetcher) ContentMode() ContentMode {
	return ContainerContent
}

func (f *BrowserFetcher) Close() error {
	f.cancelTab()
	f.cancelAlloc()
	return nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(f.tab, f.opts.Timeout+f.opts.RenderWait)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(
		runCtx,
		chromedp.Navigate(link),
		chromedp.Sleep(f.opts.RenderWait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", link, err)
	}
	return []byte(html), nil
}
