package coffeereview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"brewmine/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var (
	ErrDisallowed = errors.New("disallowed by robots.txt")
	ErrBadStatus  = errors.New("unexpected response status")
)

type HttpOptions struct {
	UserAgent    string
	Timeout      time.Duration
	IgnoreRobots bool
	// Output receives full request/response dumps while debug logging is on.
	Output restyutil.InstrumentOutput
}

// HttpFetcher downloads pages directly and parses the static HTML.
type HttpFetcher struct {
	http      *resty.Client
	userAgent string
	ignore    bool

	robotsLock sync.Mutex
	robots     map[string]*robotstxt.RobotsData
}

func NewHttpFetcher(opts HttpOptions) (*HttpFetcher, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &HttpFetcher{
		http:      client,
		userAgent: opts.UserAgent,
		ignore:    opts.IgnoreRobots,
		robots:    make(map[string]*robotstxt.RobotsData),
	}, nil
}

func (f *HttpFetcher) Method() string {
	return "http"
}

func (f *HttpFetcher) ContentMode() ContentMode {
	return ParagraphContent
}

func (f *HttpFetcher) Close() error {
	return nil
}

// robotsFor fetches and caches the robots.txt of the host of `link`. A
// robots.txt that cannot be fetched allows everything.
func (f *HttpFetcher) robotsFor(ctx context.Context, link *url.URL) *robotstxt.RobotsData {
	host := link.Scheme + "://" + link.Host

	f.robotsLock.Lock()
	defer f.robotsLock.Unlock()
	if data, ok := f.robots[host]; ok {
		return data
	}

	var data *robotstxt.RobotsData
	res, err := f.http.R().
		SetContext(ctx).
		Get(host + "/robots.txt")
	if err == nil {
		data, err = robotstxt.FromStatusAndBytes(res.StatusCode(), res.Body())
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read robots.txt, allowing all", "host", host, "err", err)
		data = nil
	}
	f.robots[host] = data
	return data
}

func (f *HttpFetcher) allowed(ctx context.Context, link *url.URL) bool {
	if f.ignore {
		return true
	}
	robots := f.robotsFor(ctx, link)
	if robots == nil {
		return true
	}
	return robots.TestAgent(link.EscapedPath(), f.userAgent)
}

func (f *HttpFetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if !f.allowed(ctx, parsed) {
		return nil, fmt.Errorf("%w: %s", ErrDisallowed, link)
	}

	res, err := f.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrBadStatus, res.Status(), link)
	}
	return res.Body(), nil
}
