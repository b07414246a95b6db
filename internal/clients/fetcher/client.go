package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"path"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/pkg/transport"
)

const (
	defaultRetryWaitMax = time.Second * 5
	defaultTimeout      = time.Second * 30
	defaultMaxBytes     = 64 << 20
	maxRedirects        = 5
)

var (
	ErrHostNotAllowed   = errors.New("document host is not allowed")
	ErrBlockedAddress   = errors.New("document address is not public")
	ErrDocumentTooLarge = errors.New("document is too large")
)

type Config struct {
	RetryMax int
	// AllowedHosts are matched against the URL host name, case-insensitively.
	// An empty list rejects every URL.
	AllowedHosts []string
	// AllowPrivateNetworks lets the client dial loopback, private and
	// link-local addresses.
	AllowPrivateNetworks bool
	MaxBytes             int64
}

// Client downloads permit documents stored behind plain URLs.
type Client struct {
	client   *http.Client
	hosts    []string
	maxBytes int64
}

func NewClient(cfg Config) *Client {
	c := &Client{
		maxBytes: cfg.MaxBytes,
	}

	if c.maxBytes <= 0 {
		c.maxBytes = defaultMaxBytes
	}

	for _, h := range cfg.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			c.hosts = append(c.hosts, h)
		}
	}

	dialer := &net.Dialer{
		Timeout:   defaultTimeout,
		KeepAlive: defaultTimeout,
	}

	if !cfg.AllowPrivateNetworks {
		dialer.Control = refusePrivate
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.Proxy = nil
	base.DialContext = dialer.DialContext

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = defaultTimeout
	retryClient.HTTPClient.Transport = transport.NewRoundTripper(base)
	retryClient.HTTPClient.CheckRedirect = c.checkRedirect
	retryClient.Logger = nil
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if errors.Is(err, ErrBlockedAddress) || errors.Is(err, ErrHostNotAllowed) {
			return false, err
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	c.client = retryClient.StandardClient()

	return c
}

// Allowed reports whether rawURL may be fetched at all.
func (c *Client) Allowed(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: unsupported document url %q", entity.ErrIncorrectRequestBody, rawURL)
	}

	return c.allowedHost(u)
}

func (c *Client) allowedHost(u *url.URL) error {
	if !slices.Contains(c.hosts, strings.ToLower(u.Hostname())) {
		return fmt.Errorf("%w: %w: %s", entity.ErrIncorrectRequestBody, ErrHostNotAllowed, u.Hostname())
	}

	return nil
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}

	return c.allowedHost(req.URL)
}

func (c *Client) Fetch(ctx context.Context, rawURL string) (entity.DownloadedFile, error) {
	err := c.Allowed(rawURL)
	if err != nil {
		return entity.DownloadedFile{}, err
	}

	u, _ := url.Parse(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entity.DownloadedFile{}, fmt.Errorf("document %s: %w", rawURL, entity.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.DownloadedFile{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("read body: %w", err)
	}

	if int64(len(data)) > c.maxBytes {
		return entity.DownloadedFile{}, fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, c.maxBytes)
	}

	return entity.DownloadedFile{
		Name:        fileName(resp, u),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// refusePrivate runs after name resolution, so it also covers host names
// that resolve to internal addresses.
func refusePrivate(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %w: %s", entity.ErrIncorrectRequestBody, ErrBlockedAddress, address)
	}

	ip := addrPort.Addr().Unmap()

	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified() || ip.IsMulticast() || ip.IsInterfaceLocalMulticast() {
		return fmt.Errorf("%w: %w: %s", entity.ErrIncorrectRequestBody, ErrBlockedAddress, ip)
	}

	return nil
}

func fileName(resp *http.Response, u *url.URL) string {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return "document"
	}

	return name
}
