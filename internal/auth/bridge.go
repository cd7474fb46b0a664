package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"seat-status-probe/config"
)

// AutomationError wraps any failure of the browser-driven login. By the
// time it surfaces the browser process has already been released.
type AutomationError struct {
	Err error
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("browser login failed: %v", e.Err)
}

func (e *AutomationError) Unwrap() error { return e.Err }

// Bridge exchanges one interactive browser login through the SSO portal for
// a reusable Session. It is the only component that touches the browser.
type Bridge struct {
	cfg      *config.PortalConfig
	headless bool
}

// NewBridge creates a bridge for the given portal.
func NewBridge(cfg *config.PortalConfig, headless bool) *Bridge {
	return &Bridge{cfg: cfg, headless: headless}
}

// Login drives the SSO form automatically: it fills the username and
// password fields, triggers the page's login action, and polls the address
// bar until the redirect back to the tunnel domain completes. The poll has
// no overall deadline beyond ctx; cancel ctx to give up.
func (b *Bridge) Login(ctx context.Context, username, password string) (*Session, error) {
	browserCtx, cancel := b.newBrowser(ctx)
	defer cancel() // browser is terminated on every path out of here

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(b.cfg.LoginURL),
		chromedp.WaitVisible(b.cfg.UsernameField, chromedp.ByQuery),
		chromedp.SendKeys(b.cfg.UsernameField, username, chromedp.ByQuery),
		chromedp.SendKeys(b.cfg.PasswordField, password, chromedp.ByQuery),
		chromedp.Evaluate(b.cfg.LoginScript, nil),
	)
	if err != nil {
		return nil, &AutomationError{Err: err}
	}

	if err := b.waitForRedirect(browserCtx); err != nil {
		return nil, &AutomationError{Err: err}
	}

	// Let the portal finish setting cookies after the redirect lands.
	time.Sleep(time.Second)

	session, err := b.harvest(browserCtx)
	if err != nil {
		return nil, &AutomationError{Err: err}
	}
	return session, nil
}

// LoginManual opens the login page and blocks until confirmed signals that
// a human has finished logging in, then harvests the browser state the same
// way Login does. There is no polling; an unconfirmed login blocks until
// ctx is cancelled.
func (b *Bridge) LoginManual(ctx context.Context, confirmed <-chan struct{}) (*Session, error) {
	browserCtx, cancel := b.newBrowser(ctx)
	defer cancel()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(b.cfg.LoginURL)); err != nil {
		return nil, &AutomationError{Err: err}
	}

	select {
	case <-ctx.Done():
		return nil, &AutomationError{Err: ctx.Err()}
	case <-confirmed:
	}

	session, err := b.harvest(browserCtx)
	if err != nil {
		return nil, &AutomationError{Err: err}
	}
	return session, nil
}

// newBrowser launches a Chrome instance. The returned cancel func kills the
// browser process; callers must always run it.
func (b *Bridge) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// waitForRedirect polls the browser's address until it lands back on the
// authenticated tunnel domain.
func (b *Bridge) waitForRedirect(ctx context.Context) error {
	for {
		var location string
		if err := chromedp.Run(ctx, chromedp.Location(&location)); err != nil {
			return err
		}
		if strings.Contains(location, b.cfg.AuthDomain) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.cfg.PollInterval):
		}
	}
}

// harvest extracts the cookie set and the reported user agent from the live
// browser and turns them into a Session.
func (b *Bridge) harvest(ctx context.Context) (*Session, error) {
	var raw []*network.Cookie
	var userAgent string
	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			raw, err = network.GetCookies().Do(ctx)
			return err
		}),
		chromedp.Evaluate("navigator.userAgent", &userAgent),
	)
	if err != nil {
		return nil, err
	}

	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		})
	}
	return NewSession(cookies, userAgent)
}
