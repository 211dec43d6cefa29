package crawlers

import (
	"context"
	"errors"
	"sync"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

const loginFixture = `<html><body><form>
<input id="username"><input id="password" type="password">
<button type="submit">Sign in</button>
</form></body></html>`

// fakePage 基于StaticPage的可交互页面,提交表单后跳转到 afterSubmit
type fakePage struct {
	*StaticPage

	mu          sync.Mutex
	afterSubmit string
	submitted   bool
	inputs      map[string]string
	scrolls     int
	closed      bool
}

func newFakePage(pages map[string]string, afterSubmit string) *fakePage {
	return &fakePage{
		StaticPage:  NewStaticPage(StaticLoader(pages)),
		afterSubmit: afterSubmit,
		inputs:      make(map[string]string),
	}
}

func (p *fakePage) Input(ctx context.Context, selector, text string) error {
	if err := p.WaitFor(ctx, selector, 0); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs[selector] = text
	return nil
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	if err := p.WaitFor(ctx, selector, 0); err != nil {
		return err
	}
	if selector == "button[type='submit']" {
		p.mu.Lock()
		p.submitted = true
		p.mu.Unlock()
	}
	return nil
}

func (p *fakePage) Scroll(ctx context.Context) error {
	p.mu.Lock()
	p.scrolls++
	p.mu.Unlock()
	return p.StaticPage.Scroll(ctx)
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitted {
		return p.afterSubmit
	}
	return p.StaticPage.URL()
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.StaticPage.Close()
}

type fakeBrowser struct {
	page   *fakePage
	closed bool
}

func (b *fakeBrowser) NewPage(ctx context.Context) (Page, error) {
	if b.page == nil {
		return nil, errors.New("no page")
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

type fakeLauncher struct {
	browser  *fakeBrowser
	err      error
	launches int
}

func (l *fakeLauncher) Launch(ctx context.Context, opts BrowserOptions) (Browser, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	return l.browser, nil
}

// testScrapeConfig 不等待、不检查资源的抓取配置
func testScrapeConfig() models.ScrapeConfig {
	cfg := models.DefaultScrapeConfig()
	cfg.RequestDelay = 0
	cfg.SettleTime = 0
	cfg.WaitTime = 1
	cfg.MinFreeMemoryMB = 0
	cfg.CPULoadThreshold = 0
	return cfg
}
