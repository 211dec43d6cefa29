package core

import (
	"context"
	"errors"
	"sync"

	"github.com/RecoveryAshes/LinkScope/internal/crawlers"
	"github.com/RecoveryAshes/LinkScope/internal/models"
)

const (
	acmeURL = "https://www.linkedin.com/company/acme"
	feedURL = "https://www.linkedin.com/feed/"
)

const loginFixture = `<html><body><form>
<input id="username"><input id="password" type="password">
<button type="submit">Sign in</button>
</form></body></html>`

const searchFixture = `<html><body><div class="search-results-container">
<div class="entity-result__title-text"><a href="/company/acme/?trk=search">Acme</a></div>
</div></body></html>`

const companyFixture = `<html><body>
<div class="org-top-card">
  <h1 class="org-top-card-summary__title">Acme Corp</h1>
  <div class="org-top-card-summary-info-list__info-item">Software Development</div>
  <div class="org-top-card-summary-info-list__info-item">1.2K followers</div>
  <a class="org-about-us-company-module__website" href="https://acme.example">acme.example</a>
</div>
</body></html>`

const postsFixture = `<html><body><main class="org-updates">
<div class="feed-shared-update-v2">
  <time datetime="2024-06-01T08:30:00Z">2w</time>
  <div class="update-components-text-view">We're hiring backend engineers!</div>
  <span class="social-details-social-counts">1,024 reactions</span>
</div>
<div class="feed-shared-update-v2">
  <div class="update-components-text-view">We reached 10k customers</div>
  <span class="social-details-social-counts">88</span>
</div>
</main></body></html>`

const jobsFixture = `<html><body><main><ul class="jobs-search__results-list">
<li><div class="base-card job-search-card">
  <h3 class="base-search-card__title">Senior Software Engineer</h3>
  <span class="job-search-card__location">Austin, TX</span>
  <p class="job-search-card__snippet">Go, Kubernetes and AWS</p>
</div></li>
<li><div class="job-search-card"><span class="job-search-card__title">Account Executive</span></div></li>
</ul></main></body></html>`

const peopleFixture = `<html><body><main class="org-people"><ul>
<li class="org-people-profile-card">
  <div class="artdeco-entity-lockup__title">Jane Doe</div>
  <div class="artdeco-entity-lockup__subtitle">VP of Engineering</div>
</li>
</ul></main></body></html>`

const websiteFixture = `<html><head>
<meta name="description" content="Acme builds rockets for everyone">
</head><body></body></html>`

var testCreds = models.Credentials{Email: "jane@acme.example", Password: "secret"}

// fixturePages 登录成功后可访问的全部页面
func fixturePages() map[string]string {
	return map[string]string{
		crawlers.LoginURL:                  loginFixture,
		feedURL:                            `<html><body><main>feed</main></body></html>`,
		crawlers.CompanySearchURL("Acme"):  searchFixture,
		crawlers.CompanySearchURL("Ghost"): `<html><body><div class="search-results-container"></div></body></html>`,
		acmeURL:                            companyFixture,
		acmeURL + "/posts/":                postsFixture,
		acmeURL + "/jobs/":                 jobsFixture,
		acmeURL + "/people/":               peopleFixture,
	}
}

// fakePage 提交登录表单后跳转到 afterSubmit
type fakePage struct {
	*crawlers.StaticPage

	mu          sync.Mutex
	afterSubmit string
	closed      bool
}

func newFakePage(pages map[string]string, afterSubmit string) *fakePage {
	return &fakePage{
		StaticPage:  crawlers.NewStaticPage(crawlers.StaticLoader(pages)),
		afterSubmit: afterSubmit,
	}
}

func (p *fakePage) Input(ctx context.Context, selector, text string) error {
	return p.WaitFor(ctx, selector, 0)
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	if err := p.WaitFor(ctx, selector, 0); err != nil {
		return err
	}
	if selector == "button[type='submit']" {
		return p.Navigate(ctx, p.afterSubmit)
	}
	return nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.StaticPage.Close()
}

type fakeBrowser struct {
	page   *fakePage
	mu     sync.Mutex
	closed int
}

func (b *fakeBrowser) NewPage(ctx context.Context) (crawlers.Page, error) {
	if b.page == nil {
		return nil, errors.New("no page")
	}
	return b.page, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	b.closed++
	b.mu.Unlock()
	return nil
}

// fakeLauncher 每次启动返回同一个浏览器
type fakeLauncher struct {
	browser *fakeBrowser

	mu       sync.Mutex
	launches int
}

func newFakeLauncher(pages map[string]string, afterSubmit string) *fakeLauncher {
	return &fakeLauncher{browser: &fakeBrowser{page: newFakePage(pages, afterSubmit)}}
}

func (l *fakeLauncher) Launch(ctx context.Context, opts crawlers.BrowserOptions) (crawlers.Browser, error) {
	l.mu.Lock()
	l.launches++
	l.mu.Unlock()
	return l.browser, nil
}

func (l *fakeLauncher) launchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches
}

// testScrapeConfig 不等待、不检查资源的抓取配置
func testScrapeConfig() models.ScrapeConfig {
	cfg := models.DefaultScrapeConfig()
	cfg.RequestDelay = 0
	cfg.SettleTime = 0
	cfg.WaitTime = 1
	cfg.MaxRevealRounds = 1
	cfg.MinFreeMemoryMB = 0
	cfg.CPULoadThreshold = 0
	return cfg
}

func newTestOrchestrator(launcher crawlers.BrowserLauncher, creds models.Credentials, enricher *crawlers.WebsiteEnricher) *Orchestrator {
	return NewOrchestrator(OrchestratorConfig{
		Launcher:    launcher,
		Pacer:       crawlers.NewPacer(0, 0),
		Scrape:      testScrapeConfig(),
		Credentials: creds,
		Enricher:    enricher,
	})
}
