package crawlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"
)

// navigationTimeout 单次导航的最长等待
const navigationTimeout = 45 * time.Second

// actionTimeout 点击、输入等单次交互的最长等待
const actionTimeout = 10 * time.Second

// RodLauncher 基于go-rod启动本地Chrome
type RodLauncher struct{}

// Launch 启动浏览器并连接
func (RodLauncher) Launch(ctx context.Context, opts BrowserOptions) (Browser, error) {
	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("ignore-certificate-errors").
		Set("window-size", "1920,1080")
	if opts.ProxyURL != "" {
		l = l.Proxy(opts.ProxyURL)
	}
	// 优先使用本地浏览器,找不到时由rod下载
	if bin, ok := launcher.LookPath(); ok {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	log.Debug().Str("control_url", controlURL).Bool("headless", opts.Headless).Msg("浏览器已启动")
	return &RodBrowser{browser: browser, launcher: l, opts: opts}, nil
}

// RodBrowser go-rod浏览器实例
type RodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opts     BrowserOptions
}

// NewPage 打开新标签页并应用User-Agent与额外请求头
func (b *RodBrowser) NewPage(ctx context.Context) (Page, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("创建标签页失败: %w", err)
	}

	if b.opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.opts.UserAgent}); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("设置User-Agent失败: %w", err)
		}
	}

	if len(b.opts.Headers) > 0 {
		if _, err := page.SetExtraHeaders(flattenHeaders(b.opts.Headers)); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("设置请求头失败: %w", err)
		}
	}

	return &RodPage{page: page}, nil
}

// Close 关闭浏览器并结束进程
func (b *RodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	log.Debug().Msg("浏览器已关闭")
	return err
}

// flattenHeaders 转换为SetExtraHeaders需要的 [name, value, ...] 形式
func flattenHeaders(headers map[string]string) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	dict := make([]string, 0, len(headers)*2)
	for _, name := range names {
		dict = append(dict, name, headers[name])
	}
	return dict
}

// RodPage go-rod标签页
type RodPage struct {
	page *rod.Page
}

// Navigate 导航并等待页面加载
func (p *RodPage) Navigate(ctx context.Context, url string) (err error) {
	defer recoverDriver(&err)

	page := p.page.Context(ctx).Timeout(navigationTimeout)
	defer page.CancelTimeout()
	if err := page.Navigate(url); err != nil {
		return mapNavigationError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return mapNavigationError(url, err)
	}
	return nil
}

func mapNavigationError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
	}
	return fmt.Errorf("导航失败 %s: %w", url, err)
}

// Find 立即查找,不等待
func (p *RodPage) Find(selector string) (elements []Element, err error) {
	defer recoverDriver(&err)

	found, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRodElements(found), nil
}

// WaitFor 等待选择器出现
func (p *RodPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) (err error) {
	defer recoverDriver(&err)

	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()
	if _, err := page.Element(selector); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return nil
}

// Scroll 滚动到底部
func (p *RodPage) Scroll(ctx context.Context) (err error) {
	defer recoverDriver(&err)

	_, err = p.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

// Click 点击第一个匹配元素,元素不存在时立即返回 ErrElementNotFound
func (p *RodPage) Click(ctx context.Context, selector string) (err error) {
	defer recoverDriver(&err)

	page := p.page.Context(ctx).Timeout(actionTimeout)
	defer page.CancelTimeout()
	el, err := lookup(page, selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// Input 向输入框输入文本,元素不存在时立即返回 ErrElementNotFound
func (p *RodPage) Input(ctx context.Context, selector, text string) (err error) {
	defer recoverDriver(&err)

	page := p.page.Context(ctx).Timeout(actionTimeout)
	defer page.CancelTimeout()
	el, err := lookup(page, selector)
	if err != nil {
		return err
	}
	return el.Input(text)
}

// lookup 单次查找,不重试
// 需要等待的调用方先用 WaitFor
func lookup(page *rod.Page, selector string) (*rod.Element, error) {
	has, el, err := page.Has(selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return el, nil
}

// URL 当前地址,获取失败时返回空字符串
func (p *RodPage) URL() (url string) {
	defer func() {
		if r := recover(); r != nil {
			url = ""
		}
	}()
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// HTML 当前页面HTML
func (p *RodPage) HTML() (html string, err error) {
	defer recoverDriver(&err)
	return p.page.HTML()
}

// Close 关闭标签页
func (p *RodPage) Close() (err error) {
	defer recoverDriver(&err)
	return p.page.Close()
}

// rodElement go-rod元素
type rodElement struct {
	el *rod.Element
}

func (e rodElement) Find(selector string) (elements []Element, err error) {
	defer recoverDriver(&err)

	found, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRodElements(found), nil
}

func (e rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e rodElement) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func wrapRodElements(found rod.Elements) []Element {
	elements := make([]Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, rodElement{el: el})
	}
	return elements
}

// recoverDriver 把驱动panic转换为 ErrBrowserCrashed
func recoverDriver(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrBrowserCrashed, r)
	}
}
