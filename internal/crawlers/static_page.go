package crawlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Loader 按URL获取HTML文本
type Loader func(ctx context.Context, url string) (string, error)

// StaticLoader 基于内存页面表的加载器,URL不存在时返回错误
func StaticLoader(pages map[string]string) Loader {
	return func(ctx context.Context, url string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		body, ok := pages[url]
		if !ok {
			return "", fmt.Errorf("页面不存在: %s", url)
		}
		return body, nil
	}
}

// StaticPage 基于goquery的静态页面
// 不执行JavaScript,滚动为空操作,不支持点击与输入
type StaticPage struct {
	loader Loader

	mu  sync.RWMutex
	doc *goquery.Document
	url string
}

// NewStaticPage 创建静态页面
func NewStaticPage(loader Loader) *StaticPage {
	return &StaticPage{loader: loader}
}

// NewStaticPageFromHTML 直接从HTML文本创建已加载的页面
func NewStaticPageFromHTML(pageURL, body string) (*StaticPage, error) {
	p := &StaticPage{}
	if err := p.load(pageURL, body); err != nil {
		return nil, err
	}
	return p, nil
}

// Navigate 加载并解析页面
func (p *StaticPage) Navigate(ctx context.Context, url string) error {
	if p.loader == nil {
		return fmt.Errorf("静态页面未配置加载器")
	}
	body, err := p.loader(ctx, url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
		}
		return fmt.Errorf("加载页面失败 %s: %w", url, err)
	}
	return p.load(url, body)
}

func (p *StaticPage) load(url, body string) error {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("解析HTML失败: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	p.mu.Lock()
	p.doc = doc
	p.url = url
	p.mu.Unlock()
	return nil
}

func (p *StaticPage) document() (*goquery.Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.doc == nil {
		return nil, fmt.Errorf("%w: 页面尚未加载", ErrElementNotFound)
	}
	return p.doc, nil
}

// Find 按CSS选择器查找元素
func (p *StaticPage) Find(selector string) ([]Element, error) {
	doc, err := p.document()
	if err != nil {
		return nil, err
	}
	return findIn(doc.Selection, selector)
}

// WaitFor 静态页面没有异步渲染,元素不存在时立即返回 ErrElementNotFound
func (p *StaticPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	elements, err := p.Find(selector)
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return nil
}

// Scroll 空操作
func (p *StaticPage) Scroll(ctx context.Context) error {
	return ctx.Err()
}

// Click 不支持
func (p *StaticPage) Click(ctx context.Context, selector string) error {
	return errors.ErrUnsupported
}

// Input 不支持
func (p *StaticPage) Input(ctx context.Context, selector, text string) error {
	return errors.ErrUnsupported
}

// URL 当前页面地址
func (p *StaticPage) URL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.url
}

// HTML 当前文档的HTML
func (p *StaticPage) HTML() (string, error) {
	doc, err := p.document()
	if err != nil {
		return "", err
	}
	return doc.Html()
}

// Close 释放文档
func (p *StaticPage) Close() error {
	p.mu.Lock()
	p.doc = nil
	p.mu.Unlock()
	return nil
}

// staticElement goquery选中的单个节点
type staticElement struct {
	sel *goquery.Selection
}

func (e staticElement) Find(selector string) ([]Element, error) {
	return findIn(e.sel, selector)
}

func (e staticElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e staticElement) Attribute(name string) (string, error) {
	v, _ := e.sel.Attr(name)
	return v, nil
}

// findIn 先用cascadia编译选择器,非法选择器返回错误而不是panic
func findIn(scope *goquery.Selection, selector string) ([]Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("无效的选择器 %q: %w", selector, err)
	}
	found := scope.FindMatcher(matcher)
	elements := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, staticElement{sel: s})
	})
	return elements, nil
}
