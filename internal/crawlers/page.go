package crawlers

import (
	"context"
	"errors"
	"time"
)

// 错误类型定义
var (
	ErrCredentialsMissing    = errors.New("未配置登录凭据")
	ErrLoginFailed           = errors.New("登录失败")
	ErrNavigationTimeout     = errors.New("页面导航超时")
	ErrElementNotFound       = errors.New("页面元素未找到")
	ErrCompanyNotFound       = errors.New("未找到公司")
	ErrNotLoggedIn           = errors.New("会话未登录")
	ErrBrowserCrashed        = errors.New("浏览器崩溃")
	ErrInsufficientResources = errors.New("系统资源不足")
)

// Finder 按CSS选择器查找元素
type Finder interface {
	Find(selector string) ([]Element, error)
}

// Element 页面元素
type Element interface {
	Finder
	// Text 返回元素可见文本
	Text() (string, error)
	// Attribute 返回属性值,属性不存在时返回空字符串
	Attribute(name string) (string, error)
}

// Page 页面渲染与交互能力
type Page interface {
	Finder
	Navigate(ctx context.Context, url string) error
	// WaitFor 等待选择器出现,超时返回 ErrElementNotFound
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	// Scroll 滚动到页面底部以触发懒加载
	Scroll(ctx context.Context) error
	Click(ctx context.Context, selector string) error
	Input(ctx context.Context, selector, text string) error
	URL() string
	HTML() (string, error)
	Close() error
}

// Browser 浏览器实例,每次编排运行独占一个
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// BrowserOptions 浏览器启动参数
type BrowserOptions struct {
	Headless  bool
	ProxyURL  string
	UserAgent string
	Headers   map[string]string
}

// BrowserLauncher 启动浏览器
type BrowserLauncher interface {
	Launch(ctx context.Context, opts BrowserOptions) (Browser, error)
}

// sleepCtx 可被取消的等待
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
