package crawlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// SessionState 登录会话状态
type SessionState string

const (
	StateLoggedOut   SessionState = "logged_out"
	StateLoggingIn   SessionState = "logging_in"
	StateLoggedIn    SessionState = "logged_in"
	StateLoginFailed SessionState = "login_failed"
)

// sessionTransitions 合法状态迁移表
// Close 可以从任意状态回到 LoggedOut
var sessionTransitions = map[SessionState][]SessionState{
	StateLoggedOut:   {StateLoggingIn, StateLoginFailed},
	StateLoggingIn:   {StateLoggedIn, StateLoginFailed},
	StateLoggedIn:    {StateLoggedOut},
	StateLoginFailed: {StateLoggingIn, StateLoggedOut},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to SessionState) bool {
	for _, s := range sessionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session 一次编排运行独占的登录会话
type Session struct {
	launcher BrowserLauncher
	monitor  *ResourceMonitor
	pacer    *Pacer
	opts     BrowserOptions
	settle   time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	state   SessionState
	browser Browser
	page    Page
}

// NewSession 创建会话,初始状态为 LoggedOut
func NewSession(launcher BrowserLauncher, pacer *Pacer, cfg models.ScrapeConfig, opts BrowserOptions) *Session {
	return &Session{
		launcher: launcher,
		monitor: NewResourceMonitor(ResourceMonitorConfig{
			MinFreeMemoryMB:  cfg.MinFreeMemoryMB,
			CPULoadThreshold: cfg.CPULoadThreshold,
		}),
		pacer:   pacer,
		opts:    opts,
		settle:  cfg.Settle(),
		timeout: cfg.ElementTimeout(),
		state:   StateLoggedOut,
	}
}

// State 当前状态
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// setState 执行状态迁移,非法迁移返回错误
func (s *Session) setState(to SessionState) error {
	if !CanTransition(s.state, to) {
		return fmt.Errorf("非法的会话状态迁移: %s -> %s", s.state, to)
	}
	log.Debug().Str("from", string(s.state)).Str("to", string(to)).Msg("会话状态迁移")
	s.state = to
	return nil
}

// Login 登录
// 凭据缺失时返回 ErrCredentialsMissing,登录被拒或遇到安全验证时返回包装后的 ErrLoginFailed
func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoggedIn {
		return nil
	}

	if !creds.Present() {
		if s.state != StateLoginFailed {
			if err := s.setState(StateLoginFailed); err != nil {
				return err
			}
		}
		log.Info().Msg("ℹ️  未配置登录凭据,跳过登录")
		return ErrCredentialsMissing
	}

	if err := s.setState(StateLoggingIn); err != nil {
		return err
	}

	if err := s.login(ctx, creds); err != nil {
		s.release()
		s.state = StateLoginFailed
		return err
	}

	s.state = StateLoggedIn
	log.Info().Msg("✅ 登录成功")
	return nil
}

func (s *Session) login(ctx context.Context, creds models.Credentials) error {
	if s.monitor != nil {
		if ok, reason := s.monitor.CheckAvailability(); !ok {
			return fmt.Errorf("%w: %s", ErrInsufficientResources, reason)
		}
	}

	browser, err := s.launcher.Launch(ctx, s.opts)
	if err != nil {
		return err
	}
	s.browser = browser

	page, err := browser.NewPage(ctx)
	if err != nil {
		return err
	}
	s.page = page

	if s.pacer != nil {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
	}

	log.Info().Str("email", maskEmail(creds.Email)).Msg("🔐 正在登录")
	if err := page.Navigate(ctx, LoginURL); err != nil {
		return err
	}
	if err := page.WaitFor(ctx, "#username", s.timeout); err != nil {
		return err
	}
	if err := page.Input(ctx, "#username", creds.Email); err != nil {
		return fmt.Errorf("输入用户名失败: %w", err)
	}
	if err := page.Input(ctx, "#password", creds.Password); err != nil {
		return fmt.Errorf("输入密码失败: %w", err)
	}
	if err := page.Click(ctx, "button[type='submit']"); err != nil {
		return fmt.Errorf("提交登录表单失败: %w", err)
	}
	if err := sleepCtx(ctx, s.settle); err != nil {
		return err
	}

	return checkLoginURL(page.URL())
}

// checkLoginURL 根据登录后的地址判断结果
func checkLoginURL(current string) error {
	lower := strings.ToLower(current)
	for _, marker := range []string{"checkpoint", "challenge", "captcha"} {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: 需要安全验证(%s)", ErrLoginFailed, marker)
		}
	}
	if strings.Contains(lower, "/uas/login") || strings.Contains(lower, "/login") {
		return fmt.Errorf("%w: 凭据被拒绝", ErrLoginFailed)
	}
	return nil
}

// Page 已登录会话的页面
func (s *Session) Page() (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoggedIn || s.page == nil {
		return nil, ErrNotLoggedIn
	}
	return s.page, nil
}

// Close 释放页面与浏览器,幂等
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.release()
	s.state = StateLoggedOut
	return err
}

func (s *Session) release() error {
	var firstErr error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			firstErr = err
		}
		s.page = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.browser = nil
	}
	return firstErr
}

// maskEmail 日志中只保留邮箱首字母和域名
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
