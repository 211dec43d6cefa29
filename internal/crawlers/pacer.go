package crawlers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer 请求节流闸门
// 保证相邻两次 Wait 返回之间至少间隔 delay,并发调用者在闸门上串行
type Pacer struct {
	mu      sync.Mutex
	delay   time.Duration
	last    time.Time
	limiter *rate.Limiter
}

// NewPacer 创建节流器
// perMinute>0 时额外限制每分钟请求数
func NewPacer(delay time.Duration, perMinute int) *Pacer {
	p := &Pacer{delay: delay}
	if perMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
	return p
}

// Wait 阻塞到距上次返回至少 delay 之后,ctx取消时提前返回错误
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if remaining := p.delay - time.Since(p.last); remaining > 0 {
			if err := sleepCtx(ctx, remaining); err != nil {
				return err
			}
		}
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.last = time.Now()
	return nil
}

// LastReturn 上一次 Wait 成功返回的时间
func (p *Pacer) LastReturn() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
