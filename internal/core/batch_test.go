package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/fallback"
	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// fakeAnalyzer 按公司名称返回预设结果
type fakeAnalyzer struct {
	fail   map[string]bool
	cached map[string]bool
	calls  []string
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, name string, force bool) (*AnalyzeResult, error) {
	a.calls = append(a.calls, name)
	if a.fail[name] {
		return nil, errors.New("数据库不可写")
	}
	if name == "Fallback Inc" {
		b := fallback.NewSeeded(1, 2).Generate(name)
		return &AnalyzeResult{
			Bundle: b,
			Run: &RunResult{
				Bundle:      b,
				Stage:       StageFallbackAssembled,
				FailedStage: StageSessionEstablishing,
				Err:         errors.New("未配置凭据"),
				Duration:    time.Second,
			},
		}, nil
	}
	return &AnalyzeResult{Bundle: stubBundle(name), Cached: a.cached[name]}, nil
}

func TestBatchRunner_Run(t *testing.T) {
	tests := []struct {
		name            string
		companies       []string
		fail            map[string]bool
		continueOnError bool
		wantCalls       int
		wantSuccess     int
		wantFail        int
		wantFallback    int
	}{
		{
			name:            "全部成功",
			companies:       []string{"Acme", "Globex", "Fallback Inc"},
			continueOnError: true,
			wantCalls:       3,
			wantSuccess:     3,
			wantFallback:    1,
		},
		{
			name:            "失败后继续",
			companies:       []string{"Acme", "Broken", "Globex"},
			fail:            map[string]bool{"Broken": true},
			continueOnError: true,
			wantCalls:       3,
			wantSuccess:     2,
			wantFail:        1,
		},
		{
			name:            "失败后中止",
			companies:       []string{"Acme", "Broken", "Globex"},
			fail:            map[string]bool{"Broken": true},
			continueOnError: false,
			wantCalls:       2,
			wantSuccess:     1,
			wantFail:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{fail: tt.fail, cached: map[string]bool{"Globex": true}}
			br := NewBatchRunner(analyzer, BatchOptions{ContinueOnError: tt.continueOnError})

			summary, err := br.Run(context.Background(), tt.companies)
			if err != nil {
				t.Fatalf("批量分析失败: %v", err)
			}
			if len(analyzer.calls) != tt.wantCalls {
				t.Errorf("调用次数 = %d, 期望 %d", len(analyzer.calls), tt.wantCalls)
			}
			if summary.TotalCompanies != len(tt.companies) {
				t.Errorf("总数 = %d", summary.TotalCompanies)
			}
			if summary.SuccessCount != tt.wantSuccess || summary.FailCount != tt.wantFail {
				t.Errorf("成功/失败 = %d/%d, 期望 %d/%d", summary.SuccessCount, summary.FailCount, tt.wantSuccess, tt.wantFail)
			}
			if summary.FallbackCount != tt.wantFallback {
				t.Errorf("合成数据数 = %d, 期望 %d", summary.FallbackCount, tt.wantFallback)
			}
			if len(summary.Results) != tt.wantCalls {
				t.Errorf("结果数 = %d", len(summary.Results))
			}
		})
	}
}

func TestBatchRunner_RunFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "companies.txt")
	content := "# 目标公司\nAcme\n\nFallback Inc\nacme\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatalf("写入列表失败: %v", err)
	}

	outDir := filepath.Join(dir, "output")
	analyzer := &fakeAnalyzer{}
	br := NewBatchRunner(analyzer, BatchOptions{
		OutputDir:       outDir,
		ContinueOnError: true,
		Progress:        true,
		Scrape:          models.DefaultScrapeConfig(),
	})

	summary, err := br.RunFile(context.Background(), list)
	if err != nil {
		t.Fatalf("批量分析失败: %v", err)
	}
	if summary.TotalCompanies != 2 || summary.SuccessCount != 2 {
		t.Errorf("摘要 = %+v", summary)
	}

	for _, name := range []string{"acme", "fallback-inc"} {
		for _, file := range []string{"scrape_report.json", "bundle.json"} {
			path := filepath.Join(outDir, name, "reports", file)
			if _, err := os.Stat(path); err != nil {
				t.Errorf("缺少报告 %s: %v", path, err)
			}
		}
	}

	if _, err := br.RunFile(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("文件不存在时应返回错误")
	}
}

func TestBatchRunner_取消(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	analyzer := &fakeAnalyzer{}
	br := NewBatchRunner(analyzer, BatchOptions{BatchDelay: time.Hour, ContinueOnError: true})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	summary, err := br.Run(ctx, []string{"Acme", "Globex"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("期望 context.Canceled, 实际 %v", err)
	}
	if summary == nil || len(summary.Results) != 1 {
		t.Errorf("取消前应完成1个公司: %+v", summary)
	}
}

func TestNewScrapeReport(t *testing.T) {
	end := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("命中缓存", func(t *testing.T) {
		report := NewScrapeReport(&AnalyzeResult{Bundle: stubBundle("Acme"), Cached: true}, models.DefaultScrapeConfig(), end)
		if report.FinalStage != "cached" || report.Duration != 0 {
			t.Errorf("报告 = %+v", report)
		}
		if report.Stats.Jobs != 3 || report.Stats.DepartmentsHit != 2 {
			t.Errorf("统计 = %+v", report.Stats)
		}
	})

	t.Run("合成数据", func(t *testing.T) {
		b := fallback.NewSeeded(1, 2).Generate("Initech")
		sess, _ := models.NewScrapeSession("Initech")
		sess.StartedAt = end.Add(-3 * time.Second)
		res := &AnalyzeResult{
			Bundle:  b,
			Session: sess,
			Run: &RunResult{
				Bundle:      b,
				Stage:       StageFallbackAssembled,
				FailedStage: StageSearching,
				Err:         errors.New("搜索失败"),
			},
		}
		report := NewScrapeReport(res, models.DefaultScrapeConfig(), end)
		if report.SessionID != sess.ID || report.Provenance != models.ProvenanceFallback {
			t.Errorf("报告 = %+v", report)
		}
		if report.FinalStage != string(StageFallbackAssembled) || report.FailedStage != string(StageSearching) || report.Error != "搜索失败" {
			t.Errorf("阶段 = %s / %s / %s", report.FinalStage, report.FailedStage, report.Error)
		}
		if report.Duration != 3 {
			t.Errorf("耗时 = %v", report.Duration)
		}
	})
}
