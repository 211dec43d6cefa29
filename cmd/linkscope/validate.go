package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/insights"
	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// ValidateCompany 验证公司名称
func ValidateCompany(name string) error {
	if err := models.ValidateCompanyName(name); err != nil {
		return fmt.Errorf("无效的公司名称: %w", err)
	}
	return nil
}

// ValidateBatchFlags 验证批量处理参数
func ValidateBatchFlags(file string, delay int) error {
	if strings.TrimSpace(file) == "" {
		return fmt.Errorf("公司列表文件路径不能为空")
	}
	if delay < 0 || delay > 3600 {
		return fmt.Errorf("批量延迟必须在0-3600秒之间,当前值: %d", delay)
	}
	return nil
}

// ValidateInsightsFlags 验证洞察参数并解析导出格式
func ValidateInsightsFlags(name string, competitors []string, format string) (insights.Format, error) {
	if err := ValidateCompany(name); err != nil {
		return "", err
	}
	if len(competitors) > core.MaxCompetitors {
		return "", fmt.Errorf("竞品最多%d个,当前: %d", core.MaxCompetitors, len(competitors))
	}
	for _, c := range competitors {
		if err := ValidateCompany(c); err != nil {
			return "", fmt.Errorf("竞品 %q: %w", c, err)
		}
	}
	return insights.ParseFormat(format)
}

// ValidateCompareArgs 验证对比的公司列表
func ValidateCompareArgs(names []string) error {
	if len(names) < core.MinCompare || len(names) > core.MaxCompare {
		return fmt.Errorf("对比需要%d-%d家公司,当前: %d", core.MinCompare, core.MaxCompare, len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := ValidateCompany(n); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(n))
		if seen[key] {
			return fmt.Errorf("重复的公司: %s", n)
		}
		seen[key] = true
	}
	return nil
}

// ValidateAddr 验证监听地址
func ValidateAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("无效的监听地址 %q: %w", addr, err)
	}
	return nil
}
