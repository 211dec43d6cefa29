package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// ReadCompaniesFromFile 从文件中读取公司名称列表,每行一个
// 空行和 # 开头的注释行被忽略,重复名称(不区分大小写)只保留第一次出现
func ReadCompaniesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开公司列表文件失败: %w", err)
	}
	defer file.Close()

	names := make([]string, 0)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := models.ValidateCompanyName(line); err != nil {
			Warnf("跳过无效公司名称 (行 %d): %v", lineNum, err)
			continue
		}

		key := strings.ToLower(line)
		if seen[key] {
			Debugf("跳过重复公司名称 (行 %d): %s", lineNum, line)
			continue
		}
		seen[key] = true
		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取公司列表文件失败: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("公司列表文件中没有有效的公司名称")
	}

	Infof("从文件加载了 %d 个公司", len(names))
	return names, nil
}

// SafeFileName 将公司名称转换为可用作文件名的形式
func SafeFileName(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 0x7f:
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "company"
	}
	return out
}
