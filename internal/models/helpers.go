package models

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxCompanyNameLength 公司名称最大长度
const MaxCompanyNameLength = 200

// ValidateURL 验证URL
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("无效的URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" && parsed.Scheme != "socks5" {
		return fmt.Errorf("URL必须是HTTP、HTTPS或SOCKS5协议")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL必须包含主机名")
	}
	return nil
}

// ValidateCompanyName 验证公司名称
func ValidateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("公司名称不能为空")
	}
	if utf8.RuneCountInString(name) > MaxCompanyNameLength {
		return fmt.Errorf("公司名称过长,最多%d个字符", MaxCompanyNameLength)
	}
	return nil
}

// NewID 生成记录ID
func NewID() string {
	return generateID()
}

// generateID 生成唯一ID
func generateID() string {
	return uuid.New().String()
}
