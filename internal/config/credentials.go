package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/zalando/go-keyring"
)

// ResolveCredentials 解析登录凭据
// 密码优先取配置/环境变量,其次取系统钥匙串 (服务名 linkscope, 账号为邮箱)
// 钥匙串不可用时返回缺少密码的凭据,由会话层按凭据缺失处理
func (c *Config) ResolveCredentials() models.Credentials {
	creds := models.Credentials{
		Email:    strings.TrimSpace(c.Credentials.Email),
		Password: c.Credentials.Password,
	}
	if creds.Email == "" || creds.Password != "" {
		return creds
	}

	password, err := keyring.Get(AppName, creds.Email)
	switch {
	case err == nil:
		creds.Password = password
		utils.Debugf("🔑 已从系统钥匙串读取密码")
	case errors.Is(err, keyring.ErrNotFound):
		utils.Debugf("系统钥匙串中没有 %s 的密码", creds.Email)
	default:
		utils.Warnf("⚠️  读取系统钥匙串失败: %v", err)
	}
	return creds
}

// SavePassword 把密码存入系统钥匙串
func SavePassword(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("邮箱不能为空")
	}
	if password == "" {
		return fmt.Errorf("密码不能为空")
	}
	if err := keyring.Set(AppName, email, password); err != nil {
		return fmt.Errorf("写入系统钥匙串失败: %w", err)
	}
	return nil
}

// DeletePassword 从系统钥匙串删除密码,不存在时不报错
func DeletePassword(email string) error {
	err := keyring.Delete(AppName, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("删除钥匙串条目失败: %w", err)
	}
	return nil
}
