package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/config"
	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	forceInit       bool
	credentialEmail string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置文件管理",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "生成配置文件模板",
	Args:  cobra.MaximumNArgs(1),
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteTemplate(path, forceInit); err != nil {
			return err
		}
		utils.Infof("✅ 配置文件已生成: %s", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "验证配置文件和HTTP头部",
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.Info("🔍 验证配置...")
		hm, err := core.NewHeaderManager(appConfig.Headers, headers)
		if err != nil {
			return fmt.Errorf("创建HTTP头部管理器失败: %w", err)
		}
		if err := hm.ValidateAll(); err != nil {
			return fmt.Errorf("配置验证失败: %w", err)
		}

		utils.Info("✅ 配置验证通过!")
		file := appConfig.File
		if file == "" {
			file = "(未找到配置文件,使用默认值)"
		}
		fmt.Printf("配置文件: %s\n", file)
		fmt.Printf("数据库: %s\n", appConfig.Storage.Path)
		fmt.Printf("缓存有效期: %d小时\n", appConfig.Storage.CacheTTLHours)
		fmt.Printf("请求间隔: %.1f秒\n", appConfig.Scrape.RequestDelay)

		creds := appConfig.ResolveCredentials()
		switch {
		case creds.Present():
			fmt.Printf("登录凭据: %s (已配置)\n", creds.Email)
		case creds.Email != "":
			fmt.Printf("登录凭据: %s (缺少密码)\n", creds.Email)
		default:
			fmt.Println("登录凭据: 未配置,将使用合成数据")
		}

		safe := hm.GetSafeHeaders()
		names := make([]string, 0, len(safe))
		for name := range safe {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("当前有效的HTTP头部 (%d个):\n", len(names))
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, safe[name])
		}
		return nil
	},
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "管理系统钥匙串中的LinkedIn密码",
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "保存密码到系统钥匙串",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := resolveEmail()
		if email == "" {
			return fmt.Errorf("未指定邮箱, 请使用 --email 或在配置文件中设置 credentials.email")
		}

		password, err := readPassword(fmt.Sprintf("%s 的密码: ", email))
		if err != nil {
			return err
		}
		if err := config.SavePassword(email, password); err != nil {
			return err
		}
		utils.Infof("🔑 密码已保存到系统钥匙串: %s", email)
		return nil
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "从系统钥匙串删除密码",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := resolveEmail()
		if email == "" {
			return fmt.Errorf("未指定邮箱, 请使用 --email 或在配置文件中设置 credentials.email")
		}
		if err := config.DeletePassword(email); err != nil {
			return err
		}
		utils.Infof("🗑️  已删除 %s 的密码", email)
		return nil
	},
}

func resolveEmail() string {
	if email := strings.TrimSpace(credentialEmail); email != "" {
		return email
	}
	return strings.TrimSpace(appConfig.Credentials.Email)
}

// readPassword 终端下不回显输入, 管道输入时读取一行
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("读取密码失败: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "覆盖已存在的配置文件")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)

	credentialsCmd.PersistentFlags().StringVar(&credentialEmail, "email", "", "LinkedIn登录邮箱, 默认取配置文件")
	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
}
