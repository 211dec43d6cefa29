package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/httpapi"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP API服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		if err := ValidateAddr(addr); err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		svc, st, err := openService(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		timeout := time.Duration(appConfig.Server.RequestTimeout) * time.Second
		srv := httpapi.NewServer(addr, httpapi.Deps{Service: svc, Version: Version}, timeout)

		errCh := make(chan error, 1)
		go func() {
			utils.Infof("🚀 HTTP服务已启动: %s", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP服务异常退出: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("关闭HTTP服务失败: %w", err)
		}
		utils.Info("👋 HTTP服务已关闭")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "监听地址")
}
