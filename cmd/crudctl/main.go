// crudctl 运维命令：建表、写入演示数据、查看统计
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-crud/internal/core/config"
	"go-gin-gorm-crud/internal/core/database"
	"go-gin-gorm-crud/internal/core/logger"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := &env{}
	if err := execute(ctx, newRootCmd(e), e); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute 无论子命令成功与否都释放 env；cobra 在 RunE 出错时不会调用 PersistentPostRunE
func execute(ctx context.Context, root *cobra.Command, e *env) error {
	err := root.ExecuteContext(ctx)
	if cerr := e.close(); err == nil {
		err = cerr
	}
	return err
}

// env 在 PersistentPreRunE 中初始化，子命令共享，由 execute 释放
type env struct {
	configPath string

	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	cleanup func()
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:          "crudctl",
		Short:        "Maintenance commands for the users/posts CRUD service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open()
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default: $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(newMigrateCmd(e))
	root.AddCommand(newSeedCmd(e))
	root.AddCommand(newStatsCmd(e))
	return root
}

func (e *env) open() error {
	cfg, err := config.Read(e.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		cleanup()
		return fmt.Errorf("open db: %w", err)
	}
	e.cfg, e.log, e.db, e.cleanup = cfg, log, db, cleanup
	return nil
}

func (e *env) close() error {
	if e.db == nil {
		return nil
	}
	err := database.Close(e.db)
	e.cleanup()
	e.db = nil
	return err
}
