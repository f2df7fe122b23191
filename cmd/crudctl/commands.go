package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/core/cache"
	"go-gin-gorm-crud/internal/core/refresh"
	"go-gin-gorm-crud/internal/repo"
	"go-gin-gorm-crud/internal/seed"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and posts tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := repo.Migrate(e.db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrated users, posts")
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all users and posts with the demo data set",
		Long: `Seed deletes every post, then every user, and creates Alice (2 posts),
Bob (1 post) and Charlie (no posts). Everything runs in one transaction.

Tables are auto-migrated first when db.autoMigrate is enabled. When redis.addr
is set, the cached users and posts lists are invalidated afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.DB.AutoMigrate {
				if err := repo.Migrate(e.db.WithContext(cmd.Context())); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			sum, err := seed.Run(cmd.Context(), repo.NewStore(e.db), e.log)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			invalidateLists(cmd.Context(), e)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts (removed %d users, %d posts)\n",
				sum.Users, sum.Posts, sum.DeletedUsers, sum.DeletedPosts)
			return nil
		},
	}
}

// invalidateLists 与 API 进程同样的接法：hub 通知两个视图过期，由 InvalidateCache 删列表缓存。
// redis 不可用只告警，数据已经写入，缓存最迟在 ttl 后过期。
func invalidateLists(ctx context.Context, e *env) {
	if e.cfg.Redis.Addr == "" {
		return
	}
	rc := cache.New(e.cfg.Redis.Addr, e.cfg.Redis.Password, e.cfg.Redis.DB)
	defer func() { _ = rc.Close() }()

	hub := refresh.NewHub()
	acts := action.New(repo.NewStore(e.db), e.log,
		action.WithNotifier(hub),
		action.WithCache(rc, time.Duration(e.cfg.Redis.TTLSec)*time.Second))
	hub.Subscribe(refresh.ViewAll, acts.InvalidateCache)
	hub.Stale(ctx, refresh.ViewPosts, refresh.ViewUsers)
	e.log.Debug("list cache invalidation sent", zap.String("addr", e.cfg.Redis.Addr))
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print user, post and published post counts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := action.New(repo.NewStore(e.db), e.log).Stats(cmd.Context())
			out, err := json.MarshalIndent(o, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if !o.Success {
				return errors.New(o.Error)
			}
			return nil
		},
	}
}
