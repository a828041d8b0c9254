package main

import (
	"fmt"
	"time"

	"vida-fed/pkg/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "签发调用管理接口的 JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("jwt.secret is not configured")
			}
			if ttl <= 0 {
				ttl = cfg.JWT.ExpireDuration()
			}

			token, err := utils.GenerateToken(utils.TokenOptions{
				Secret: cfg.JWT.Secret,
				Issuer: cfg.App.Name,
				TTL:    ttl,
			}, subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "ops", "令牌主体")
	cmd.Flags().StringVarP(&role, "role", "r", utils.RoleAdmin, "角色")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "有效期，默认取 jwt.expire_hours")
	return cmd
}
