package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	guildsettings "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings"
)

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage blacklisted users and guilds",
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Stop the bot from answering a user or guild",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withSettings(func(ctx context.Context, repo guildsettings.Repository) error {
			if err := repo.AddToBlacklist(ctx, guildsettings.BlacklistInput{ID: args[0]}); err != nil {
				return err
			}
			fmt.Printf("Blacklisted %s\n", args[0])
			return nil
		})
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Lift a blacklist entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withSettings(func(ctx context.Context, repo guildsettings.Repository) error {
			if err := repo.RemoveFromBlacklist(ctx, guildsettings.BlacklistInput{ID: args[0]}); err != nil {
				return err
			}
			fmt.Printf("Removed %s from the blacklist\n", args[0])
			return nil
		})
	},
}

var blacklistCheckCmd = &cobra.Command{
	Use:   "check [id...]",
	Short: "Report whether any of the ids is blacklisted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withSettings(func(ctx context.Context, repo guildsettings.Repository) error {
			out, err := repo.IsBlacklisted(ctx, guildsettings.IsBlacklistedInput{IDs: args})
			if err != nil {
				return err
			}
			fmt.Printf("Blacklisted: %t\n", out.Blacklisted)
			return nil
		})
	},
}

func init() {
	blacklistCmd.AddCommand(blacklistAddCmd)
	blacklistCmd.AddCommand(blacklistRemoveCmd)
	blacklistCmd.AddCommand(blacklistCheckCmd)
}

func withSettings(fn func(ctx context.Context, repo guildsettings.Repository) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cleanup, err := openRedis(ctx, cfg.Redis, true)
	if err != nil {
		return err
	}
	defer cleanup()

	repo, err := openSettings(client)
	if err != nil {
		return err
	}

	return fn(ctx, repo)
}
