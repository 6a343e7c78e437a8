package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tylerchilds/textvault/internal/chat"
	"github.com/tylerchilds/textvault/internal/chatdb"
	"github.com/tylerchilds/textvault/internal/config"
	"github.com/tylerchilds/textvault/internal/rules"
)

var version = "0.1.0-dev"

var debug bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "textvault",
		Short: "textvault - pull iMessage history into per-chat message tables",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(pathsCmd())
	rootCmd.AddCommand(chatsCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(pullCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(map[string]interface{}{
				"version": version,
			})
		},
	}
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print textvault application paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return printJSON(map[string]interface{}{
				"app_dir":    cfg.AppDir,
				"data_dir":   cfg.DataDir,
				"chats_path": cfg.ChatsPath,
				"chat_db":    chatDBPath(cfg),
			})
		},
	}
}

func chatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List chats declared in the chats file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			chats, _, err := config.LoadChats(cfg.ChatsPath)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(chats))
			for name := range chats {
				names = append(names, name)
			}
			sort.Strings(names)
			return printJSON(map[string]interface{}{
				"chats": names,
			})
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print chat.db statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := chatdb.Open(chatDBPath(config.Load()))
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.Stats()
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

func pullCmd() *cobra.Command {
	var userName string
	var raw bool

	cmd := &cobra.Command{
		Use:   "pull <chat>",
		Short: "Pull new messages for a declared chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			chats, configuredUser, err := config.LoadChats(cfg.ChatsPath)
			if err != nil {
				return err
			}

			conv, ok := chats[args[0]]
			if !ok {
				return fmt.Errorf("chat %q is not declared in %s", args[0], cfg.ChatsPath)
			}

			if userName == "" {
				userName = configuredUser
			}

			session, err := chat.Open(conv, cfg.DataDir, chatDBPath(cfg), userName)
			if err != nil {
				return err
			}
			defer session.Close()

			pulled := len(session.Messages())
			if !raw {
				session.ApplyRules(
					rules.RemoveNonStandard(),
					rules.RemoveLinks(),
					rules.RemoveNonAlphanumeric(),
				)
			}

			return printJSON(map[string]interface{}{
				"chat":          args[0],
				"data_dir":      session.DataDir(),
				"new_messages":  pulled,
				"after_rules":   len(session.Messages()),
				"rules_applied": !raw,
				"user_display":  session.UserName(),
			})
		},
	}

	cmd.Flags().StringVar(&userName, "user-name", "", "label for your own messages (default from chats file, else \"You\")")
	cmd.Flags().BoolVar(&raw, "raw", false, "skip the stock rules pipeline")
	return cmd
}

func chatDBPath(cfg *config.Config) string {
	if cfg.ChatDB != "" {
		return cfg.ChatDB
	}
	return chatdb.DefaultPath()
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
