// Command plex-client is a small CLI for inspecting a Plex Media Server.
//
// The auth token can be provided via:
//   - --token flag (least secure, visible in process list)
//   - PLEX_TOKEN environment variable or the config file (recommended)
//   - stdin prompt (if neither flag, env var, nor config is set)
//
// Usage:
//
//	plex-client --server http://10.0.0.97:32400 info
//	plex-client clients
//	plex-client search "the wire" --type episode
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	intlog "github.com/smnsjas/go-plex/internal/log"
	"github.com/smnsjas/go-plex/media"
	"github.com/smnsjas/go-plex/plex"
)

var (
	flagServer   string
	flagToken    string
	flagConfig   string
	flagTimeout  time.Duration
	flagInsecure bool
	flagVerbose  bool
	flagType     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "plex-client",
		Short:         "Inspect a Plex Media Server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "server base URL (default from config or http://localhost:32400)")
	rootCmd.PersistentFlags().StringVarP(&flagToken, "token", "t", "", "auth token (use PLEX_TOKEN env var instead)")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", false, "skip TLS certificate verification (testing only)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every request")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show server identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Name:     %s\n", srv.FriendlyName)
			fmt.Printf("Machine:  %s\n", srv.MachineIdentifier)
			fmt.Printf("Version:  %s\n", srv.Version)
			fmt.Printf("Platform: %s %s\n", srv.Platform, srv.PlatformVersion)
			fmt.Printf("Sign-in:  %s\n", srv.MyPlexSigninState)
			fmt.Printf("Transcoder sessions: %d\n", srv.TranscoderActiveVideoSessions)
			return nil
		},
	}

	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "List connected player clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			clients, err := srv.Clients(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range clients {
				fmt.Printf("%-30s %s (%s)\n", c.Name, c.BaseURL, c.Product)
			}
			return nil
		},
	}

	playlistsCmd := &cobra.Command{
		Use:   "playlists",
		Short: "List playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			items, err := srv.Playlists(cmd.Context())
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			items, err := srv.Search(cmd.Context(), args[0], flagType)
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}
	searchCmd.Flags().StringVar(&flagType, "type", "", "only show results of this media type")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List active playback sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			items, err := srv.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List watched history",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			items, err := srv.History(cmd.Context())
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, clientsCmd, playlistsCmd, searchCmd, sessionsCmd, historyCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect resolves configuration and dials the server.
func connect(ctx context.Context) (*plex.Server, error) {
	cfg, err := plex.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.BaseURL = strings.TrimRight(flagServer, "/")
	}
	if flagToken != "" {
		cfg.Token = flagToken
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	if flagInsecure {
		cfg.InsecureSkipVerify = true
	}

	if cfg.Token == "" {
		token, err := promptToken()
		if err != nil {
			return nil, err
		}
		cfg.Token = token
	}

	return plex.Connect(ctx, cfg, plex.WithLogger(newLogger()))
}

// promptToken reads the token from the terminal without echoing it.
// A server without authentication is reachable with an empty token.
func promptToken() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}
	fmt.Fprint(os.Stderr, "Token (empty for none): ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(intlog.NewRedactingHandler(handler))
}

func printItems(items []media.Entity) {
	for _, item := range items {
		fmt.Printf("%-10s %s\n", item.EntityType(), item.EntityTitle())
	}
}
