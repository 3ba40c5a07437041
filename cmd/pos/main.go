package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/application/session"
	"github.com/sangkips/salay-pos/internal/client/store"
	"github.com/sangkips/salay-pos/internal/config"
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/presentation/cli"
	"github.com/sangkips/salay-pos/pkg/logger"
)

const receiptWidth = 40

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal owns stdout; only warnings go to stderr.
	log, err := logger.New(logger.Config{Environment: cfg.App.Env, Level: "warn"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := store.New(cfg.Client.APIURL,
		store.WithTimeout(cfg.Client.Timeout),
		store.WithToken(cfg.Client.Token),
	)

	in := bufio.NewReader(os.Stdin)
	if cfg.Client.Token == "" && cfg.Client.Clerk != "" {
		if err := login(ctx, client, cfg.Client.Clerk, in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	loc := cfg.App.Location()
	s := session.New(client, loc, log)
	// the counter form opens with two rows
	s.AddLineItem()

	console := cli.NewConsole(s, os.Stdout, entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Tagline:  cfg.Shop.Tagline,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
		Footer:   cfg.Shop.Footer,
	}, loc, receiptWidth, 0)

	fmt.Printf("%s counter, connected to %s. Type help for commands.\n", cfg.Shop.Name, cfg.Client.APIURL)
	if err := console.Execute(ctx, "history"); err != nil {
		log.Warn("initial history load failed", zap.Error(err))
	}
	if err := console.Run(ctx, in); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func login(ctx context.Context, client *store.Client, clerk string, in *bufio.Reader) error {
	fmt.Printf("PIN for %s: ", clerk)
	pin, err := in.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read PIN: %w", err)
	}
	res, err := client.Login(ctx, clerk, strings.TrimSpace(pin))
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s until %s.\n", res.Clerk, res.ExpiresAt.Local().Format("Jan 2 03:04 PM"))
	return nil
}
