package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"dicehall/internal/adapter/httpclient"
	"dicehall/internal/adapter/wsclient"
	"dicehall/internal/app/render"
	"dicehall/internal/app/session"
	"dicehall/internal/app/submit"
)

type config struct {
	ServerURL   string `env:"DICEHALL_SERVER_URL" envDefault:"http://localhost:8080"`
	DisplayName string `env:"DICEHALL_NAME"`
}

const commandHelp = `commands:
  <expr>                 roll a dice expression, e.g. 2d6+1
  r <expr>               same, explicitly
  rm <n>                 d100 with n reward dice (negative for penalty)
  rd <pc> <skill> [n]    skill roll against a sheet ("ra" works too)
  rh <expr>              hidden roll
  rav <...>              opposed roll (ravs for strict mode)
  sc <pc> <loss> [loss]  sanity check, or "sc <pc> <n>" to restore
  st <pc> <attr>         look an attribute up
  hp <pc> <adj>          adjust hit points, e.g. hp 3 -1d3`

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	in := bufio.NewScanner(os.Stdin)
	name := cfg.DisplayName
	if name == "" {
		fmt.Print("display name: ")
		if in.Scan() {
			name = strings.TrimSpace(in.Text())
		}
	}
	if name == "" {
		name = submit.DefaultDisplayName
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel, err := wsclient.Dial(ctx, cfg.ServerURL, name)
	if err != nil {
		log.Fatalf("connect channel: %v", err)
	}
	defer channel.Close()

	api := httpclient.New(cfg.ServerURL)
	sess := &session.Session{
		Channel: channel,
		Submit: submit.UseCase{
			Log:         api,
			Roller:      api,
			Channel:     channel,
			Lookup:      httpclient.NewAddressLookup(),
			DisplayName: name,
		},
		Present: printView,
	}

	go func() {
		if err := sess.KeepAlive(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("keepalive stopped: %v", err)
		}
	}()
	go func() {
		err := sess.Run(ctx)
		if err != nil {
			log.Printf("channel closed: %v", err)
		}
		cancel()
	}()

	fmt.Printf("connected to %s as %q, type a command (or \"help\")\n", cfg.ServerURL, name)
	for in.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "help" {
			fmt.Println(commandHelp)
			continue
		}

		if err := sess.SubmitText(ctx, line); err != nil {
			reportSubmitError(err)
		}
	}
	if err := in.Err(); err != nil {
		log.Printf("read input: %v", err)
	}
}

func reportSubmitError(err error) {
	if errors.Is(err, submit.ErrInvalidCommand) {
		fmt.Println("unrecognized command; type \"help\" for the command guide")
		return
	}
	var svcErr *httpclient.ServiceError
	if errors.As(err, &svcErr) {
		fmt.Printf("rejected: %s\n", svcErr.Error())
		return
	}
	log.Printf("submit failed: %v", err)
}

func printView(v render.View) {
	for _, block := range v.Blocks {
		if block.Title != "" {
			fmt.Println(block.Title)
		}
		for _, line := range block.Lines {
			fmt.Println("  " + line)
		}
	}
	fmt.Println()
}
