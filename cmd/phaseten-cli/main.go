package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
	ptnet "github.com/peterkuimelis/phaseten/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "local":
		runLocal(os.Args[2:])
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  phaseten local [--players NAMES] [--seed N] [--scenario FILE]")
	fmt.Println("  phaseten host [--port P] [--seats N] [--name NAME] [--seed N] [--scenario FILE]")
	fmt.Println("  phaseten join [--addr ADDR] [--name NAME]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  local   Play a hot-seat game at one terminal")
	fmt.Println("  host    Start a game server and play as seat 0")
	fmt.Println("  join    Connect to a game server")
}

func runLocal(args []string) {
	fs := flag.NewFlagSet("local", flag.ExitOnError)
	players := fs.String("players", "Alice,Bob", "comma-separated player names")
	seed := fs.Int64("seed", 0, "RNG seed (0 for random)")
	scenario := fs.String("scenario", "", "path to a scenario YAML file")
	fs.Parse(args)

	names := splitNames(*players)
	cfg := game.GameConfig{
		Names:  names,
		Seed:   *seed,
		Logger: log.NewTextLogger(os.Stdout),
	}
	if *scenario != "" {
		sc, err := game.LoadScenario(*scenario)
		if err != nil {
			fatal(err)
		}
		state, err := sc.BuildState()
		if err != nil {
			fatal(err)
		}
		cfg.Names = nil
		for _, p := range state.Players {
			cfg.Names = append(cfg.Names, p.Name)
		}
		cfg.State = state
	}

	reader := bufio.NewReader(os.Stdin)
	var ctrls []game.PlayerController
	for i, name := range cfg.Names {
		ctrls = append(ctrls, ptnet.NewConsoleController(i, name, reader))
	}

	g, err := game.NewGame(cfg, ctrls...)
	if err != nil {
		fatal(err)
	}
	if _, err := g.Run(context.Background()); err != nil {
		fatal(err)
	}
	fmt.Println(g.State.Result)
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "4242", "TCP port to listen on")
	seats := fs.Int("seats", 2, "total players including the host")
	name := fs.String("name", "Host", "host player name")
	seed := fs.Int64("seed", 0, "RNG seed (0 for random)")
	scenario := fs.String("scenario", "", "path to a scenario YAML file")
	fs.Parse(args)

	srv := &ptnet.Server{
		Port:     *port,
		HostName: *name,
		Seats:    *seats,
		Seed:     *seed,
		Scenario: *scenario,
	}

	if err := srv.Run(context.Background()); err != nil {
		fatal(err)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:4242", "server address to connect to")
	name := fs.String("name", "", "player name")
	fs.Parse(args)

	if err := ptnet.Connect(context.Background(), *addr, *name); err != nil {
		fatal(err)
	}
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
