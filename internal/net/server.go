package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
)

// Server hosts a game for TCP clients. The host occupies seat 0 and plays
// through an in-process pipe; every joiner gets the next seat.
type Server struct {
	Port     string
	HostName string
	Seats    int   // total players including the host
	Seed     int64 // RNG seed (0 for random)
	Scenario string
}

// Run starts the server, waits for the table to fill, then runs the game.
func (s *Server) Run(ctx context.Context) error {
	if s.Seats < game.MinPlayers || s.Seats > game.MaxPlayers {
		return fmt.Errorf("seats must be %d-%d, got %d", game.MinPlayers, game.MaxPlayers, s.Seats)
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	names := []string{s.HostName}
	conns := make([]net.Conn, 0, s.Seats-1)
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()

	for len(conns) < s.Seats-1 {
		fmt.Printf("Waiting for %d more player(s) on port %s...\n", s.Seats-1-len(conns), s.Port)
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}

		var joinMsg ClientMessage
		if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
			conn.Close()
			return fmt.Errorf("read join message: %w", err)
		}
		name := joinMsg.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", len(conns)+2)
		}
		fmt.Printf("%s joined from %s\n", name, conn.RemoteAddr())
		conns = append(conns, conn)
		names = append(names, name)
	}

	// Pipe for the host's local seat
	hostConn, hostServerConn := net.Pipe()

	controllers := make([]game.PlayerController, 0, s.Seats)
	netCtrls := make([]*NetworkController, 0, s.Seats)
	hostCtrl := NewNetworkController(hostServerConn, 0)
	controllers = append(controllers, hostCtrl)
	netCtrls = append(netCtrls, hostCtrl)
	for i, conn := range conns {
		nc := NewNetworkController(conn, i+1)
		controllers = append(controllers, nc)
		netCtrls = append(netCtrls, nc)
	}

	cfg := game.GameConfig{
		Names:  names,
		Seed:   s.Seed,
		Logger: log.NewTextLogger(os.Stdout),
	}
	if s.Scenario != "" {
		sc, err := game.LoadScenario(s.Scenario)
		if err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
		state, err := sc.BuildState()
		if err != nil {
			return fmt.Errorf("build scenario: %w", err)
		}
		if len(state.Players) != s.Seats {
			return fmt.Errorf("scenario has %d players, table has %d seats", len(state.Players), s.Seats)
		}
		cfg.State = state
	}

	g, err := game.NewGame(cfg, controllers...)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	errCh := make(chan error, 2)

	// Host's local REPL
	go func() {
		client := &Client{conn: hostConn}
		errCh <- client.RunREPL(ctx)
	}()

	go func() {
		winner, err := g.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("game error: %w", err)
			return
		}
		for _, nc := range netCtrls {
			_ = nc.SendGameOver(winner, g.State.Result)
		}
		errCh <- nil
	}()

	return <-errCh
}
