package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
}

// Connect connects to a server, sends the join handshake, and runs the REPL.
func Connect(ctx context.Context, addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	pterm.Info.Println("Connected! Waiting for the table to fill...")

	client := &Client{conn: conn}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(os.Stdin)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			renderEvent(msg.Event)

		case "choose_draw":
			renderState(msg.State)
			resp := readDrawChoice(reader, msg.State, msg.CanTakeDiscard)
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("send draw: %w", err)
			}

		case "propose_phase":
			renderState(msg.State)
			resp := readPhaseProposal(reader, msg.State)
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("send phase: %w", err)
			}

		case "choose_hit":
			renderState(msg.State)
			resp := readHitChoice(reader, msg.State, msg.Targets)
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("send hit: %w", err)
			}

		case "choose_discard":
			renderState(msg.State)
			idx := readCardIndex(reader, "Discard which card?", len(msg.State.Hand))
			if err := enc.Encode(ClientMessage{Type: "discard", Index: idx}); err != nil {
				return fmt.Errorf("send discard: %w", err)
			}

		case "game_over":
			pterm.DefaultBox.WithTitle("GAME OVER").WithTitleTopCenter().Println(msg.Result)
			return nil
		}
	}
}

// styleCard colors a card string by its color word.
func styleCard(name string) string {
	switch {
	case strings.HasSuffix(name, "Red"):
		return pterm.LightRed(name)
	case strings.HasSuffix(name, "Blue"):
		return pterm.LightBlue(name)
	case strings.HasSuffix(name, "Green"):
		return pterm.LightGreen(name)
	case strings.HasSuffix(name, "Yellow"):
		return pterm.LightYellow(name)
	case name == "Wild":
		return pterm.LightMagenta(name)
	case name == "Skip":
		return pterm.Gray(name)
	default:
		return name
	}
}

func renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	line := fmt.Sprintf("R%-2d T%-3d | %s", ev.Round, ev.Turn, ev.Details)
	if ev.Type == "Draw" && ev.Card != "" {
		line += fmt.Sprintf(" (%s)", styleCard(ev.Card))
	}
	fmt.Println(line)
}

func renderState(sv *StateView) {
	if sv == nil {
		return
	}

	var sb strings.Builder
	for i, p := range sv.Players {
		marker := "  "
		if i == sv.Current {
			marker = pterm.LightCyan("> ")
		}
		you := ""
		if i == sv.You {
			you = " (you)"
		}
		status := fmt.Sprintf("phase %d", p.Phase)
		if p.Completed {
			status = pterm.LightGreen(status + " ✓")
		}
		sb.WriteString(fmt.Sprintf("%s%s%s  %s  %d cards  %d pts\n",
			marker, p.Name, you, status, p.HandCount, p.Score))
		for _, ld := range p.LayDowns {
			styled := make([]string, len(ld.Cards))
			for j, card := range ld.Cards {
				styled[j] = styleCard(card)
			}
			sb.WriteString(fmt.Sprintf("      %s: %s\n", ld.Kind, strings.Join(styled, " · ")))
		}
	}
	sb.WriteString(fmt.Sprintf("\nDeck: %d   Discard: %s\n", sv.DeckCount, styleCard(sv.DiscardTop)))

	title := fmt.Sprintf("Round %d · Phase %d: %s", sv.Round, sv.Phase.Number, sv.Phase.Description)
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(strings.TrimRight(sb.String(), "\n"))

	if len(sv.Hand) > 0 {
		parts := make([]string, len(sv.Hand))
		for i, card := range sv.Hand {
			parts[i] = fmt.Sprintf("[%d] %s", i+1, styleCard(card))
		}
		fmt.Printf("Hand: %s\n", strings.Join(parts, "  "))
	}
}

func readDrawChoice(reader *bufio.Reader, sv *StateView, canTakeDiscard bool) ClientMessage {
	if !canTakeDiscard {
		fmt.Println("Drawing from the deck (discard pile unavailable).")
		return ClientMessage{Type: "draw", Source: "deck"}
	}
	for {
		fmt.Printf("Draw from (d)eck or take %s from the (p)ile? ", styleCard(sv.DiscardTop))
		line, _ := reader.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "d", "deck", "":
			return ClientMessage{Type: "draw", Source: "deck"}
		case "p", "pile", "discard":
			return ClientMessage{Type: "draw", Source: "discard"}
		}
		fmt.Println("Enter d or p")
	}
}

func readPhaseProposal(reader *bufio.Reader, sv *StateView) ClientMessage {
	fmt.Printf("Lay down %s?\n", sv.Phase.Description)
	if sv.Phase.Hint != "" {
		fmt.Printf("  (%s)\n", sv.Phase.Hint)
	}
	fmt.Printf("Enter %d group(s) of card numbers separated by ';', or press enter to pass\n", len(sv.Phase.Groups))
	for i, g := range sv.Phase.Groups {
		fmt.Printf("  group %d: %s\n", i+1, g)
	}

	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" || line == "pass" {
			return ClientMessage{Type: "phase", Pass: true}
		}

		parts := strings.Split(line, ";")
		if len(parts) != len(sv.Phase.Groups) {
			fmt.Printf("Need %d groups separated by ';'\n", len(sv.Phase.Groups))
			continue
		}
		groups := make([][]int, len(parts))
		ok := true
		for gi, part := range parts {
			for _, field := range strings.Fields(part) {
				n, err := strconv.Atoi(field)
				if err != nil || n < 1 || n > len(sv.Hand) {
					fmt.Printf("Card numbers must be between 1 and %d\n", len(sv.Hand))
					ok = false
					break
				}
				groups[gi] = append(groups[gi], n-1)
			}
			if !ok {
				break
			}
		}
		if ok {
			return ClientMessage{Type: "phase", Groups: groups}
		}
	}
}

func readHitChoice(reader *bufio.Reader, sv *StateView, targets []TargetView) ClientMessage {
	fmt.Println("Hit a card onto the table? Targets:")
	for _, t := range targets {
		styled := make([]string, len(t.Cards))
		for j, card := range t.Cards {
			styled[j] = styleCard(card)
		}
		fmt.Printf("  %d) %s's %s: %s\n", t.Index+1, t.Player, t.Group, strings.Join(styled, " · "))
	}
	fmt.Println("Enter '<target> <card>' or press enter to pass")

	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" || line == "pass" {
			return ClientMessage{Type: "hit", Pass: true}
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Println("Enter two numbers: target and card")
			continue
		}
		target, err1 := strconv.Atoi(fields[0])
		card, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil || target < 1 || target > len(targets) || card < 1 || card > len(sv.Hand) {
			fmt.Println("Target or card number out of range")
			continue
		}
		return ClientMessage{Type: "hit", Target: target - 1, CardIndex: card - 1}
	}
}

func readCardIndex(reader *bufio.Reader, prompt string, count int) int {
	for {
		fmt.Printf("%s (1-%d): ", prompt, count)
		line, _ := reader.ReadString('\n')
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > count {
			fmt.Printf("Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1
	}
}
