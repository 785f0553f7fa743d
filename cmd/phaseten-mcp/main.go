package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	ptmcp "github.com/peterkuimelis/phaseten/internal/mcp"
)

func main() {
	port := flag.String("port", "9999", "TCP port for human player connections")
	seed := flag.Int64("seed", 0, "RNG seed for new games (0 for random)")
	flag.Parse()

	ptmcp.SetPort(*port)
	ptmcp.SetSeed(*seed)

	s := server.NewMCPServer("phaseten", "1.0.0")
	ptmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
