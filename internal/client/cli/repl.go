package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Token(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Handler errors are already reported by the handlers.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("hookctl> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: ping, get <id>, delete <id>, restore <id>, token, exit")

		case "ping":
			_ = a.Ping(ctx)

		case "token":
			_ = a.Token(ctx)

		case "get", "delete", "restore":
			if len(args) != 1 {
				printlnFn("Usage:", cmd, "<id>")
				continue
			}
			switch cmd {
			case "get":
				_ = a.Get(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0])
			case "restore":
				_ = a.Restore(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
