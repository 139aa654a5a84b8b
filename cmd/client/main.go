// Command client is a line-oriented terminal client for the game
// server. Server prompts are printed as they arrive; everything typed
// is sent as one line, with move input validated locally before it goes
// out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

var (
	host = flag.String("host", "127.0.0.1", "server host")
	port = flag.String("port", "5000", "server port")
)

func main() {
	flag.Parse()

	conn, err := net.Dial("tcp", net.JoinHostPort(*host, *port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not connect to server: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("[CONNECTED] Connected to server")

	go receive(conn)

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}

		if strings.EqualFold(line, "quit") {
			return
		}

		if strings.Contains(line, ",") && !validMove(line) {
			fmt.Println("Invalid move format. Use 'row,col' (e.g., '1,2')")
			continue
		}

		if _, err := fmt.Fprintln(conn, line); err != nil {
			return
		}
	}
}

// receive prints server messages until the server closes the
// connection, then exits the process: with the game over there is
// nothing left to type.
func receive(conn net.Conn) {
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fmt.Print(line)
		}
		if err != nil {
			fmt.Println("\n[DISCONNECTED] Disconnected from server")
			os.Exit(0)
		}
	}
}

func validMove(line string) bool {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return false
	}

	for _, part := range parts {
		if _, err := strconv.Atoi(strings.TrimSpace(part)); err != nil {
			return false
		}
	}

	return true
}
