// Command machiavelli-client is the terminal client: it relays server
// messages to stdout and stdin lines back to the server. All rendering is
// plain text; the terminal does the rest.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FlorentCLMichel/Machiavelli/internal/protocol"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr string
		name string
	)

	cmd := &cobra.Command{
		Use:          "machiavelli-client",
		Short:        "Join a Machiavelli game",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			if addr == "" {
				addr = os.Getenv("MACHIAVELLI_ADDR")
			}
			if addr == "" {
				addr = "localhost:4321"
			}
			return play(addr, name)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "server address (default $MACHIAVELLI_ADDR, then localhost:4321)")
	cmd.Flags().StringVar(&name, "name", "", "player name (prompted when empty)")
	return cmd
}

func play(addr, name string) error {
	log := logrus.New()
	stdin := bufio.NewReader(os.Stdin)

	relay, err := protocol.Dial(addr)
	if err != nil {
		return err
	}
	defer relay.Close()
	log.WithField("addr", addr).Info("connected")

	for {
		if name == "" {
			fmt.Print("Your name: ")
			name, err = readLine(stdin)
			if err != nil {
				return err
			}
			continue
		}
		ok, msg, err := relay.Hello(name)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		if ok {
			break
		}
		name = ""
	}

	for {
		instr, payload, err := relay.NextInstruction()
		if err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		switch instr {
		case protocol.InstrPrint:
			fmt.Println(string(payload))
		case protocol.InstrClearPrint:
			fmt.Print("\x1b[2J\x1b[H")
			fmt.Println(string(payload))
		case protocol.InstrPrintReply:
			fmt.Println(string(payload))
			if err := reply(relay, stdin); err != nil {
				return err
			}
		case protocol.InstrReply:
			if err := reply(relay, stdin); err != nil {
				return err
			}
		case protocol.InstrClose:
			fmt.Println("The server closed the session. Bye!")
			return nil
		}
	}
}

func reply(relay *protocol.Relay, stdin *bufio.Reader) error {
	fmt.Print("> ")
	line, err := readLine(stdin)
	if err != nil {
		return err
	}
	return relay.Send([]byte(line))
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
