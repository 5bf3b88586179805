package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/agentflow/internal/chat"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to NeuroFedge in the terminal",
	Long:  `Start an interactive NeuroFedge conversation. Type /exit or send EOF to leave.`,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx, logger)

	return chatLoop(ctx, chat.NewSession(a.gen, logger), cmd.InOrStdin(), cmd.OutOrStdout())
}

func chatLoop(ctx context.Context, conv *chat.Session, in io.Reader, out io.Writer) error {
	for _, m := range conv.Messages() {
		printMessage(out, m)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		}

		reply, err := conv.Send(ctx, line)
		if err != nil {
			return err
		}
		printMessage(out, reply)
	}
}

func printMessage(w io.Writer, m chat.Message) {
	switch m.Role {
	case chat.RoleModel:
		fmt.Fprintf(w, "NeuroFedge: %s\n", m.Content)
	case chat.RoleSystem:
		fmt.Fprintf(w, "* %s\n", m.Content)
	default:
		fmt.Fprintf(w, "you: %s\n", m.Content)
	}
}
