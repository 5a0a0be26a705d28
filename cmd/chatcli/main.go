package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ai-chat-be/pkg/syncclient"

	"github.com/fatih/color"
)

var (
	userColor   = color.New(color.FgCyan, color.Bold)
	botColor    = color.New(color.FgGreen)
	noticeColor = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
)

func main() {
	serverURL := flag.String("server", "http://localhost:3001", "chat backend base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	model := flag.String("model", "mistral", "default model name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	ctx := context.Background()
	api := syncclient.NewHTTPClient(*serverURL, 120*time.Second)

	if _, err := api.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	client := syncclient.New(api, *model)
	if err := client.Bootstrap(ctx); err != nil {
		log.Fatalf("failed to load sessions: %v", err)
	}

	printSessions(client.State())
	noticeColor.Println("Commands: /new /list /select <n> /delete <n> /models /quit — anything else is sent as a message.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return

		case line == "/new":
			sess, err := client.NewChat(ctx)
			if err != nil {
				errColor.Printf("create failed: %v\n", err)
				continue
			}
			noticeColor.Printf("created %q\n", sess.Title)

		case line == "/list":
			printSessions(client.State())

		case line == "/models":
			models, err := client.Models(ctx)
			if err != nil {
				errColor.Printf("model listing failed: %v\n", err)
				continue
			}
			for _, m := range models {
				fmt.Println("  " + m)
			}

		case strings.HasPrefix(line, "/select "):
			state := client.State()
			if n, ok := sessionIndex(line, len(state.Sessions)); ok {
				client.SelectChat(state.Sessions[n].Id)
				printTranscript(client.State())
			} else {
				errColor.Println("no such session")
			}

		case strings.HasPrefix(line, "/delete "):
			state := client.State()
			if n, ok := sessionIndex(line, len(state.Sessions)); ok {
				if err := client.DeleteChat(ctx, state.Sessions[n].Id); err != nil {
					errColor.Printf("delete failed: %v\n", err)
				}
			} else {
				errColor.Println("no such session")
			}

		default:
			state, err := client.Send(ctx, line, "")
			if err != nil {
				errColor.Printf("turn not fully saved: %v\n", err)
			}
			if active, ok := state.Active(); ok && len(active.Messages) > 0 {
				last := active.Messages[len(active.Messages)-1]
				botColor.Println(last.Text)
			}
			if state.Unsynced {
				noticeColor.Println("(local transcript is ahead of the server)")
			}
		}
	}
}

func sessionIndex(line string, count int) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}

func printSessions(state syncclient.State) {
	if len(state.Sessions) == 0 {
		noticeColor.Println("no sessions yet — type a message to start one")
		return
	}
	for i, sess := range state.Sessions {
		marker := " "
		if sess.Id == state.ActiveId {
			marker = "*"
		}
		fmt.Printf("%s %2d. %s (%d messages)\n", marker, i+1, sess.Title, len(sess.Messages))
	}
}

func printTranscript(state syncclient.State) {
	active, ok := state.Active()
	if !ok {
		return
	}
	for _, msg := range active.Messages {
		if msg.IsUser {
			userColor.Println("you: " + msg.Text)
		} else {
			botColor.Println("bot: " + msg.Text)
		}
	}
}
