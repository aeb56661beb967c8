package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	var (
		cfg       config
		sessionID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "session",
			Aliases:     []string{"s"},
			Usage:       "Session ID to resume (latest when omitted)",
			Destination: &sessionID,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Resume a session and continue the conversation",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, userCfg, err := cfg.bootstrap(ctx)
			if err != nil {
				return err
			}

			uc, repo, err := cfg.newUseCase(ctx, userCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			sess, turns, err := uc.Resume(ctx, model.SessionID(sessionID))
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Resumed %q (%s, %d turns)\n", sess.Title, sess.Model, len(turns))
			for _, turn := range turns {
				label := "you"
				if turn.Role == model.RoleAssistant {
					label = "assistant"
				}
				fmt.Fprintf(w, "[%s] %s\n", label, turn.Text)
			}

			return runChatLoop(ctx, c, uc, userCfg, sess)
		},
	}
}

const chatHelp = `Commands:
  /v [seconds]   ask a follow-up by voice
  /m, /model     show models, or switch: /model <provider/model>
  /ml            multi-line input, finish with a single "." line
  /help          this help
  exit, quit     leave the chat`

// runChatLoop drives the interactive follow-up loop on an open session.
// Every exchange is persisted before the next prompt is shown.
func runChatLoop(ctx context.Context, c *cli.Command, uc *session.UseCase, userCfg *model.Config, sess *model.Session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	w := c.Root().Writer
	fmt.Fprintf(w, "Follow-up questions? Type /help for commands, exit to quit.\n")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "":
			continue
		case input == "exit" || input == "quit":
			return nil
		case input == "/help":
			fmt.Fprintln(w, chatHelp)
			continue
		case input == "/m" || input == "/model" || strings.HasPrefix(input, "/m ") || strings.HasPrefix(input, "/model "):
			if err := handleModelSwitch(ctx, w, uc, sess, input); err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
			continue
		case input == "/v" || strings.HasPrefix(input, "/v "):
			if err := handleVoiceFollowup(ctx, w, uc, userCfg, sess, input); err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
			continue
		case input == "/ml":
			input = readMultiline(rl, w)
			if input == "" {
				continue
			}
		}

		stop := working("thinking")
		out, err := uc.Followup(ctx, sess.ID, input)
		stop()
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}

		printOutcome(w, userCfg, out)
	}

	return nil
}

// readMultiline collects lines until a lone "." terminator
func readMultiline(rl *readline.Instance, w io.Writer) string {
	fmt.Fprintln(w, "(multi-line mode, finish with a single \".\")")

	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func handleModelSwitch(ctx context.Context, w io.Writer, uc *session.UseCase, sess *model.Session, input string) error {
	_, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	if arg == "" {
		fmt.Fprintf(w, "Current model: %s\n", sess.Model)
		for i, entry := range model.Catalog() {
			fmt.Fprintf(w, "  %d. %-28s %s\n", i+1, entry.ID, entry.Description)
		}
		fmt.Fprintf(w, "Switch with /model <number> or /model <provider/model>\n")
		return nil
	}

	id := model.ModelID(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		catalog := model.Catalog()
		if n < 1 || n > len(catalog) {
			return goerr.New("no such model number", goerr.V("number", n))
		}
		id = catalog[n-1].ID
	}

	if err := uc.SwitchModel(ctx, sess.ID, id); err != nil {
		return err
	}
	sess.Model = id
	fmt.Fprintf(w, "Switched to %s\n", id)
	return nil
}

func handleVoiceFollowup(ctx context.Context, w io.Writer, uc *session.UseCase, userCfg *model.Config, sess *model.Session, input string) error {
	duration := 5 * time.Second
	if _, arg, ok := strings.Cut(input, " "); ok {
		if secs, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && secs > 0 {
			duration = time.Duration(secs) * time.Second
		}
	}

	fmt.Fprintf(w, "Recording for %s...\n", duration)
	out, err := uc.VoiceFollowup(ctx, sess.ID, duration)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "You said: %s\n", out.Question)
	printOutcome(w, userCfg, out)
	return nil
}
