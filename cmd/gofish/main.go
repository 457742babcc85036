package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/session"
	"github.com/calvinwijaya/go-fish-be/internal/store"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func main() {
	delay := flag.Duration("delay", session.DefaultComputerDelay, "Pause before the computer replies")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Debug("starting game", "seed", *seed)

	events := make(chan session.Event, 4)
	sessions := session.NewManager(store.NewMemoryStore(), *delay,
		session.WithRand(rand.New(rand.NewSource(*seed))),
		session.WithNotifier(session.NotifierFunc(func(e session.Event) { events <- e })),
	)
	defer sessions.Close()

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Go ", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("Fish", pterm.FgLightBlue.ToStyle()),
	).Render()

	state, err := sessions.NewGame()
	if err != nil {
		logger.Error("failed to deal", "error", err)
		os.Exit(1)
	}

	for {
		printState(state)

		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Ask for a rank (quit to leave)").Show()
		if err != nil {
			logger.Error("failed to read input", "error", err)
			os.Exit(1)
		}
		input = strings.TrimSpace(input)
		pterm.Println()
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") {
			if err := sessions.Quit(state.ID); err != nil {
				logger.Warn("quit", "error", err)
			}
			pterm.Info.Println("Thanks for playing!")
			return
		}

		turn, _, err := sessions.Ask(state.ID, input)
		if err != nil {
			pterm.Error.Printfln("Could not ask: %v", err)
			continue
		}
		<-events
		pterm.Info.Println(turnLine(turn))

		spinner, err := pterm.DefaultSpinner.Start("Computer is thinking ...")
		if err != nil {
			logger.Warn("spinner", "error", err)
		}
		reply := <-events
		if spinner != nil {
			spinner.Stop()
		}
		pterm.Info.Println(turnLine(reply.Turn))
		state = reply.State
	}
}
