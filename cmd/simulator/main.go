package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	serverURL = flag.StringP("server", "s", "http://localhost:8080/alexa", "Skill endpoint URL")
	appID     = flag.StringP("app-id", "a", "", "Application ID to put in the session")
	phrase    = flag.StringP("phrase", "p", "", "Send a single phrase and exit")
	timeout   = flag.DurationP("timeout", "t", 10*time.Second, "HTTP timeout per event")
	verbose   = flag.BoolP("verbose", "v", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim := NewSimulator(&SimulatorConfig{
		ServerURL:     *serverURL,
		ApplicationID: *appID,
		Timeout:       *timeout,
	}, logger)

	if *phrase != "" {
		if err := sim.SendPhrase(*phrase); err != nil {
			logger.Fatal("Failed to send phrase", zap.Error(err))
		}
		return
	}

	runInteractiveMode(sim)
}

func runInteractiveMode(sim *Simulator) {
	fmt.Println("\nCognitunes Skill Simulator - Interactive Mode")
	fmt.Println("=============================================")
	fmt.Println("Commands:")
	fmt.Println("  launch                  - Open the skill")
	fmt.Println("  say <phrase>            - Send DialogIntent with a Phrase slot")
	fmt.Println("  empty                   - Send DialogIntent without a Phrase")
	fmt.Println("  help | stop | cancel    - Send the built-in intent")
	fmt.Println("  intent <name>           - Send an arbitrary intent")
	fmt.Println("  end                     - End the session")
	fmt.Println("  quit                    - Exit simulator")
	fmt.Println("")

	sim.RunInteractive(os.Stdin, os.Stdout)
}
