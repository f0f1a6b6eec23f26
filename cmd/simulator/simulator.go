package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL     string
	ApplicationID string
	Timeout       time.Duration
}

// Simulator plays the voice platform: it builds skill events and posts them
// to a running server, tracking the session between turns.
type Simulator struct {
	config *SimulatorConfig
	client *http.Client
	log    *zap.Logger

	sessionID  string
	newSession bool
	attributes map[string]any
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	s := &Simulator{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    log,
	}
	s.resetSession()
	return s
}

func (s *Simulator) resetSession() {
	s.sessionID = "SessionId." + uuid.NewString()
	s.newSession = true
	s.attributes = nil
}

// SendPhrase sends a DialogIntent carrying the phrase
func (s *Simulator) SendPhrase(phrase string) error {
	_, err := s.SendIntent("DialogIntent", map[string]string{"Phrase": phrase})
	return err
}

// SendIntent sends an IntentRequest with the given slot values
func (s *Simulator) SendIntent(name string, slots map[string]string) (*domain.ResponseEnvelope, error) {
	intent := &domain.Intent{Name: name, Slots: map[string]domain.Slot{}}
	for k, v := range slots {
		intent.Slots[k] = domain.Slot{Name: k, Value: v}
	}
	return s.send(domain.Request{Type: domain.RequestTypeIntent, Intent: intent})
}

func (s *Simulator) Launch() (*domain.ResponseEnvelope, error) {
	return s.send(domain.Request{Type: domain.RequestTypeLaunch})
}

func (s *Simulator) EndSession() (*domain.ResponseEnvelope, error) {
	return s.send(domain.Request{Type: domain.RequestTypeSessionEnded, Reason: "USER_INITIATED"})
}

func (s *Simulator) send(req domain.Request) (*domain.ResponseEnvelope, error) {
	req.RequestID = "EdwRequestId." + uuid.NewString()
	req.Timestamp = time.Now().UTC()
	req.Locale = "en-US"

	envelope := domain.RequestEnvelope{
		Version: "1.0",
		Session: domain.Session{
			SessionID:   s.sessionID,
			New:         s.newSession,
			Attributes:  s.attributes,
			Application: domain.Application{ApplicationID: s.config.ApplicationID},
			User:        domain.User{UserID: "amzn1.ask.account.simulator"},
		},
		Request: req,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	start := time.Now()
	resp, err := s.client.Post(s.config.ServerURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to post event: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out domain.ResponseEnvelope
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	s.log.Debug("Skill responded",
		zap.String("type", string(req.Type)),
		zap.Duration("latency", time.Since(start)),
	)

	s.newSession = false
	s.attributes = out.SessionAttributes
	if out.Response == nil || out.Response.ShouldEndSession {
		s.resetSession()
	}
	return &out, nil
}

// RunInteractive reads commands until quit or EOF
func (s *Simulator) RunInteractive(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var resp *domain.ResponseEnvelope
		var err error
		switch strings.ToLower(cmd) {
		case "quit", "exit":
			return
		case "launch":
			resp, err = s.Launch()
		case "say":
			resp, err = s.SendIntent("DialogIntent", map[string]string{"Phrase": arg})
		case "empty":
			resp, err = s.SendIntent("DialogIntent", nil)
		case "help":
			resp, err = s.SendIntent("AMAZON.HelpIntent", nil)
		case "stop":
			resp, err = s.SendIntent("AMAZON.StopIntent", nil)
		case "cancel":
			resp, err = s.SendIntent("AMAZON.CancelIntent", nil)
		case "intent":
			resp, err = s.SendIntent(arg, nil)
		case "end":
			resp, err = s.EndSession()
		default:
			fmt.Fprintf(out, "unknown command: %s\n", cmd)
			continue
		}

		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		printResponse(out, resp)
	}
}

func printResponse(out io.Writer, env *domain.ResponseEnvelope) {
	if env.Response == nil {
		fmt.Fprintln(out, "(empty response)")
		return
	}
	r := env.Response
	if r.OutputSpeech != nil {
		if r.OutputSpeech.Type == domain.SpeechTypeSSML {
			fmt.Fprintf(out, "speech (ssml): %s\n", r.OutputSpeech.SSML)
		} else {
			fmt.Fprintf(out, "speech: %s\n", r.OutputSpeech.Text)
		}
	}
	if r.Card != nil {
		fmt.Fprintf(out, "card:   %s - %s\n", r.Card.Title, r.Card.Content)
	}
	if r.Reprompt != nil && r.Reprompt.OutputSpeech != nil {
		fmt.Fprintf(out, "reprompt: %s\n", r.Reprompt.OutputSpeech.Text)
	}
	fmt.Fprintf(out, "session ends: %v\n", r.ShouldEndSession)
}
