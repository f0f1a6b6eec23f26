package domain

import (
	"encoding/json"
	"testing"
)

func TestTellAndAsk(t *testing.T) {
	tell := Tell("Goodbye")
	if !tell.ShouldEndSession || tell.Reprompt != nil {
		t.Error("tell should end the session without a reprompt")
	}
	if tell.OutputSpeech.Type != SpeechTypePlainText || tell.OutputSpeech.Text != "Goodbye" {
		t.Errorf("unexpected speech: %+v", tell.OutputSpeech)
	}

	ask := Ask("How are you?", "Still there?")
	if ask.ShouldEndSession {
		t.Error("ask should keep the session open")
	}
	if ask.Reprompt == nil || ask.Reprompt.OutputSpeech.Text != "Still there?" {
		t.Error("ask should carry the reprompt")
	}
}

func TestSpeech_DetectsSSML(t *testing.T) {
	speech := Speech(SSML(`<audio src="https://example.com/a.mp3"/>`))
	if speech.Type != SpeechTypeSSML || speech.Text != "" {
		t.Errorf("expected SSML speech, got %+v", speech)
	}
}

func TestEscapeSSML(t *testing.T) {
	if got := EscapeSSML(`a&b<c>"d"`); got != "a&amp;b&lt;c&gt;&#34;d&#34;" {
		t.Errorf("unexpected escape: %s", got)
	}
}

func TestEnvelope_WireShape(t *testing.T) {
	data, err := json.Marshal(Envelope(TellWithCard("hi", "Title", "Body"), nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if wire["version"] != "1.0" {
		t.Errorf("unexpected version: %v", wire["version"])
	}
	if _, ok := wire["sessionAttributes"]; ok {
		t.Error("empty session attributes should be omitted")
	}
	resp := wire["response"].(map[string]any)
	if resp["shouldEndSession"] != true {
		t.Error("expected shouldEndSession true")
	}
	card := resp["card"].(map[string]any)
	if card["type"] != "Simple" || card["title"] != "Title" {
		t.Errorf("unexpected card: %v", card)
	}
}

func TestIntent_SlotValue(t *testing.T) {
	intent := &Intent{Slots: map[string]Slot{"Phrase": {Name: "Phrase", Value: "  good day "}}}

	if v, ok := intent.SlotValue("Phrase"); !ok || v != "good day" {
		t.Errorf("unexpected slot value %q %v", v, ok)
	}
	if _, ok := intent.SlotValue("Other"); ok {
		t.Error("missing slot should not be filled")
	}
	var nilIntent *Intent
	if _, ok := nilIntent.SlotValue("Phrase"); ok {
		t.Error("nil intent should have no slots")
	}
}

func TestRequestEnvelope_ApplicationID(t *testing.T) {
	env := &RequestEnvelope{Context: &Context{System: SystemState{Application: Application{ApplicationID: "ctx-id"}}}}
	if env.ApplicationID() != "ctx-id" {
		t.Errorf("expected context application id, got %q", env.ApplicationID())
	}
	env.Session.Application.ApplicationID = "session-id"
	if env.ApplicationID() != "session-id" {
		t.Errorf("expected session application id, got %q", env.ApplicationID())
	}
}
