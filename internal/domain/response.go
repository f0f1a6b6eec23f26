package domain

import (
	"encoding/xml"
	"strings"
)

type SpeechType string

const (
	SpeechTypePlainText SpeechType = "PlainText"
	SpeechTypeSSML      SpeechType = "SSML"
)

const (
	CardTypeSimple  = "Simple"
	responseVersion = "1.0"
)

// ResponseEnvelope is what gets encoded back to the voice platform
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          *Response      `json:"response"`
}

// Response describes one utterance, an optional card and an optional reprompt
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type SpeechType `json:"type"`
	Text string     `json:"text,omitempty"`
	SSML string     `json:"ssml,omitempty"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech"`
}

// Speech builds an output speech, choosing SSML when the text is a <speak> document.
func Speech(text string) *OutputSpeech {
	if strings.HasPrefix(strings.TrimSpace(text), "<speak>") {
		return &OutputSpeech{Type: SpeechTypeSSML, SSML: text}
	}
	return &OutputSpeech{Type: SpeechTypePlainText, Text: text}
}

// SSML wraps a markup fragment in a speak element.
func SSML(fragment string) string {
	return "<speak>" + fragment + "</speak>"
}

// EscapeSSML escapes text so it can be embedded in SSML markup.
func EscapeSSML(text string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(text))
	return b.String()
}

// Tell ends the session after speaking.
func Tell(speech string) *Response {
	return &Response{
		OutputSpeech:     Speech(speech),
		ShouldEndSession: true,
	}
}

func TellWithCard(speech, cardTitle, cardContent string) *Response {
	resp := Tell(speech)
	resp.Card = &Card{Type: CardTypeSimple, Title: cardTitle, Content: cardContent}
	return resp
}

// Ask speaks and keeps the session open, reprompting if the user stays silent.
func Ask(speech, reprompt string) *Response {
	resp := &Response{
		OutputSpeech:     Speech(speech),
		ShouldEndSession: false,
	}
	if reprompt != "" {
		resp.Reprompt = &Reprompt{OutputSpeech: Speech(reprompt)}
	}
	return resp
}

func AskWithCard(speech, reprompt, cardTitle, cardContent string) *Response {
	resp := Ask(speech, reprompt)
	resp.Card = &Card{Type: CardTypeSimple, Title: cardTitle, Content: cardContent}
	return resp
}

// Envelope wraps a response for the wire. A nil response yields an empty body,
// which is what SessionEndedRequest expects.
func Envelope(resp *Response, attributes map[string]any) *ResponseEnvelope {
	if resp == nil {
		resp = &Response{ShouldEndSession: true}
	}
	return &ResponseEnvelope{
		Version:           responseVersion,
		SessionAttributes: attributes,
		Response:          resp,
	}
}
