package rest

import (
	"encoding/xml"
	"fmt"
	"net/http"
)

// twimlResponse is the voice-script document the telephony provider
// fetches during call setup. Marshaling through encoding/xml escapes
// every interpolated value, so free-text industry and use-case names
// cannot break the document.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Intro   twimlSay
	Pause1  twimlPause
	Body    twimlSay
	Pause2  twimlPause
	Outro   twimlSay
}

type twimlSay struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr"`
	Text    string   `xml:",chardata"`
}

type twimlPause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

// handleTwiML processes GET /twiml. It is stateless: everything it needs
// arrives as query parameters set by the dispatcher.
func (h *Handler) handleTwiML(w http.ResponseWriter, r *http.Request) {
	industryName := r.URL.Query().Get("industryName")
	if industryName == "" {
		industryName = "your industry"
	}
	useCaseName := r.URL.Query().Get("useCaseName")
	if useCaseName == "" {
		useCaseName = "your workflow"
	}
	requestID := r.URL.Query().Get("requestId")

	doc := twimlResponse{
		Intro: twimlSay{
			Voice: "alice",
			Text:  fmt.Sprintf("Hello. This is the voice agent demo. You selected %s and %s.", industryName, useCaseName),
		},
		Pause1: twimlPause{Length: 1},
		Body: twimlSay{
			Voice: "alice",
			Text:  "This is a demo call. In production, the agent would run the full workflow using your systems and policies.",
		},
		Pause2: twimlPause{Length: 1},
		Outro: twimlSay{
			Voice: "alice",
			Text:  fmt.Sprintf("Reference ID %s. Thank you.", requestID),
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		http.Error(w, "failed to render voice script", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	w.Write(out)
}
