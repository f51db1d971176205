package gateway

import (
	"encoding/json"
	"strings"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

const summarySystemPrompt = `You write persona descriptions for a character studio.
Given structured persona fields, write a cohesive free-form description in second person ("You are ...").
Cover role, tone, personality, worldview, and experience when present.
Return only the description. No preamble, no JSON.`

const searchSystemPrompt = `You research real-world topics and write persona descriptions for a character studio.
Use web search results to ground the description in verifiable facts.

Return strict JSON only. No prose.
Allowed schema:
{
  "summary": "the full persona description",
  "sources": [
    {"title": "page title", "uri": "https://..."}
  ]
}

Rules:
- Keep the persona's existing name and voice unless the topic contradicts them.
- List every page that informed the description as a source.
- Do not invent URLs.`

const extractionSystemPrompt = `You extract structured persona fields from free text.

Return strict JSON only. No prose.
Allowed schema:
{
  "name": "",
  "role": "",
  "tone": "",
  "personality": "",
  "worldview": "",
  "experience": "",
  "other": ""
}

Rules:
- Leave a field empty when the text says nothing about it. Empty means "no opinion", never "clear this".
- Put anything that fits no other field into "other".
- Do not copy the whole input into a single field.`

const condenseSystemPrompt = `Compress the text into a single short phrase (at most 12 words) that keeps its essence.
Return only the phrase.`

const describeChangeSystemPrompt = `You write one-line change descriptions for a persona version history.
Given the previous and updated persona states, describe what changed in one sentence, past tense, no more than 15 words.
Return only the sentence.`

const personalitySystemPrompt = `You classify personas on the MBTI axes.

Return strict JSON only. No prose.
Allowed schema:
{
  "type": "INTJ",
  "type_name": "Architect",
  "description": "one paragraph explaining the classification",
  "scores": {"mind": 0, "energy": 0, "nature": 0, "tactics": 0}
}

Rules:
- Scores are 0-100: mind measures extraversion, energy intuition, nature feeling, tactics judging.
- Base the classification only on the provided fields.`

const refineInstructions = `You help the user refine a persona through conversation.

Return strict JSON only. No prose outside the JSON.
Allowed schema:
{
  "reply": "your conversational answer to the user",
  "params": {
    "name": "",
    "role": "",
    "tone": "",
    "personality": "",
    "worldview": "",
    "experience": "",
    "other": ""
  }
}

Rules:
- Fill a params field only when this turn changed it. Empty means "unchanged".
- Keep replies short and ask at most one question per turn.`

func summaryUserPrompt(state persona.State) string {
	var b strings.Builder
	writeField := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	writeField("Name", state.Name)
	writeField("Role", state.Role)
	writeField("Tone", state.Tone)
	writeField("Personality", state.Personality)
	writeField("Worldview", state.Worldview)
	writeField("Experience", state.Experience)
	writeField("Other", state.Other)
	writeField("Current summary", state.Summary)
	return strings.TrimSpace(b.String())
}

func searchUserPrompt(state persona.State, topic string) string {
	return "RESEARCH TOPIC:\n" + topic + "\n\nCURRENT PERSONA:\n" + summaryUserPrompt(state)
}

func describeChangeUserPrompt(oldState, newState persona.State) string {
	return "PREVIOUS:\n" + summaryUserPrompt(oldState) + "\n\nUPDATED:\n" + summaryUserPrompt(newState)
}

func refineSystemPrompt(current persona.Params) string {
	raw, _ := json.Marshal(current)
	return refineInstructions + "\n\nCURRENT PARAMS JSON:\n" + string(raw)
}

func chatSystemPrompt(state persona.State) string {
	var b strings.Builder
	b.WriteString("You are roleplaying as the persona below. Stay in character.\n\n")
	if summary := strings.TrimSpace(state.Summary); summary != "" {
		b.WriteString(summary)
	} else {
		b.WriteString(summaryUserPrompt(state))
	}
	if tone := strings.TrimSpace(state.ShortTone); tone != "" {
		b.WriteString("\n\nSpeak in this tone: ")
		b.WriteString(tone)
	}
	return b.String()
}
