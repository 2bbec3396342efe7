package guide

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyviking/internal/model"
)

const systemInstruction = `You are a friendly, clear, and helpful assistant designed for international students moving to Sweden.
Your tone should be: Warm, Simple, Supportive, Culturally sensitive, and Easy to understand for non-native English speakers.
Your purpose is to help users with practical daily life questions about moving to or living in Sweden.

Rules for Responses:
1. Speak in plain English unless the user chooses another language.
2. Do not use Swedish greetings or words unless specifically asked to translate or explain them. The interface shows a "Phrase of the Day" separately.
3. Always keep instructions simple for new international students.
4. Be extremely concise and precise. Keep answers short and actionable.
5. Do not use asterisks for formatting. Use dashes (-) for lists if needed.
6. Avoid long paragraphs. Use short sentences.
7. When asked ambiguous questions, ask for clarification politely.
8. Never provide legal or medical advice. Redirect to official sources instead.
9. If the user asks about their own details (like "when do I arrive?"), use the provided context.
10. Refer to yourself only as "your guide" or "guide".
11. For study visas or residence permits, base the answer only on the Swedish Migration Agency (Migrationsverket) and recommend https://www.migrationsverket.se/en/you-want-to-apply/study/higher-education.html

Context:
You are knowledgeable about Swedish culture, housing, weather, student life, and practical daily tasks.
You are friendly and welcoming to people from all cultures.
Focus on reducing anxiety for newcomers.
`

func userContext(p model.UserProfile) string {
	city := p.City
	if strings.TrimSpace(city) == "" {
		city = "Not specified"
	}
	inSweden := "No"
	if p.InSweden {
		inSweden = "Yes"
	}
	focus := "None specified"
	if len(p.FocusCategories) > 0 {
		focus = strings.Join(p.FocusCategories, ", ")
	}
	var b strings.Builder
	b.WriteString("\nUser Context:\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Username)
	fmt.Fprintf(&b, "Origin: %s\n", p.OriginCountry)
	fmt.Fprintf(&b, "City in Sweden: %s\n", city)
	fmt.Fprintf(&b, "Already in Sweden: %s\n", inSweden)
	fmt.Fprintf(&b, "Arrival Date: %s\n", p.ArrivalDate)
	fmt.Fprintf(&b, "Stay Duration: %s\n", p.StayDuration)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Focus Categories: %s\n", focus)
	fmt.Fprintf(&b, "Preferred Language: %s\n", p.PreferredLanguage)
	return b.String()
}

func guidePrompt(topic string, p model.UserProfile) string {
	return fmt.Sprintf(`Create a visual, structured guide about %q for a student from %s moving to Sweden.

Return ONLY valid JSON with this structure:
{
  "intro": "One concise sentence summarizing the topic.",
  "steps": [ { "title": "Short Step Title", "desc": "One sentence actionable instruction." } ],
  "checklist": [ "Short item 1", "Short item 2" ],
  "proTip": "One cultural secret or money-saving tip.",
  "sources": [ "Name of Official Agency (URL)" ]
}

Requirements:
- Concise, precise English. No Swedish words. No asterisks.
- "steps" should describe the process (3-5 steps).
- "checklist" should be 3-4 essential items.
- "sources" should be real, authoritative Swedish sources (e.g. Skatteverket, Migrationsverket, 1177).
- Tailored to a stay of %s.`, topic, p.OriginCountry, p.StayDuration)
}

func tasksPrompt(category string, exclude []string, count int) string {
	current := "none"
	if len(exclude) > 0 {
		current = strings.Join(exclude, ", ")
	}
	return fmt.Sprintf(`The user is an international student in Sweden.
Category: %q.
Current tasks they have: %s.

Generate %d NEW, DIFFERENT, actionable checklist tasks for this category that an international student should know or do.

Return ONLY valid JSON:
{ "tasks": ["Task 1", "Task 2"] }`, category, current, count)
}
