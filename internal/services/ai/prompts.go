package ai

import (
	"fmt"
	"strings"

	"github.com/hubertmaka/culinary-agent/internal/domain"
)

const extractorRoleSection = `<ROLE>
You are a culinary assistant that turns recipes into structured data. You receive a recipe as plain text, as the visible text of a web page, or as a photograph, and you return a single JSON object describing it.
</ROLE>`

const extractionGuidelinesSection = `<EXTRACTION_GUIDELINES>
1. content:
   - The full preparation method as plain text, in the order the source gives it
   - Keep the language of the source
   - Leave out advertising, comments, navigation and anything unrelated to cooking

2. ingredients:
   - One entry per ingredient, in the order they appear
   - Each entry is "<quantity> <unit> <name>", for example "200 g spaghetti"
   - Keep the quantity the source states; do not scale servings

3. preparationTimeInMinutes:
   - Total active and passive time in whole minutes
   - 0 when the source gives no time at all
   - Never more than 10080 (one week)
</EXTRACTION_GUIDELINES>`

const estimationSection = `<ESTIMATIONS>
Use aiEstimations for everything you infer rather than read:
- additionalIngredients: staples the method clearly needs but the list omits (salt, oil, water)
- estimatedPreparationTimeMinutes: your own estimate when the source time is missing or clearly wrong
Return an empty aiEstimations list when nothing had to be inferred.
</ESTIMATIONS>`

const unitsSectionTemplate = `<UNITS>
Express quantities with these units only: %s.
Convert imperial measurements to the closest metric unit.
</UNITS>`

const outputFormatTemplate = `<OUTPUT_FORMAT>
Respond with one JSON object and nothing else: no markdown, no code fences, no commentary.
The object must validate against this JSON Schema:
%s
</OUTPUT_FORMAT>`

const chatRoleSection = `<ROLE>
You are a friendly cooking companion. The user is cooking the recipe given in the conversation and asks you questions while doing so. Your answers are read aloud by a speech synthesizer.
</ROLE>`

const chatGuidelinesSection = `<GUIDELINES>
- Answer only questions about the recipe, its ingredients, substitutions and cooking techniques
- Keep answers short: two to four sentences unless the user asks for detail
- Write plain spoken text: no markdown, lists, emojis or special characters
- Spell out numbers and units the way a person would say them
- If a question is unrelated to cooking, politely steer back to the recipe
</GUIDELINES>`

// ChatInstructionTemplate is the final user turn of every chat call.
const ChatInstructionTemplate = `Answer in {language}. Use the following recipe as the context of this conversation:
{schema}`

func getSourceContext(source domain.Source) string {
	switch source {
	case domain.SourceURL:
		return `<SOURCE_CONTEXT>
The input is the visible text of a recipe web page. Expect navigation labels, cookie notices, author stories and reader comments around the recipe; ignore all of them.
</SOURCE_CONTEXT>`
	case domain.SourceImage:
		return `<SOURCE_CONTEXT>
The input is a photograph of a recipe, for example a cookbook page or a handwritten card. Read all legible text; do not guess words you cannot read.
</SOURCE_CONTEXT>`
	default:
		return ""
	}
}

// BuildExtractorPrompt builds the system prompt for the extraction agent.
// schema is the JSON Schema the answer must satisfy.
func BuildExtractorPrompt(source domain.Source, schema string) string {
	var sb strings.Builder
	sb.WriteString(extractorRoleSection)
	sb.WriteString("\n\n")

	if sCtx := getSourceContext(source); sCtx != "" {
		sb.WriteString(sCtx)
		sb.WriteString("\n\n")
	}

	sb.WriteString(extractionGuidelinesSection)
	sb.WriteString("\n\n")
	sb.WriteString(estimationSection)
	sb.WriteString("\n\n")

	units := make([]string, 0, len(domain.Units()))
	for _, u := range domain.Units() {
		units = append(units, string(u))
	}
	sb.WriteString(fmt.Sprintf(unitsSectionTemplate, strings.Join(units, ", ")))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(outputFormatTemplate, schema))

	return sb.String()
}

// BuildChatPrompt builds the system prompt for the chat agent.
func BuildChatPrompt() string {
	return chatRoleSection + "\n\n" + chatGuidelinesSection
}

// RenderChatInstruction fills the {language} and {schema} placeholders.
func RenderChatInstruction(template, language, schema string) string {
	return strings.NewReplacer("{language}", language, "{schema}", schema).Replace(template)
}
