package ai

import (
	"strings"
	"testing"

	"github.com/hubertmaka/culinary-agent/internal/domain"
)

func TestBuildExtractorPrompt(t *testing.T) {
	tests := []struct {
		name     string
		source   domain.Source
		contains []string
		absent   []string
	}{
		{
			name:   "text",
			source: domain.SourceText,
			contains: []string{
				"<ROLE>",
				"<EXTRACTION_GUIDELINES>",
				"<ESTIMATIONS>",
				"<UNITS>",
				"<OUTPUT_FORMAT>",
				"g, kg, l, ml, tsp, tbsp, cup, piece",
				`{"type":"object"}`,
			},
			absent: []string{"<SOURCE_CONTEXT>"},
		},
		{
			name:     "url",
			source:   domain.SourceURL,
			contains: []string{"<SOURCE_CONTEXT>", "visible text of a recipe web page"},
		},
		{
			name:     "image",
			source:   domain.SourceImage,
			contains: []string{"<SOURCE_CONTEXT>", "photograph of a recipe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildExtractorPrompt(tt.source, `{"type":"object"}`)
			for _, s := range tt.contains {
				if !strings.Contains(prompt, s) {
					t.Errorf("BuildExtractorPrompt() did not contain expected string: %s", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(prompt, s) {
					t.Errorf("BuildExtractorPrompt() unexpectedly contained: %s", s)
				}
			}
		})
	}
}

func TestBuildChatPrompt(t *testing.T) {
	prompt := BuildChatPrompt()
	if !strings.Contains(prompt, "<ROLE>") || !strings.Contains(prompt, "<GUIDELINES>") {
		t.Errorf("BuildChatPrompt() missing sections: %s", prompt)
	}
}

func TestRenderChatInstruction(t *testing.T) {
	got := RenderChatInstruction("Test instruction: {language} {schema}", "polish", `{"content":"Soup"}`)
	want := `Test instruction: polish {"content":"Soup"}`
	if got != want {
		t.Errorf("RenderChatInstruction() = %q, want %q", got, want)
	}

	got = RenderChatInstruction(ChatInstructionTemplate, "english (US)", "{}")
	if strings.Contains(got, "{language}") || strings.Contains(got, "{schema}") {
		t.Errorf("placeholders left in %q", got)
	}
}
