package slack

import (
	"fmt"
	"strings"

	"github.com/practicehq/satbot/pkg/mathfmt"
	"github.com/practicehq/satbot/pkg/questions"
)

const (
	// clearActionID marks the button that deletes a posted question.
	// Its value is the literal "clear" token, never "letter:letter",
	// which is how the dispatcher tells the two intents apart.
	clearActionID = "clear_message"
	clearValue    = "clear"
)

// QuestionBlocks renders a question as a Block Kit message: a header
// section, an optional reading paragraph, the four answer buttons in
// fixed A-D order, and a trailing clear button.
//
// Each answer button carries a "<selected>:<correct>" value, so the
// correct answer travels with the button and no per-question state is
// kept anywhere.
func QuestionBlocks(q questions.Question) []Block {
	blocks := []Block{{
		Type: "section",
		Text: &Text{
			Type: "mrkdwn",
			Text: fmt.Sprintf("*Question:* %s\n*Domain:* %s\n*Difficulty:* %s",
				mathfmt.Sanitize(q.Body.Question), q.Domain, q.Difficulty),
		},
	}}

	if q.Body.HasParagraph() {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: "*Paragraph:*\n" + mathfmt.Sanitize(q.Body.Paragraph),
			},
		})
	}

	choices := []struct {
		letter string
		text   string
	}{
		{"A", q.Body.Choices.A},
		{"B", q.Body.Choices.B},
		{"C", q.Body.Choices.C},
		{"D", q.Body.Choices.D},
	}

	buttons := make([]Element, 0, len(choices))
	for _, c := range choices {
		buttons = append(buttons, Element{
			Type: "button",
			Text: Text{
				Type:  "plain_text",
				Text:  fmt.Sprintf("%s. %s", c.letter, mathfmt.Sanitize(c.text)),
				Emoji: true,
			},
			ActionID: "answer_" + strings.ToLower(c.letter),
			Value:    c.letter + ":" + q.Body.CorrectAnswer,
		})
	}

	return append(blocks,
		Block{Type: "actions", Elements: buttons},
		Block{Type: "actions", Elements: []Element{clearButton()}},
	)
}

func clearButton() Element {
	return Element{
		Type: "button",
		Text: Text{
			Type:  "plain_text",
			Text:  "🗑️ Clear",
			Emoji: true,
		},
		ActionID: clearActionID,
		Value:    clearValue,
	}
}
