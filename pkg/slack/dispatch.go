package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/practicehq/satbot/pkg/questions"
)

// Dispatcher turns classified webhook events into outbound Slack actions.
// It keeps no state between events: every decision is a pure
// classification over the fields of one payload.
type Dispatcher struct {
	api *Client
	src *questions.Client
}

func NewDispatcher(api *Client, src *questions.Client) *Dispatcher {
	return &Dispatcher{api: api, src: src}
}

// FulfillSlashCommand runs the detached part of slash-command handling:
// fetch a question, post it to the invoking channel, then delete the
// transient loading message via the command's response URL. The caller
// has already acknowledged the command, so the steps run strictly in
// this order with no retries; an error is terminal for the task.
func (d *Dispatcher) FulfillSlashCommand(ctx context.Context, cmd SlashCommand) error {
	q, err := d.src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch question: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("question_id", q.ID).Str("domain", q.Domain).
		Msg("fetched question")

	if err := d.api.PostMessage(ctx, cmd.ChannelID, QuestionBlocks(q)); err != nil {
		return fmt.Errorf("failed to post question: %w", err)
	}

	if err := d.api.Respond(ctx, cmd.ResponseURL, map[string]any{"delete_original": true}); err != nil {
		return fmt.Errorf("failed to delete loading message: %w", err)
	}

	return nil
}

// HandleInteraction classifies an inbound interaction event and performs
// at most one outbound action. It returns the HTTP status code for the
// webhook response.
//
// The tolerate/reject asymmetry is deliberate: unsupported event types
// and events without actions are ignored with 200, but an answer button
// whose value lacks the ":" separator is a corrupted message the bot
// itself produced, so it is a server error.
func (d *Dispatcher) HandleInteraction(ctx context.Context, event Interaction) int {
	l := zerolog.Ctx(ctx)

	if event.Type != "block_actions" {
		l.Debug().Str("event_type", event.Type).Msg("ignoring unsupported interaction type")
		return http.StatusOK
	}

	if len(event.Actions) == 0 {
		l.Debug().Msg("ignoring interaction without actions")
		return http.StatusOK
	}
	action := event.Actions[0]

	if action.ActionID == clearActionID {
		return d.clearMessage(ctx, event)
	}

	if action.Value == "" {
		return http.StatusOK
	}

	selected, correct, found := strings.Cut(action.Value, ":")
	if !found {
		l.Error().Str("value", action.Value).Msg("invalid value format in button")
		return http.StatusInternalServerError
	}

	l.Debug().Str("selected", selected).Str("correct", correct).Msg("answer received")

	if err := d.api.Respond(ctx, event.ResponseURL, verdictMessage(event.User.ID, selected == correct)); err != nil {
		l.Err(err).Msg("failed to send answer feedback")
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// clearMessage deletes the channel message the clear button belongs to.
func (d *Dispatcher) clearMessage(ctx context.Context, event Interaction) int {
	l := zerolog.Ctx(ctx)

	if event.Message == nil {
		l.Warn().Str("channel_id", event.Channel.ID).
			Msg("bad request: clear action without a message reference")
		return http.StatusBadRequest
	}

	if err := d.api.DeleteMessage(ctx, event.Channel.ID, event.Message.TS); err != nil {
		l.Err(err).Msg("failed to delete message")
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// ephemeralMessage is the body of a response-URL reply that only the
// triggering user sees.
type ephemeralMessage struct {
	ResponseType string  `json:"response_type"`
	Blocks       []Block `json:"blocks"`
}

func verdictMessage(userID string, correct bool) ephemeralMessage {
	text := fmt.Sprintf("✅ Correct! Well done, <@%s>!", userID)
	if !correct {
		text = fmt.Sprintf("❌ Sorry <@%s>, that's not correct. Try again!", userID)
	}

	return ephemeralMessage{
		ResponseType: "ephemeral",
		Blocks: []Block{
			{Type: "section", Text: &Text{Type: "mrkdwn", Text: text}},
			{Type: "actions", Elements: []Element{clearButton()}},
		},
	}
}
