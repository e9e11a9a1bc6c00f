package slack

// Block is one Block Kit layout block in an outbound message:
// a "section" with text, or an "actions" row of interactive elements.
type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Text is a Block Kit text object ("mrkdwn" or "plain_text").
type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Element is an interactive control inside an actions block.
// The bot only emits buttons.
type Element struct {
	Type     string `json:"type"`
	Text     Text   `json:"text"`
	ActionID string `json:"action_id"`
	Value    string `json:"value,omitempty"`
}

// SlashCommand is the part of a slash-command payload the bot acts on.
// It lives only for the duration of one fulfillment task.
type SlashCommand struct {
	ChannelID   string
	ResponseURL string
}

// Interaction is the decoded "payload" field of an inbound interaction
// webhook. Actions and Message are optional, depending on the subtype.
type Interaction struct {
	Type        string   `json:"type"`
	User        User     `json:"user"`
	Actions     []Action `json:"actions"`
	ResponseURL string   `json:"response_url"`
	Message     *Message `json:"message"`
	Channel     Channel  `json:"channel"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Action struct {
	Type     string `json:"type"`
	ActionID string `json:"action_id"`
	Value    string `json:"value"`
}

// Message identifies the channel message an interaction refers to,
// by its timestamp (Slack's message ID within a channel).
type Message struct {
	TS string `json:"ts"`
}

type Channel struct {
	ID string `json:"id"`
}
