package questions

// nullSentinel is how the content API encodes absent optional fields:
// the literal string "null", not a JSON null.
const nullSentinel = "null"

// Question is one SAT practice question as served by the content API.
// Immutable once fetched.
type Question struct {
	ID         string  `json:"id"`
	Domain     string  `json:"domain"`
	Difficulty string  `json:"difficulty"`
	Visuals    Visuals `json:"visuals"`
	Body       Body    `json:"question"`
}

// Body holds the actual prompt, answer choices, and solution details.
type Body struct {
	Paragraph     string  `json:"paragraph"`
	Question      string  `json:"question"`
	Choices       Choices `json:"choices"`
	CorrectAnswer string  `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
}

// Choices are the four answer options. A question always has exactly four.
type Choices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Visuals describes an optional SVG illustration attached to a question.
// The API sends the "null" sentinel for both fields when there is none.
// Parsed for shape tolerance, currently never rendered.
type Visuals struct {
	Type       string `json:"type"`
	SVGContent string `json:"svg_content"`
}

// HasParagraph reports whether the question carries a reading paragraph.
// The API encodes absence as the "null" sentinel string.
func (b Body) HasParagraph() bool {
	return b.Paragraph != "" && b.Paragraph != nullSentinel
}
