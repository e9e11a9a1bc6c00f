// Package mathfmt converts the constrained LaTeX-style markup used by the
// SAT content API into plain Unicode text that is safe to embed in Slack
// mrkdwn fields.
package mathfmt

import "strings"

// markup rewrites math notation in a single left-to-right pass. Pattern
// order matters: delimiter-opening tokens like `\frac{` and the `}{`
// fraction separator must take precedence over the bare `}` rewrite,
// otherwise nested braces are mis-matched. [strings.Replacer] tries
// patterns in argument order at each position, which preserves that
// precedence.
var markup = strings.NewReplacer(
	`\(`, "`",
	`\)`, "`",
	`\[`, "```",
	`\]`, "```",
	`\frac{`, "(",
	"}{", ")/(",
	"}", ")",
	`\cdot`, "×",
	`\times`, "×",
	`\div`, "÷",
	`\sqrt{`, "√(",
	"^{", "^(",
	"_{", "_(",
	`\pi`, "π",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\theta`, "θ",
	`\lambda`, "λ",
	`\mu`, "μ",
	`\sigma`, "σ",
	`\omega`, "ω",
	`\pm`, "±",
	`\leq`, "≤",
	`\geq`, "≥",
	`\neq`, "≠",
	`\approx`, "≈",
	`\infty`, "∞",
	`\sin`, "sin",
	`\cos`, "cos",
	`\tan`, "tan",
	`\log`, "log",
	`\ln`, "ln",
)

// escape neutralizes the three characters that are structurally
// significant in Slack text fields. It runs after markup rewriting,
// so math output is escaped too.
var escape = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Sanitize converts math markup in the given text to readable Unicode
// symbols, and escapes characters that Slack treats as control sequences.
// It is pure and total: any input produces some output.
func Sanitize(text string) string {
	return escape.Replace(markup.Replace(text))
}
