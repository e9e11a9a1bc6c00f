package mathfmt

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty",
		},
		{
			name: "plain_text",
			text: "What is the value of x?",
			want: "What is the value of x?",
		},
		{
			name: "fraction",
			text: `\frac{1}{2}`,
			want: "(1)/(2)",
		},
		{
			name: "nested_fraction",
			text: `\frac{\frac{a}{b}}{c}`,
			want: "((a)/(b))/(c)",
		},
		{
			name: "inline_math_delimiters",
			text: `\(x^{2} + 1\)`,
			want: "`x^(2) + 1`",
		},
		{
			name: "display_math_delimiters",
			text: `\[y = 2x\]`,
			want: "```y = 2x```",
		},
		{
			name: "square_root",
			text: `\sqrt{16} \geq 4`,
			want: "√(16) ≥ 4",
		},
		{
			name: "greek_letters",
			text: `\pi \approx 3.14, \theta \neq \alpha`,
			want: "π ≈ 3.14, θ ≠ α",
		},
		{
			name: "operators",
			text: `3 \times 4 \div 2 \pm 1`,
			want: "3 × 4 ÷ 2 ± 1",
		},
		{
			name: "function_names",
			text: `\sin(x) + \log(y) + \ln(z)`,
			want: "sin(x) + log(y) + ln(z)",
		},
		{
			name: "subscript",
			text: `a_{n} = a_{n-1} + d`,
			want: "a_(n) = a_(n-1) + d",
		},
		{
			name: "escapes_angle_brackets",
			text: "x < y & y > z",
			want: "x &lt; y &amp; y &gt; z",
		},
		{
			name: "escapes_math_output",
			text: `x \leq 5 < 10`,
			want: "x ≤ 5 &lt; 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.text); got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Sanitizing text that contains no markup tokens and no escapable
// characters must be a no-op, no matter how many times it runs.
func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"(1)/(2) × √(9)",
		"π ≈ 3.14",
		"plain sentence with no math at all",
	}

	for _, s := range inputs {
		once := Sanitize(s)
		if once != s {
			t.Errorf("Sanitize(%q) = %q, want unchanged", s, once)
		}
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize(Sanitize(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestSanitizeOutputIsSlackSafe(t *testing.T) {
	inputs := []string{
		`\frac{x}{y} < 10`,
		"a < b > c & d",
		`\sqrt{2} \neq 1.41`,
		"already&escaped",
	}

	for _, s := range inputs {
		got := Sanitize(s)
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Sanitize(%q) = %q: contains a literal angle bracket", s, got)
		}
		bare := strings.NewReplacer("&amp;", "", "&lt;", "", "&gt;", "").Replace(got)
		if strings.Contains(bare, "&") {
			t.Errorf("Sanitize(%q) = %q: contains an unescaped ampersand", s, got)
		}
	}
}
