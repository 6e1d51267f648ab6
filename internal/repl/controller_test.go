package repl

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

type shownError struct {
	title, msg string
}

type fakeView struct {
	expr    string
	answers []string
	errors  []shownError
}

func (v *fakeView) Expression() string {
	return v.expr
}

func (v *fakeView) SetAnswer(answer string) {
	v.answers = append(v.answers, answer)
}

func (v *fakeView) ShowError(title, msg string) {
	v.errors = append(v.errors, shownError{title, msg})
}

func TestControllerCalculate(t *testing.T) {
	tests := []struct {
		name     string
		notation calc.Notation
		expr     string
		answer   string
		err      shownError
	}{
		{"infix", calc.Infix, "3 + 4 * 2", "11.00", shownError{}},
		{"group", calc.Infix, "( 3 + 4 ) * 2", "14.00", shownError{}},
		{"postfix", calc.Postfix, "3 4 2 * +", "11.00", shownError{}},
		{"fraction", calc.Postfix, "1 3 /", "0.33", shownError{}},
		{"divide-by-zero", calc.Postfix, "4 0 /", "", shownError{"Unsupported Operation", "Cannot divide by zero"}},
		{"unknown-operator", calc.Postfix, "3 4 %", "", shownError{"Unsupported Operation", "Unknown operator"}},
		{"underflow", calc.Postfix, "+", "", shownError{"Invalid Expression", "Entered expression is not valid."}},
		{"literal", calc.Infix, "3 + x", "", shownError{"Invalid Expression", "Entered expression is not valid."}},
		{"empty", calc.Infix, "", "", shownError{"Invalid Expression", "Entered expression is not valid."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{expr: tt.expr}
			c := NewController(view, config.Default(), nil)
			c.SetNotation(tt.notation)
			c.Calculate()
			if tt.answer != "" {
				assert.Equal(t, []string{tt.answer}, view.answers)
				assert.Empty(t, view.errors)
				return
			}
			assert.Empty(t, view.answers)
			assert.Equal(t, []shownError{tt.err}, view.errors)
		})
	}
}

func TestControllerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Notation = "infix"
	cfg.Format = "%g"
	cfg.RightAssocPow = true
	cfg.Strict = true

	view := &fakeView{expr: "2 ^ 3 ^ 2"}
	c := NewController(view, cfg, nil)
	require.Equal(t, calc.Infix, c.Notation())
	c.Calculate()
	assert.Equal(t, []string{"512"}, view.answers)

	view.expr = "1 2 + 3"
	c.Calculate()
	assert.Equal(t, []shownError{{"Invalid Expression", "Entered expression is not valid."}}, view.errors)
}

func TestControllerLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	view := &fakeView{expr: "1 2 +"}
	c := NewController(view, config.Default(), log)
	c.Calculate()
	c.SetNotation(calc.Infix)
	out := buf.String()
	assert.Contains(t, out, "calculation requested")
	assert.Contains(t, out, `expression="1 2 +"`)
	assert.Contains(t, out, "notation changed")
	assert.Contains(t, out, "notation=infix")
}
