// Package repl implements the interactive calculator: a terminal view that
// reads commands and a controller that evaluates expressions for it.
package repl

import (
	"fmt"
	"log/slog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

// View is what the controller needs from a user interface.
type View interface {
	// Expression returns the current expression.
	Expression() string
	// SetAnswer shows a formatted result.
	SetAnswer(answer string)
	// ShowError shows an error with a short title.
	ShowError(title, msg string)
}

// Handler receives the requests of a view.
type Handler interface {
	// Calculate evaluates the view's current expression.
	Calculate()
	// SetNotation changes how later expressions are evaluated.
	SetNotation(n calc.Notation)
}

// Controller evaluates expressions from a view and reports results to it.
// A Controller is not safe for concurrent use.
type Controller struct {
	view     View
	ctx      *calc.Context
	notation calc.Notation
	format   string
	log      *slog.Logger
}

// NewController creates a controller for a view. cfg must be valid.
func NewController(view View, cfg config.Config, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		view:     view,
		ctx:      calc.NewContext(cfg.ContextOptions()...),
		notation: cfg.StartNotation(),
		format:   cfg.Format,
		log:      log,
	}
}

// Calculate evaluates the view's expression in the current notation.
func (c *Controller) Calculate() {
	expr := c.view.Expression()
	c.log.Debug("calculation requested", slog.String("expression", expr), slog.String("notation", c.notation.String()))
	r, err := c.ctx.Evaluate(expr, c.notation)
	if err != nil {
		c.log.Debug("calculation failed", slog.String("expression", expr), slog.Any("err", err))
		switch k := calc.KindOf(err); k {
		case calc.InvalidExpression:
			c.view.ShowError(k.String(), "Entered expression is not valid.")
		case calc.UnsupportedOperation:
			c.view.ShowError(k.String(), err.Error())
		default:
			c.log.Error("evaluation failed", slog.Any("err", err))
			c.view.ShowError("Error", err.Error())
		}
		return
	}
	c.view.SetAnswer(fmt.Sprintf(c.format, r))
}

// SetNotation changes the notation of later calculations.
func (c *Controller) SetNotation(n calc.Notation) {
	c.notation = n
	c.log.Debug("notation changed", slog.String("notation", n.String()))
}

// Notation returns the current notation.
func (c *Controller) Notation() calc.Notation {
	return c.notation
}

var _ Handler = (*Controller)(nil)
