// Package calc provides the arithmetic tool. Expressions are parsed by
// a small recursive descent evaluator that accepts numbers, the
// operators + - * / % ^ and parentheses, and nothing else.
package calc

import (
	"context"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/llmutils"
	"github.com/effective-security/agentic/schema"
	"github.com/effective-security/agentic/tools"
)

// ToolName is the registry key for the arithmetic tool.
const ToolName = "Calculator"

// CalcRequest represents the tool input.
type CalcRequest struct {
	Expression string `json:"Expression" yaml:"Expression" jsonschema:"title=Expression,description=The arithmetic expression to evaluate."`
}

// CalcResult represents the evaluated expression.
type CalcResult struct {
	Expression string  `json:"Expression" yaml:"Expression" jsonschema:"title=Expression,description=The evaluated expression."`
	Result     float64 `json:"Result" yaml:"Result" jsonschema:"title=Result,description=The numeric result."`
}

// GetContent implements the ContentProvider interface.
func (r *CalcResult) GetContent() string {
	return llmutils.ToJSON(r)
}

// Tool is a tool that evaluates arithmetic expressions.
type Tool struct {
	name        string
	description string
}

var _ tools.Tool[CalcRequest, CalcResult] = (*Tool)(nil)

// New creates the arithmetic tool.
func New() *Tool {
	return &Tool{
		name:        ToolName,
		description: "A tool that evaluates arithmetic expressions with + - * / % ^ and parentheses.",
	}
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(CalcRequest{}))
	return sc.Parameters
}

func (t *Tool) Run(ctx context.Context, req *CalcRequest) (*CalcResult, error) {
	expr := strings.TrimSpace(req.Expression)
	if expr == "" {
		return nil, errors.New("invalid request: empty expression")
	}

	val, err := Evaluate(expr)
	if err != nil {
		return nil, err
	}

	return &CalcResult{
		Expression: expr,
		Result:     val,
	}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req CalcRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(chatmodel.ErrFailedUnmarshalInput, err.Error())
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return llmutils.ToJSON(out), nil
}

// Evaluate parses and evaluates an arithmetic expression.
// Grammar, lowest to highest precedence:
//
//	expr   = term   { ("+" | "-") term }
//	term   = power  { ("*" | "/" | "%") power }
//	power  = unary  [ "^" power ]
//	unary  = [ "-" | "+" ] atom
//	atom   = number | "(" expr ")"
func Evaluate(expr string) (float64, error) {
	p := &parser{input: expr}
	val, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, errors.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, errors.New("expression result is not a finite number")
	}
	return val, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	val, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return val, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if c == '+' {
			val += rhs
		} else {
			val -= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	val, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/' && c != '%') {
			return val, nil
		}
		p.pos++
		rhs, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		switch c {
		case '*':
			val *= rhs
		case '/':
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			val /= rhs
		case '%':
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			val = math.Mod(val, rhs)
		}
	}
}

// parsePower is right-associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (float64, error) {
	val, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	c, ok := p.peek()
	if !ok || c != '^' {
		return val, nil
	}
	p.pos++
	exp, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	return math.Pow(val, exp), nil
}

func (p *parser) parseUnary() (float64, error) {
	c, ok := p.peek()
	if ok && (c == '-' || c == '+') {
		p.pos++
		val, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if c == '-' {
			return -val, nil
		}
		return val, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, errors.New("unexpected end of expression")
	}
	if c == '(' {
		p.pos++
		val, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		c, ok = p.peek()
		if !ok || c != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return val, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, errors.Errorf("unexpected character %q at position %d", p.input[start], start)
	}
	val, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return val, nil
}
