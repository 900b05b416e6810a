/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Recursive-descent parser for rule text, resolving every name against a Registry
at parse time.

Grammar:

	rule       = "if" condition "then" consequent
	condition  = conjunct { "or" conjunct }
	conjunct   = atom { "and" atom }
	atom       = IDENT "is" IDENT
	consequent = IDENT "is" IDENT | IDENT "=" linear
	linear     = [ "+" | "-" ] term { ( "+" | "-" ) term }
	term       = NUMBER [ "*" IDENT ] | IDENT [ "*" NUMBER ]
*/

package fuzzy

import (
	"strconv"
)

type parser struct {
	text     string
	tokens   []token
	pos      int
	registry *Registry
}

// ParseRule parses one rule against the registry
func ParseRule(text string, registry *Registry) (*Rule, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{text: text, tokens: tokens, registry: registry}

	rule, err := p.parseRule()
	if err != nil {
		return nil, err
	}
	rule.Text = text
	return rule, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(t token, reason string) error {
	return &RuleSyntaxError{Rule: p.text, Token: t.display(), Pos: t.pos, Reason: reason}
}

func (p *parser) expectKeyword(kw string) error {
	t := p.next()
	if !t.isKeyword(kw) {
		return p.fail(t, "expected '"+kw+"'")
	}
	return nil
}

func (p *parser) expectName(what string) (token, error) {
	t := p.next()
	if t.kind != tokIdent || isKeyword(t.text) {
		return t, p.fail(t, "expected "+what)
	}
	return t, nil
}

func (p *parser) parseRule() (*Rule, error) {
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	antecedent, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	consequent, err := p.parseConsequent()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.fail(t, "unexpected trailing input")
	}
	return &Rule{Antecedent: antecedent, Consequent: consequent}, nil
}

func (p *parser) parseCondition() (Expression, error) {
	left, err := p.parseConjunct()
	if err != nil {
		return nil, err
	}
	for p.peek().isKeyword("or") {
		p.next()
		right, err := p.parseConjunct()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *parser) parseConjunct() (Expression, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().isKeyword("and") {
		p.next()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

func (p *parser) parseAtom() (Expression, error) {
	v, adj, err := p.parseIsClause()
	if err != nil {
		return nil, err
	}
	return &IsExpr{Variable: v, Adjective: adj}, nil
}

// parseIsClause parses "IDENT is IDENT" and resolves both names
func (p *parser) parseIsClause() (*Variable, *Adjective, error) {
	name, err := p.expectName("variable name")
	if err != nil {
		return nil, nil, err
	}
	if err := p.expectKeyword("is"); err != nil {
		return nil, nil, err
	}
	label, err := p.expectName("adjective name")
	if err != nil {
		return nil, nil, err
	}
	return p.registry.Adjective(name.text, label.text)
}

func (p *parser) parseConsequent() (Consequent, error) {
	if len(p.tokens) > p.pos+1 && p.tokens[p.pos+1].kind == tokEquals {
		target, err := p.expectName("output name")
		if err != nil {
			return nil, err
		}
		p.next() // '='
		expr, err := p.parseLinear()
		if err != nil {
			return nil, err
		}
		return &LinearConsequent{Target: target.text, Expression: expr}, nil
	}

	v, adj, err := p.parseIsClause()
	if err != nil {
		return nil, err
	}
	return &FuzzyConsequent{Variable: v, Adjective: adj}, nil
}

func (p *parser) parseLinear() (LinearExpression, error) {
	var expr LinearExpression

	sign := 1.0
	switch p.peek().kind {
	case tokMinus:
		p.next()
		sign = -1
	case tokPlus:
		p.next()
	}

	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		term.Coefficient *= sign
		expr = append(expr, term)

		switch p.peek().kind {
		case tokPlus:
			p.next()
			sign = 1
		case tokMinus:
			p.next()
			sign = -1
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseTerm() (Term, error) {
	t := p.next()
	switch {
	case t.kind == tokNumber:
		coef, err := p.number(t)
		if err != nil {
			return Term{}, err
		}
		if p.peek().kind != tokStar {
			return Term{Coefficient: coef}, nil
		}
		p.next()
		name, err := p.expectName("variable name")
		if err != nil {
			return Term{}, err
		}
		v, err := p.registry.Variable(name.text)
		if err != nil {
			return Term{}, err
		}
		return Term{Coefficient: coef, Variable: v}, nil

	case t.kind == tokIdent && !isKeyword(t.text):
		v, err := p.registry.Variable(t.text)
		if err != nil {
			return Term{}, err
		}
		if p.peek().kind != tokStar {
			return Term{Coefficient: 1, Variable: v}, nil
		}
		p.next()
		n := p.next()
		if n.kind != tokNumber {
			return Term{}, p.fail(n, "expected coefficient")
		}
		coef, err := p.number(n)
		if err != nil {
			return Term{}, err
		}
		return Term{Coefficient: coef, Variable: v}, nil
	}
	return Term{}, p.fail(t, "expected number or variable")
}

func (p *parser) number(t token) (float64, error) {
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, p.fail(t, "malformed number")
	}
	return v, nil
}
