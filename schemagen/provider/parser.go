package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// parser is a recursive descent parser over TypeScript declarations. It
// models type aliases, interfaces, enums and tagged GraphQL templates, and
// skips every other statement.
//
// Errors inside a statement are raised with panic(*SyntaxError) and recovered
// at statement level, where they become warnings and the statement is skipped.
type parser struct {
	toks []token
	pos  int
	file *ir.File
}

// statementKeywords start a new statement after a line break. They bound
// statement skipping when no semicolon terminates the previous statement.
var statementKeywords = map[string]bool{
	"export":    true,
	"declare":   true,
	"type":      true,
	"interface": true,
	"enum":      true,
	"const":     true,
	"let":       true,
	"var":       true,
	"function":  true,
	"class":     true,
	"abstract":  true,
	"import":    true,
	"namespace": true,
	"module":    true,
}

// literalTags are template tags whose bodies are GraphQL schema text.
var literalTags = map[string]bool{
	"gql":     true,
	"graphql": true,
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(text string) bool { return p.peek().is(tokPunct, text) }

func (p *parser) isIdent(text string) bool { return p.peek().is(tokIdent, text) }

func (p *parser) accept(text string) bool {
	if p.isPunct(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) token {
	t := p.peek()
	if !t.is(tokPunct, text) {
		p.failf(t, "expected %q, found %s", text, t)
	}
	return p.next()
}

func (p *parser) expectIdent() token {
	t := p.peek()
	if t.kind != tokIdent {
		p.failf(t, "expected identifier, found %s", t)
	}
	return p.next()
}

func (p *parser) failf(t token, format string, args ...any) {
	panic(&SyntaxError{
		File:   p.file.Path,
		Line:   t.line,
		Column: t.col,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (p *parser) source(t token) ir.Source {
	return ir.Source{File: p.file.Path, Line: t.line, Column: t.col}
}

// parseStatements parses statements until end of file, or until a closing
// brace when nested inside a namespace body.
func (p *parser) parseStatements(nested bool) {
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return
		}
		if nested && t.is(tokPunct, "}") {
			return
		}
		p.parseStatement()
	}
}

func (p *parser) parseStatement() {
	start := p.pos
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		se, ok := r.(*SyntaxError)
		if !ok {
			panic(r)
		}
		src := ir.Source{File: se.File, Line: se.Line, Column: se.Column}
		p.file.AddWarning(ir.Warning{
			Code:    "syntax",
			Message: se.Msg,
			Source:  &src,
		})
		p.pos = start
		p.skipStatement()
	}()

	first := p.peek()
	for p.isIdent("export") || p.isIdent("declare") || p.isIdent("default") {
		// "export =" and "export *" are not declarations.
		if n := p.peekAt(1); n.kind == tokPunct && n.text != "{" {
			break
		}
		p.next()
	}

	t := p.peek()
	n := p.peekAt(1)
	switch {
	case t.is(tokIdent, "type") && n.kind == tokIdent:
		p.parseTypeAlias(first)
	case t.is(tokIdent, "interface") && n.kind == tokIdent:
		p.parseInterface(first)
	case t.is(tokIdent, "enum") && n.kind == tokIdent:
		p.parseEnum(first, false)
	case t.is(tokIdent, "const") && n.is(tokIdent, "enum"):
		p.next()
		p.parseEnum(first, true)
	case (t.is(tokIdent, "namespace") || t.is(tokIdent, "module") || t.is(tokIdent, "global")) && p.hasBody():
		p.parseNamespace()
	default:
		p.pos = start
		p.skipStatement()
	}
}

// hasBody reports whether the namespace-like statement at the cursor has a
// brace-delimited body.
func (p *parser) hasBody() bool {
	for i := 1; ; i++ {
		t := p.peekAt(i)
		switch {
		case t.is(tokPunct, "{"):
			return true
		case t.kind == tokIdent, t.kind == tokString, t.is(tokPunct, "."):
			continue
		default:
			return false
		}
	}
}

func (p *parser) parseNamespace() {
	for !p.isPunct("{") {
		p.next()
	}
	p.next()
	p.parseStatements(true)
	p.expect("}")
}

// skipStatement consumes one statement it does not model, collecting tagged
// GraphQL templates along the way. It always consumes at least one token.
func (p *parser) skipStatement() {
	depth := 0
	first := true
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return
		}
		leading := first
		first = false
		if !leading && depth == 0 && t.newline && t.kind == tokIdent && statementKeywords[t.text] {
			return
		}

		switch {
		case t.kind == tokIdent && literalTags[t.text] && p.peekAt(1).kind == tokTemplate:
			p.next()
			p.addLiteral(t.text, p.next())
			continue
		case t.kind == tokTemplate && strings.EqualFold(t.comment, "GraphQL"):
			p.addLiteral(t.comment, p.next())
			continue
		case t.kind != tokPunct:
			p.next()
			continue
		}

		switch t.text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			if depth == 0 {
				// A closing brace ends the enclosing namespace body.
				if leading || t.text != "}" {
					p.next()
				}
				return
			}
			depth--
		case ";":
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

func (p *parser) addLiteral(tag string, tpl token) {
	src := p.source(tpl)
	if strings.Contains(tpl.text, "${") {
		p.file.AddWarning(ir.Warning{
			Code:    "template_substitution",
			Message: "template substitutions in " + tag + " literal are passed through verbatim",
			Source:  &src,
		})
	}
	p.file.AddDeclaration(&ir.EmbeddedLiteral{
		Tag:     tag,
		RawText: tpl.text,
		Source:  src,
	})
}

// endStatement consumes an optional semicolon. Anything else must start on
// a new line.
func (p *parser) endStatement() {
	if p.accept(";") {
		return
	}
	t := p.peek()
	if t.kind == tokEOF || t.newline || t.is(tokPunct, "}") {
		return
	}
	p.failf(t, "unexpected %s after declaration", t)
}

func (p *parser) parseTypeAlias(first token) {
	p.next() // type
	name := p.expectIdent()
	params := p.parseTypeParameters()
	p.expect("=")
	shape := p.parseType()
	p.endStatement()

	p.file.AddDeclaration(&ir.TypeAlias{
		Name:           name.text,
		TypeParameters: params,
		Shape:          shape,
		Source:         p.source(first),
	})
}

func (p *parser) parseInterface(first token) {
	p.next() // interface
	name := p.expectIdent()
	params := p.parseTypeParameters()

	var extends []ir.Shape
	if p.isIdent("extends") {
		p.next()
		for {
			extends = append(extends, p.parsePostfix())
			if !p.accept(",") {
				break
			}
		}
	}

	p.expect("{")
	shape := p.parseObjectBody()
	p.accept(";")

	p.file.AddDeclaration(&ir.TypeAlias{
		Name:           name.text,
		TypeParameters: params,
		Shape:          shape,
		Extends:        extends,
		Interface:      true,
		Source:         p.source(first),
	})
}

func (p *parser) parseEnum(first token, isConst bool) {
	p.next() // enum
	name := p.expectIdent()
	p.expect("{")

	decl := &ir.EnumDeclaration{
		Name:   name.text,
		Const:  isConst,
		Source: p.source(first),
	}
	for !p.accept("}") {
		t := p.next()
		if t.kind != tokIdent && t.kind != tokString {
			p.failf(t, "expected enum member, found %s", t)
		}
		member := ir.EnumMember{Name: t.text}
		if p.accept("=") {
			member.Value = p.parseEnumInitializer()
		}
		decl.Members = append(decl.Members, member)
		if !p.accept(",") {
			p.expect("}")
			break
		}
	}

	p.file.AddDeclaration(decl)
}

// parseEnumInitializer returns a literal initializer value, or nil after
// skipping a computed one.
func (p *parser) parseEnumInitializer() any {
	t := p.peek()
	n := p.peekAt(1)
	terminates := n.is(tokPunct, ",") || n.is(tokPunct, "}")
	switch {
	case t.kind == tokString && terminates:
		p.next()
		return t.text
	case t.kind == tokNumber && terminates:
		p.next()
		if v, ok := parseNumber(t.text); ok {
			return v
		}
		return nil
	case t.is(tokPunct, "-") && n.kind == tokNumber:
		if after := p.peekAt(2); after.is(tokPunct, ",") || after.is(tokPunct, "}") {
			p.next()
			p.next()
			if v, ok := parseNumber(n.text); ok {
				return -v
			}
			return nil
		}
	}

	depth := 0
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.is(tokPunct, "(") || t.is(tokPunct, "[") || t.is(tokPunct, "{"):
			depth++
		case t.is(tokPunct, ")") || t.is(tokPunct, "]"):
			depth--
		case t.is(tokPunct, "}"):
			if depth == 0 {
				return nil
			}
			depth--
		case t.is(tokPunct, ",") && depth == 0:
			return nil
		}
		p.next()
	}
}

func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		i, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(i), true
	}
	return v, true
}

// parseTypeParameters parses an optional <T extends X = Y, ...> list and
// returns the parameter names.
func (p *parser) parseTypeParameters() []string {
	if !p.accept("<") {
		return nil
	}
	var names []string
	for !p.accept(">") {
		for (p.isIdent("in") || p.isIdent("out") || p.isIdent("const")) && p.peekAt(1).kind == tokIdent {
			p.next()
		}
		names = append(names, p.expectIdent().text)
		if p.isIdent("extends") {
			p.next()
			p.parseType()
		}
		if p.accept("=") {
			p.parseType()
		}
		if !p.accept(",") {
			p.expect(">")
			break
		}
	}
	return names
}

// parseType parses a full type, including unions and conditional types.
func (p *parser) parseType() ir.Shape {
	t := p.parseUnion()
	if p.isIdent("extends") && !p.peek().newline {
		p.next()
		p.parseUnion()
		p.expect("?")
		p.parseType()
		p.expect(":")
		p.parseType()
		return &ir.UnknownShape{Text: "conditional"}
	}
	return t
}

func (p *parser) parseUnion() ir.Shape {
	p.accept("|")
	first := p.parseIntersection()
	if !p.isPunct("|") {
		return first
	}
	types := []ir.Shape{first}
	for p.accept("|") {
		types = append(types, p.parseIntersection())
	}
	return ir.Union(types...)
}

func (p *parser) parseIntersection() ir.Shape {
	p.accept("&")
	first := p.parseOperator()
	if !p.isPunct("&") {
		return first
	}
	parts := []ir.Shape{first}
	for p.accept("&") {
		parts = append(parts, p.parseOperator())
	}
	return ir.Intersection(parts...)
}

// parseOperator parses keyof, typeof, readonly, unique and infer prefixes.
func (p *parser) parseOperator() ir.Shape {
	t := p.peek()
	if t.kind != tokIdent {
		return p.parsePostfix()
	}
	switch t.text {
	case "keyof":
		p.next()
		p.parseOperator()
		return &ir.UnknownShape{Text: "keyof"}
	case "readonly":
		p.next()
		return p.parseOperator()
	case "unique":
		if p.peekAt(1).is(tokIdent, "symbol") {
			p.next()
			p.next()
			return &ir.KeywordShape{Keyword: ir.KeywordSymbol}
		}
	case "infer":
		p.next()
		p.expectIdent()
		if p.isIdent("extends") && !p.peekAt(1).newline {
			p.next()
			p.parseOperator()
		}
		return &ir.UnknownShape{Text: "infer"}
	case "typeof":
		p.next()
		p.parseQualifiedName()
		if p.isPunct("<") {
			p.parseTypeArguments()
		}
		shape := ir.Shape(&ir.UnknownShape{Text: "typeof"})
		return p.parseSuffixes(shape)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary type followed by [] and [index] suffixes.
func (p *parser) parsePostfix() ir.Shape {
	return p.parseSuffixes(p.parsePrimary())
}

func (p *parser) parseSuffixes(shape ir.Shape) ir.Shape {
	for p.isPunct("[") && !p.peek().newline {
		p.next()
		if p.accept("]") {
			shape = ir.Array(shape)
			continue
		}
		index := p.parseType()
		p.expect("]")
		shape = ir.Index(shape, index)
	}
	return shape
}

func (p *parser) parsePrimary() ir.Shape {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.next()
		return ir.Literal(t.text)
	case tokTemplate:
		p.next()
		return ir.Literal(t.text)
	case tokNumber:
		p.next()
		if v, ok := parseNumber(t.text); ok {
			return ir.Literal(v)
		}
		return ir.Literal(t.text)
	case tokIdent:
		return p.parseNamedType()
	case tokPunct:
		switch t.text {
		case "{":
			if p.isMappedType() {
				p.skipUntilClose("{", "}")
				return &ir.UnknownShape{Text: "mapped"}
			}
			p.next()
			return p.parseObjectBody()
		case "[":
			p.next()
			return p.parseTuple()
		case "(":
			if p.isFunctionType() {
				return p.parseFunctionType()
			}
			p.next()
			inner := p.parseType()
			p.expect(")")
			return inner
		case "<":
			return p.parseFunctionType()
		case "-":
			if n := p.peekAt(1); n.kind == tokNumber {
				p.next()
				p.next()
				if v, ok := parseNumber(n.text); ok {
					return ir.Literal(-v)
				}
				return ir.Literal("-" + n.text)
			}
		}
	}
	p.failf(t, "unexpected %s in type", t)
	return nil
}

func (p *parser) parseNamedType() ir.Shape {
	t := p.peek()
	switch t.text {
	case "true", "false":
		p.next()
		return ir.Literal(t.text == "true")
	case "this":
		p.next()
		return &ir.UnknownShape{Text: "this"}
	case "new", "abstract":
		for p.isIdent("abstract") || p.isIdent("new") {
			p.next()
		}
		p.parseFunctionType()
		return &ir.UnknownShape{Text: "constructor"}
	case "import":
		if p.peekAt(1).is(tokPunct, "(") {
			p.next()
			p.skipUntilClose("(", ")")
			for p.accept(".") {
				p.expectIdent()
			}
			if p.isPunct("<") {
				p.parseTypeArguments()
			}
			return &ir.UnknownShape{Text: "import"}
		}
	}

	if kw, ok := ir.LookupKeyword(t.text); ok && !p.peekAt(1).is(tokPunct, ".") {
		p.next()
		return &ir.KeywordShape{Keyword: kw}
	}

	name := p.parseQualifiedName()
	ref := &ir.ReferenceShape{Name: name}
	if p.isPunct("<") && !p.peek().newline {
		ref.TypeArguments = p.parseTypeArguments()
	}
	return ref
}

func (p *parser) parseQualifiedName() string {
	name := p.expectIdent().text
	for p.isPunct(".") && p.peekAt(1).kind == tokIdent {
		p.next()
		name += "." + p.next().text
	}
	return name
}

func (p *parser) parseTypeArguments() []ir.Shape {
	p.expect("<")
	var args []ir.Shape
	for !p.accept(">") {
		args = append(args, p.parseType())
		if !p.accept(",") {
			p.expect(">")
			break
		}
	}
	return args
}

func (p *parser) parseTuple() ir.Shape {
	tuple := &ir.TupleShape{}
	for !p.accept("]") {
		p.accept("...")
		// Labeled element: name: T or name?: T
		if p.peek().kind == tokIdent {
			if n := p.peekAt(1); n.is(tokPunct, ":") || (n.is(tokPunct, "?") && p.peekAt(2).is(tokPunct, ":")) {
				p.next()
				p.accept("?")
				p.next()
			}
		}
		tuple.Elements = append(tuple.Elements, p.parseType())
		p.accept("?")
		if !p.accept(",") {
			p.expect("]")
			break
		}
	}
	return tuple
}

// isFunctionType reports whether the parenthesis at the cursor opens a
// parameter list, i.e. the matching ")" is followed by "=>".
func (p *parser) isFunctionType() bool {
	depth := 0
	for i := 0; ; i++ {
		t := p.peekAt(i)
		switch {
		case t.kind == tokEOF:
			return false
		case t.is(tokPunct, "("):
			depth++
		case t.is(tokPunct, ")"):
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).is(tokPunct, "=>")
			}
		}
	}
}

func (p *parser) parseFunctionType() ir.Shape {
	if p.isPunct("<") {
		p.skipUntilClose("<", ">")
	}
	p.skipUntilClose("(", ")")
	p.expect("=>")
	p.parseReturnType()
	return &ir.UnknownShape{Text: "function"}
}

// parseReturnType parses a return type, including "x is T" and
// "asserts x is T" predicates.
func (p *parser) parseReturnType() {
	if p.isIdent("asserts") && p.peekAt(1).kind == tokIdent {
		p.next()
	}
	if p.peek().kind == tokIdent && p.peekAt(1).is(tokIdent, "is") {
		p.next()
		p.next()
	}
	if p.peek().newline && p.isIdent("is") {
		return
	}
	p.parseType()
}

// isMappedType reports whether the brace at the cursor opens a mapped type
// such as { readonly [K in keyof T]?: U }.
func (p *parser) isMappedType() bool {
	i := 1
	if t := p.peekAt(i); t.is(tokPunct, "+") || t.is(tokPunct, "-") {
		i++
	}
	if p.peekAt(i).is(tokIdent, "readonly") {
		i++
	}
	return p.peekAt(i).is(tokPunct, "[") &&
		p.peekAt(i+1).kind == tokIdent &&
		p.peekAt(i+2).is(tokIdent, "in")
}

// skipUntilClose consumes the group opened by the token at the cursor,
// through its matching close token.
func (p *parser) skipUntilClose(open, closer string) {
	start := p.expect(open)
	depth := 1
	for depth > 0 {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			p.failf(start, "unterminated %q", open)
		case t.is(tokPunct, open):
			depth++
		case t.is(tokPunct, closer):
			depth--
		}
	}
}

// parseObjectBody parses members after an opening brace through the
// closing brace.
func (p *parser) parseObjectBody() *ir.ObjectShape {
	obj := &ir.ObjectShape{}
	for {
		for p.accept(";") || p.accept(",") {
		}
		if p.accept("}") {
			return obj
		}
		if member, ok := p.parseMember(); ok {
			obj.Members = append(obj.Members, member)
		}
	}
}

// parseMember parses one object type member. It returns false for members
// that are not modeled: index signatures, call and construct signatures,
// methods and accessors.
func (p *parser) parseMember() (ir.Member, bool) {
	var member ir.Member

	if p.isIdent("readonly") && isMemberName(p.peekAt(1)) {
		p.next()
		member.Readonly = true
	}
	if (p.isIdent("get") || p.isIdent("set")) && isMemberName(p.peekAt(1)) {
		p.next()
		p.next()
		p.skipSignature()
		return member, false
	}

	t := p.peek()
	switch {
	case t.is(tokPunct, "["):
		p.skipUntilClose("[", "]")
		p.accept("?")
		p.skipSignature()
		return member, false
	case t.is(tokPunct, "(") || t.is(tokPunct, "<"):
		p.skipSignature()
		return member, false
	case t.is(tokIdent, "new") && (p.peekAt(1).is(tokPunct, "(") || p.peekAt(1).is(tokPunct, "<")):
		p.next()
		p.skipSignature()
		return member, false
	case isMemberName(t):
		p.next()
		member.Name = t.text
	default:
		p.failf(t, "unexpected %s in object type", t)
	}

	if p.accept("?") {
		member.Optional = true
	}

	switch {
	case p.isPunct("(") || p.isPunct("<"):
		p.skipSignature()
		return member, false
	case p.accept(":"):
		member.Type = p.parseType()
	}

	t = p.peek()
	if !t.is(tokPunct, ";") && !t.is(tokPunct, ",") && !t.is(tokPunct, "}") && !t.newline {
		p.failf(t, "unexpected %s after member %s", t, member.Name)
	}
	return member, true
}

func isMemberName(t token) bool {
	return t.kind == tokIdent || t.kind == tokString || t.kind == tokNumber
}

// skipSignature consumes optional type parameters, an optional parameter
// list and an optional type annotation.
func (p *parser) skipSignature() {
	if p.isPunct("<") {
		p.skipUntilClose("<", ">")
	}
	if p.isPunct("(") {
		p.skipUntilClose("(", ")")
	}
	if p.accept(":") {
		p.parseReturnType()
	}
}
