package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/closurecheck/internal/ast"
	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/lexer"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/parser"
	"github.com/funvibe/closurecheck/internal/symbols"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Default id of the item enclosing the closure, when generics are declared.
const defaultItemDefID = 999

// Load reads the scenario file at path.
func Load(path string, items config.LangItems) (*ast.Scenario, []*diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{fileError(path, err.Error())}
	}
	return Parse(data, path, items)
}

// Parse decodes a scenario. The extension of path selects TOML or YAML.
func Parse(data []byte, path string, items config.LangItems) (*ast.Scenario, []*diagnostics.DiagnosticError) {
	var f File
	if err := decode(data, path, &f); err != nil {
		return nil, []*diagnostics.DiagnosticError{fileError(path, err.Error())}
	}
	b := &builder{path: path, file: &f}
	scn := b.build(items)
	if len(b.errors) > 0 {
		return nil, b.errors
	}
	return scn, nil
}

func decode(data []byte, path string, f *File) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, f)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(f)
}

func fileError(path, msg string) *diagnostics.DiagnosticError {
	err := diagnostics.NewError(diagnostics.ErrS001, token.Token{}, msg)
	err.File = path
	return err
}

// builder turns a decoded File into an ast.Scenario, collecting every
// error instead of stopping at the first.
type builder struct {
	path   string
	file   *File
	scope  *parser.Scope
	errors []*diagnostics.DiagnosticError
}

func (b *builder) errorf(format string, args ...interface{}) {
	b.errors = append(b.errors, fileError(b.path, fmt.Sprintf(format, args...)))
}

func (b *builder) build(items config.LangItems) *ast.Scenario {
	f := b.file
	if f.Closure.ID == 0 {
		b.errorf("closure.id is required and must be non-zero")
		return nil
	}

	scn := &ast.Scenario{File: b.path, Name: f.Name}
	if scn.Name == "" {
		scn.Name = strings.TrimSuffix(filepath.Base(b.path), filepath.Ext(b.path))
	}

	scn.Scope = symbols.NewEnclosedSymbolTable(preludeFor(items))
	for _, decl := range f.Interfaces {
		if decl.Name == "" {
			b.errorf("interface without a name")
			continue
		}
		if _, err := scn.Scope.DefineInterface(decl.Name, decl.Arity, decl.Items, b.path); err != nil {
			b.errorf("%v", err)
		}
	}

	def := typesystem.DefID(f.Closure.Def)
	if def == typesystem.NoDefID {
		def = typesystem.DefID(f.Closure.ID + 1000)
	}
	scn.Generics = b.buildGenerics(def)
	b.scope = &parser.Scope{Symbols: scn.Scope, Generics: scn.Generics}

	if f.Expected != "" {
		scn.Expected = b.parseType("expected", f.Expected)
	}
	for i, src := range f.Obligations {
		if pred := b.parsePredicate(fmt.Sprintf("obligations[%d]", i), src); pred != nil {
			scn.Obligations = append(scn.Obligations, obligations.Obligation{
				Predicate: pred,
				Cause:     typesystem.NodeID(f.Closure.ID),
			})
		}
	}
	for i, src := range f.Where {
		if pred := b.parsePredicate(fmt.Sprintf("where[%d]", i), src); pred != nil {
			scn.Where = append(scn.Where, pred)
		}
	}

	scn.Closure = b.buildClosure(def)
	scn.Expect = b.buildExpect()
	return scn
}

func preludeFor(items config.LangItems) *symbols.SymbolTable {
	if items == config.Default().LangItems {
		return symbols.GetPrelude()
	}
	return symbols.NewPrelude(items)
}

// buildGenerics returns nil when the file declares no generics, leaving
// the closure with only its capture slots.
func (b *builder) buildGenerics(def typesystem.DefID) *typesystem.Generics {
	decl := b.file.Generics
	if decl == nil {
		return nil
	}

	var types, regions int
	next := func(names []string, owner typesystem.DefID) []typesystem.GenericParam {
		seen := map[string]bool{}
		var params []typesystem.GenericParam
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			param := typesystem.GenericParam{Kind: typesystem.ParamType, Name: name}
			if strings.HasPrefix(name, "'") {
				param.Kind = typesystem.ParamRegion
				param.Name = strings.TrimPrefix(name, "'")
				if param.Name == "_" {
					param.Name = ""
				}
			}
			if param.Name != "" && seen[name] {
				b.errorf("generic parameter %s declared twice on %s", name, owner)
				continue
			}
			seen[name] = true
			if param.Kind == typesystem.ParamType {
				param.Index = types
				types++
			} else {
				param.Index = regions
				regions++
			}
			params = append(params, param)
		}
		return params
	}

	parent := &typesystem.Generics{DefID: defaultItemDefID}
	parent.Params = next(decl.Parent, parent.DefID)

	own := decl.Own
	if own == nil {
		own = b.file.Closure.Captures
	}
	return &typesystem.Generics{DefID: def, Parent: parent, Params: next(own, def)}
}

func (b *builder) buildClosure(def typesystem.DefID) *ast.ClosureExpr {
	decl := b.file.Closure
	expr := &ast.ClosureExpr{
		Token: token.Token{Lexeme: "|", Literal: "|"},
		ID:    typesystem.NodeID(decl.ID),
		DefID: def,
		Body:  &ast.BlockStatement{Token: token.Token{Lexeme: "{", Literal: "{"}},
	}

	for i, raw := range decl.Params {
		name, annot, annotated := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			b.errorf("closure.params[%d]: missing parameter name", i)
			continue
		}
		tok := token.Token{Type: token.IDENT, Lexeme: name, Literal: name}
		param := &ast.Parameter{Token: tok, Name: &ast.Identifier{Token: tok, Value: name}, Type: typesystem.TInfer{}}
		if annotated {
			if t := b.parseType(fmt.Sprintf("closure.params[%d]", i), annot); t != nil {
				param.Type = t
			}
		}
		expr.Parameters = append(expr.Parameters, param)
	}

	if decl.Returns != "" {
		expr.ReturnType = b.parseType("closure.returns", decl.Returns)
	}

	for _, c := range decl.Captures {
		tok := token.Token{Type: token.IDENT, Lexeme: c, Literal: c}
		expr.Captures = append(expr.Captures, &ast.Identifier{Token: tok, Value: c})
	}

	for i, line := range decl.Body {
		field := fmt.Sprintf("closure.body[%d]", i)
		keyword, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		tok := token.Token{Type: token.IDENT, Lexeme: keyword, Literal: keyword, Line: i + 1}
		switch keyword {
		case "return":
			if t := b.parseType(field, rest); t != nil {
				expr.Body.Statements = append(expr.Body.Statements, &ast.ReturnStatement{Token: tok, Value: t})
			}
		case "yield":
			if t := b.parseType(field, rest); t != nil {
				expr.Body.Statements = append(expr.Body.Statements, &ast.YieldStatement{Token: tok, Value: t})
			}
		default:
			b.errorf("%s: expected \"return T\" or \"yield T\", got %q", field, line)
		}
	}
	return expr
}

func (b *builder) buildExpect() *ast.Expectation {
	decl := b.file.Expect
	if decl == nil {
		return nil
	}
	if c := decl.Capability; c != "" && c != "none" {
		if _, ok := typesystem.ParseCapabilityLevel(c); !ok {
			b.errorf("expect.capability: %q is not Fn, FnMut, FnOnce or none", c)
		}
	}
	return &ast.Expectation{
		Signature:  decl.Signature,
		Resolved:   decl.Resolved,
		Capability: decl.Capability,
		Type:       decl.Type,
		Coroutine:  decl.Coroutine,
		Error:      decl.Error,
	}
}

func (b *builder) parseType(field, src string) typesystem.Type {
	p := parser.New(lexer.New(src), b.scope)
	t := p.ParseType()
	b.collect(field, p)
	return t
}

func (b *builder) parsePredicate(field, src string) obligations.Predicate {
	p := parser.New(lexer.New(src), b.scope)
	pred := p.ParsePredicate()
	b.collect(field, p)
	return pred
}

func (b *builder) collect(field string, p *parser.Parser) {
	for _, err := range p.Errors() {
		err.File = b.path
		err.Message = field + ": " + err.Message
		b.errors = append(b.errors, err)
	}
}
