package ast

import (
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// BlockStatement is a closure body.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)      { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// ReturnStatement ends the body with a value of type Value.
type ReturnStatement struct {
	Token token.Token
	Value typesystem.Type
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// YieldStatement suspends the body with a value of type Value. A body
// containing one is a coroutine body.
type YieldStatement struct {
	Token token.Token
	Value typesystem.Type
}

func (ys *YieldStatement) Accept(v Visitor)      { v.VisitYieldStatement(ys) }
func (ys *YieldStatement) statementNode()        {}
func (ys *YieldStatement) TokenLiteral() string  { return ys.Token.Lexeme }
func (ys *YieldStatement) GetToken() token.Token { return ys.Token }
