package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var factLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arrow", Pattern: `->`},
	{Name: "Op", Pattern: `==|!=`},
	{Name: "Ident", Pattern: `[$A-Za-z_][A-Za-z0-9_$.]*\??`},
	{Name: "Punct", Pattern: `[{}:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type implicationNode struct {
	Condition conditionNode `@@ "->"`
	Effect    factNode      `@@`
}

type factNode struct {
	Var       string        `@Ident`
	Condition *conditionOp  `( @@`
	Types     *typeListNode `| ":" @@ )`
}

type conditionNode struct {
	Var string      `@Ident`
	Op  conditionOp `@@`
}

type conditionOp struct {
	Op    string `@("==" | "!=")`
	Value string `@("True" | "False" | "Null")`
}

type typeListNode struct {
	Types []string `"{" ( @Ident ( "," @Ident )* )? "}"`
}

var (
	parserOpts = []participle.Option{
		participle.Lexer(factLexer),
		participle.Elide("Whitespace"),
	}
	implicationParser = participle.MustBuild[implicationNode](parserOpts...)
	factParser        = participle.MustBuild[factNode](parserOpts...)
	conditionParser   = participle.MustBuild[conditionNode](parserOpts...)
)
