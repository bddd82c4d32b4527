package address

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Addresses are written
//
//	/html[1]/body[1]/p[2]/text()[1]@0-6
//	/p[1]/text()[1]@4;/p[1]/math[1]@11
//
// the first form when both points share a node. A path is "/" or a
// sequence of name[k] steps, k counting from 1.

type addressGrammar struct {
	Start *pointGrammar `@@`
	To    *int          `( "-" @Int`
	End   *pointGrammar `| ";" @@ )`
}

type pointGrammar struct {
	Path   *pathGrammar `@@ "@"`
	Offset int          `@Int`
}

type pathGrammar struct {
	Root  string         `@"/"`
	Steps []*stepGrammar `( @@ ( "/" @@ )* )?`
}

type stepGrammar struct {
	Name  string `@Name`
	Index int    `"[" @Int "]"`
}

var addressLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Name", Pattern: `[^/\[\]@;\s0-9-][^/\[\]@;\s]*`},
	{Name: "Punct", Pattern: `[/\[\]@;-]`},
})

var (
	addressParser = participle.MustBuild[addressGrammar](participle.Lexer(addressLexer))
	pathParser    = participle.MustBuild[pathGrammar](participle.Lexer(addressLexer))
)

func (p *pathGrammar) String() string {
	if len(p.Steps) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range p.Steps {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (s *stepGrammar) String() string {
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// check rejects the step positions the lexer lets through.
func (p *pathGrammar) check() *stepGrammar {
	for _, s := range p.Steps {
		if s.Index < 1 {
			return s
		}
	}
	return nil
}

func (p *pointGrammar) point() Point {
	return Point{Path: p.Path.String(), Offset: p.Offset}
}
