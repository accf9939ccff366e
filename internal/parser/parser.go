// Package parser lowers s-expression trees into the tagged AST. It
// recognizes compound forms by their leading keyword, strips string quote
// delimiters, splits generic angle-bracket tokens, and builds type
// annotations. Anything it does not recognize becomes a call.
package parser

import (
	"strings"

	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/sexpr"
	"larch/internal/source"
)

// ParseProgram lowers a sequence of top-level forms.
func ParseProgram(nodes []*sexpr.Node) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, 0, len(nodes))
	for _, node := range nodes {
		expr, err := ParseExpr(node)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpr lowers a single s-expression node.
func ParseExpr(node *sexpr.Node) (ast.Expr, error) {
	switch node.Kind {
	case sexpr.NodeNumber:
		return &ast.NumberLit{Pos: node.Span, Value: node.Num}, nil
	case sexpr.NodeBool:
		return &ast.BoolLit{Pos: node.Span, Value: node.Bool}, nil
	case sexpr.NodeString:
		return &ast.StringLit{Pos: node.Span, Value: unquote(node.Text)}, nil
	case sexpr.NodeSymbol:
		return &ast.Ident{Pos: node.Span, Name: node.Text}, nil
	case sexpr.NodeList:
		return parseList(node)
	default:
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "unrecognized expression")
	}
}

func parseList(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) == 0 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "empty form")
	}
	head := node.Items[0]
	if head.Kind == sexpr.NodeSymbol {
		if op := ast.BinaryOpFromName(head.Text); op != ast.OpInvalid {
			return parseBinary(node, op)
		}
		switch head.Text {
		case "var":
			return parseVar(node)
		case "set":
			return parseSet(node)
		case "begin":
			return parseBlock(node)
		case "if":
			return parseIf(node)
		case "while":
			return parseWhile(node)
		case "type":
			return parseTypeDecl(node)
		case "class":
			return parseClassDecl(node)
		case "new":
			return parseNew(node)
		case "super":
			return parseSuper(node)
		case "prop":
			return parseProp(node)
		case "typeof":
			return parseTypeOf(node)
		case "def":
			return parseFunc(node, true)
		case "lambda":
			return parseFunc(node, false)
		}
	}
	return parseCall(node)
}

func parseBinary(node *sexpr.Node, op ast.BinaryOp) (ast.Expr, error) {
	// Operand count is deliberately left to the checker; a unary `(+ 1)`
	// parses fine and fails there with ArityMismatch.
	args, err := parseEach(node.Items[1:])
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Pos: node.Span, Op: op, Args: args}, nil
}

func parseVar(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 3 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "var expects a target and a value")
	}
	target := node.Items[1]
	value, err := ParseExpr(node.Items[2])
	if err != nil {
		return nil, err
	}
	switch {
	case target.Kind == sexpr.NodeSymbol:
		return &ast.VarDecl{Pos: node.Span, Name: target.Text, NamePos: target.Span, Value: value}, nil
	case target.Kind == sexpr.NodeList && len(target.Items) == 2 && target.Items[0].Kind == sexpr.NodeSymbol:
		ann, err := parseAnnotation(target.Items[1])
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{
			Pos:     node.Span,
			Name:    target.Items[0].Text,
			NamePos: target.Items[0].Span,
			Ann:     ann,
			Value:   value,
		}, nil
	default:
		return nil, diag.Errorf(diag.SynMalformedForm, target.Span, "var target must be a name or (name type)")
	}
}

func parseSet(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 3 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "set expects a target and a value")
	}
	target, err := ParseExpr(node.Items[1])
	if err != nil {
		return nil, err
	}
	switch target.(type) {
	case *ast.Ident, *ast.Prop:
	default:
		return nil, diag.Errorf(diag.SynMalformedForm, node.Items[1].Span, "set target must be a name or property access")
	}
	value, err := ParseExpr(node.Items[2])
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Pos: node.Span, Target: target, Value: value}, nil
}

func parseBlock(node *sexpr.Node) (ast.Expr, error) {
	body, err := parseEach(node.Items[1:])
	if err != nil {
		return nil, err
	}
	return &ast.Block{Pos: node.Span, Body: body}, nil
}

func parseIf(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 4 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "if expects a condition and two branches")
	}
	cond, err := ParseExpr(node.Items[1])
	if err != nil {
		return nil, err
	}
	then, err := ParseExpr(node.Items[2])
	if err != nil {
		return nil, err
	}
	alt, err := ParseExpr(node.Items[3])
	if err != nil {
		return nil, err
	}
	return &ast.If{Pos: node.Span, Cond: cond, Then: then, Else: alt}, nil
}

func parseWhile(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) < 3 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "while expects a condition and a body")
	}
	cond, err := ParseExpr(node.Items[1])
	if err != nil {
		return nil, err
	}
	body, err := parseBody(node.Items[2:], node.Span)
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: node.Span, Cond: cond, Body: body}, nil
}

func parseTypeDecl(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 3 || node.Items[1].Kind != sexpr.NodeSymbol {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "type expects a name and a definition")
	}
	ann, err := parseAnnotation(node.Items[2])
	if err != nil {
		return nil, err
	}
	return &ast.TypeDecl{
		Pos:     node.Span,
		Name:    node.Items[1].Text,
		NamePos: node.Items[1].Span,
		Ann:     ann,
	}, nil
}

func parseClassDecl(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) < 4 || node.Items[1].Kind != sexpr.NodeSymbol || node.Items[2].Kind != sexpr.NodeSymbol {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "class expects a name, a superclass (or null), and a body")
	}
	body, err := parseBody(node.Items[3:], node.Span)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{
		Pos:      node.Span,
		Name:     node.Items[1].Text,
		NamePos:  node.Items[1].Span,
		Super:    node.Items[2].Text,
		SuperPos: node.Items[2].Span,
		Body:     body,
	}, nil
}

func parseNew(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) < 2 || node.Items[1].Kind != sexpr.NodeSymbol {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "new expects a class name")
	}
	args, err := parseEach(node.Items[2:])
	if err != nil {
		return nil, err
	}
	return &ast.New{
		Pos:      node.Span,
		Class:    node.Items[1].Text,
		ClassPos: node.Items[1].Span,
		Args:     args,
	}, nil
}

func parseSuper(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 2 || node.Items[1].Kind != sexpr.NodeSymbol {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "super expects a class name")
	}
	return &ast.Super{Pos: node.Span, Class: node.Items[1].Text, ClassPos: node.Items[1].Span}, nil
}

func parseProp(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 3 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "prop expects an instance and a field name")
	}
	object, err := ParseExpr(node.Items[1])
	if err != nil {
		return nil, err
	}
	field := node.Items[2]
	var name string
	switch field.Kind {
	case sexpr.NodeSymbol:
		name = field.Text
	case sexpr.NodeString:
		name = unquote(field.Text)
	default:
		return nil, diag.Errorf(diag.SynMalformedForm, field.Span, "field name must be a symbol or string")
	}
	return &ast.Prop{Pos: node.Span, Object: object, Field: name, FieldPos: field.Span}, nil
}

func parseTypeOf(node *sexpr.Node) (ast.Expr, error) {
	if len(node.Items) != 2 {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "typeof expects one expression")
	}
	target, err := ParseExpr(node.Items[1])
	if err != nil {
		return nil, err
	}
	return &ast.TypeOf{Pos: node.Span, Target: target}, nil
}

// parseFunc handles `def` and `lambda`, simple and generic:
//
//	(def name (params) -> Ret body...)
//	(def name <K,V> (params) -> Ret body...)
//	(lambda (params) -> Ret body...)
//	(lambda <T> (params) -> Ret body...)
func parseFunc(node *sexpr.Node, named bool) (ast.Expr, error) {
	items := node.Items[1:]
	fn := &ast.FuncDecl{Pos: node.Span}

	if named {
		if len(items) == 0 || items[0].Kind != sexpr.NodeSymbol {
			return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "def expects a function name")
		}
		fn.Name = items[0].Text
		fn.NamePos = items[0].Span
		items = items[1:]
	}

	if len(items) > 0 && isGenericToken(items[0]) {
		params, err := splitGenericToken(items[0])
		if err != nil {
			return nil, err
		}
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		fn.TypeParams = names
		items = items[1:]
	}

	if len(items) < 4 || items[0].Kind != sexpr.NodeList || !items[1].IsSymbol("->") {
		return nil, diag.Errorf(diag.SynMalformedForm, node.Span, "expected (params) -> ReturnType body")
	}
	params, err := parseParams(items[0])
	if err != nil {
		return nil, err
	}
	fn.Params = params

	ret, err := parseAnnotation(items[2])
	if err != nil {
		return nil, err
	}
	fn.Ret = ret

	body, err := parseBody(items[3:], node.Span)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func parseParams(list *sexpr.Node) ([]ast.Param, error) {
	params := make([]ast.Param, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Kind != sexpr.NodeList || len(item.Items) != 2 || item.Items[0].Kind != sexpr.NodeSymbol {
			return nil, diag.Errorf(diag.SynMalformedForm, item.Span, "parameter must be (name type)")
		}
		ann, err := parseAnnotation(item.Items[1])
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{
			Pos:  item.Span,
			Name: item.Items[0].Text,
			Ann:  ann,
		})
	}
	return params, nil
}

func parseCall(node *sexpr.Node) (ast.Expr, error) {
	head, err := ParseExpr(node.Items[0])
	if err != nil {
		return nil, err
	}
	call := &ast.Call{Pos: node.Span, Head: head}
	rest := node.Items[1:]
	if len(rest) > 0 && isGenericToken(rest[0]) {
		typeArgs, err := splitGenericToken(rest[0])
		if err != nil {
			return nil, err
		}
		call.TypeArgs = typeArgs
		call.TypeArgsPos = rest[0].Span
		rest = rest[1:]
	}
	args, err := parseEach(rest)
	if err != nil {
		return nil, err
	}
	call.Args = args
	return call, nil
}

func parseEach(nodes []*sexpr.Node) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, 0, len(nodes))
	for _, node := range nodes {
		expr, err := ParseExpr(node)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// parseBody lowers a form tail, wrapping multiple expressions in a block.
func parseBody(nodes []*sexpr.Node, span source.Span) (ast.Expr, error) {
	if len(nodes) == 1 {
		return ParseExpr(nodes[0])
	}
	body, err := parseEach(nodes)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Pos: span, Body: body}, nil
}

// parseAnnotation lowers a type annotation node: a descriptor symbol or an
// inline `(or T1 T2 ...)` union.
func parseAnnotation(node *sexpr.Node) (*ast.TypeAnn, error) {
	switch node.Kind {
	case sexpr.NodeSymbol:
		return &ast.TypeAnn{Pos: node.Span, Name: node.Text}, nil
	case sexpr.NodeList:
		if len(node.Items) < 2 || !node.Items[0].IsSymbol("or") {
			return nil, diag.Errorf(diag.SynBadAnnotation, node.Span, "expected a type descriptor or (or ...)")
		}
		options := make([]*ast.TypeAnn, 0, len(node.Items)-1)
		for _, item := range node.Items[1:] {
			opt, err := parseAnnotation(item)
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
		}
		return &ast.TypeAnn{Pos: node.Span, Options: options}, nil
	default:
		return nil, diag.Errorf(diag.SynBadAnnotation, node.Span, "expected a type descriptor")
	}
}

// isGenericToken reports whether the node is an angle-bracket token like
// `<T>` or `<K,V>`. A lone comparison operator does not qualify.
func isGenericToken(node *sexpr.Node) bool {
	return node.Kind == sexpr.NodeSymbol &&
		len(node.Text) >= 3 &&
		strings.HasPrefix(node.Text, "<") &&
		strings.HasSuffix(node.Text, ">")
}

// splitGenericToken splits `<A,B,...>` on top-level commas, honoring nested
// angle brackets from Fn<...> descriptors.
func splitGenericToken(node *sexpr.Node) ([]*ast.TypeAnn, error) {
	inner := node.Text[1 : len(node.Text)-1]
	var parts []*ast.TypeAnn
	depth := 0
	start := 0
	emit := func(end int) error {
		text := strings.TrimSpace(inner[start:end])
		if text == "" {
			return diag.Errorf(diag.SynBadGenericParams, node.Span, "empty entry in %q", node.Text)
		}
		parts = append(parts, &ast.TypeAnn{Pos: node.Span, Name: text})
		return nil
	}
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, diag.Errorf(diag.SynBadGenericParams, node.Span, "unbalanced angle brackets in %q", node.Text)
			}
		case ',':
			if depth == 0 {
				if err := emit(i); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, diag.Errorf(diag.SynBadGenericParams, node.Span, "unbalanced angle brackets in %q", node.Text)
	}
	if err := emit(len(inner)); err != nil {
		return nil, err
	}
	return parts, nil
}

// unquote strips the literal quote delimiters the reader preserves.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
