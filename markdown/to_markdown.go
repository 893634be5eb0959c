package markdown

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// NodeSerializerFunc is the function to serialize a unit.
type NodeSerializerFunc func(state *SerializerState, node, parent *html.Node, index int)

// InlineSerializerSpec is the serializer info for an inline formatting unit,
// written as delimiters around its content.
type InlineSerializerSpec struct {
	Open                     interface{} // Can be a string or a func
	Close                    interface{} // Can be a string or a func
	ExpelEnclosingWhitespace bool
	NoEscape                 bool
}

// InlineFunc computes an opening or closing delimiter for a unit.
type InlineFunc func(state *SerializerState, node *html.Node) string

// Serializer describes how to serialize an article tree as
// Markdown/CommonMark text.
type Serializer struct {
	Schema  *model.Schema
	Nodes   map[model.Kind]NodeSerializerFunc
	Inlines map[model.Kind]InlineSerializerSpec
}

// NewSerializer constructs a serializer with the given configuration. The
// nodes map gives, for a kind of the schema, the function that writes a unit
// of that kind. The inlines map holds the delimiters written before and after
// the content of inline formatting units, either directly or as an
// InlineFunc. Units of a kind found in neither map are written as their
// content.
//
// ExpelEnclosingWhitespace moves whitespace from inside the delimiters to
// outside them. CommonMark does not permit enclosing whitespace inside
// emphasis, see http://spec.commonmark.org/0.26/#example-330
//
// NoEscape writes the text content of the unit verbatim.
func NewSerializer(schema *model.Schema, nodes map[model.Kind]NodeSerializerFunc, inlines map[model.Kind]InlineSerializerSpec) *Serializer {
	return &Serializer{
		Schema:  schema,
		Nodes:   nodes,
		Inlines: inlines,
	}
}

// Serialize the content of the given unit to
// [CommonMark](http://commonmark.org/).
func (s *Serializer) Serialize(content *html.Node, options ...map[string]interface{}) string {
	var opts map[string]interface{}
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	state.RenderContent(content)
	return state.Out
}

// SerializeNodes serializes a sequence of units, each as a block.
func (s *Serializer) SerializeNodes(nodes []*html.Node, options ...map[string]interface{}) string {
	var opts map[string]interface{}
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	for i, node := range nodes {
		state.Render(node, node.Parent, i)
	}
	return state.Out
}

func getAttrInt(node *html.Node, name string, defaultValue int) int {
	if v, err := strconv.Atoi(model.Attr(node, name)); err == nil {
		return v
	}
	return defaultValue
}

var backticksRegexp = regexp.MustCompile("`{3,}")

func paragraph(state *SerializerState, node, _parent *html.Node, _index int) {
	state.RenderInline(node)
	state.CloseBlock(node)
}

func container(state *SerializerState, node, _parent *html.Node, _index int) {
	state.RenderContent(node)
}

func heading(state *SerializerState, node, _parent *html.Node, _index int) {
	level := int(node.Data[len(node.Data)-1] - '0')
	state.Write(strings.Repeat("#", level) + " ")
	state.RenderInline(node)
	state.CloseBlock(node)
}

func codeFence(content string) string {
	fence := "```"
	for _, backticks := range backticksRegexp.FindAllString(content, -1) {
		if len(backticks) >= len(fence) {
			fence = backticks + "`"
		}
	}
	return fence
}

func codeBlock(state *SerializerState, node *html.Node, content string) {
	fence := codeFence(content)
	lang := model.Attr(node, "lang")
	state.Write(fence + lang + "\n")
	state.Text(content, false)
	state.EnsureNewLine()
	state.Write(fence)
	state.CloseBlock(node)
}

func orderedList(state *SerializerState, node *html.Node) {
	start := getAttrInt(node, "start", 1)
	maxW := len(fmt.Sprintf("%d", start+len(model.Elements(node))-1))
	space := strings.Repeat(" ", maxW+2)
	state.RenderList(node, space, func(i int) string {
		nStr := fmt.Sprintf("%d", start+i)
		return strings.Repeat(" ", maxW-len(nStr)) + nStr + ". "
	})
}

func image(state *SerializerState, node, _parent *html.Node, _index int) {
	src := model.Attr(node, "src")
	src = strings.ReplaceAll(src, "(", "\\(")
	src = strings.ReplaceAll(src, ")", "\\)")
	title := ""
	if t := model.Attr(node, "title"); t != "" {
		title = ` "` + strings.ReplaceAll(t, `"`, `\"`) + `"`
	}
	state.Write(fmt.Sprintf("![%s](%s%s)", state.Esc(model.Attr(node, "alt")), src, title))
}

// media writes audio and video units as a link to their first source.
func media(state *SerializerState, node, _parent *html.Node, _index int) {
	src := model.Attr(node, "src")
	for _, c := range model.Elements(node) {
		if src != "" {
			break
		}
		src = model.Attr(c, "src")
	}
	if src == "" {
		return
	}
	state.Write("<" + src + ">")
}

func embed(fn NodeSerializerFunc) NodeSerializerFunc {
	return func(state *SerializerState, node, parent *html.Node, index int) {
		fn(state, node, parent, index)
		if !state.inline {
			state.CloseBlock(node)
		}
	}
}

// DefaultSerializer is a serializer for the [article schema](#schema).
var DefaultSerializer = NewSerializer(article.Schema, map[model.Kind]NodeSerializerFunc{
	article.ARTICLE:    container,
	article.HEADER:     container,
	article.FOOTER:     container,
	article.ABSTRACT:   container,
	article.TOC:        container,
	article.S1:         container,
	article.S2:         container,
	article.S3:         container,
	article.S4:         container,
	article.S5:         container,
	article.ASIDE:      container,
	article.FIGURE:     container,
	article.DETAILS:    container,
	article.H1:         heading,
	article.H2:         heading,
	article.H3:         heading,
	article.H4:         heading,
	article.H5:         heading,
	article.H6:         heading,
	article.P:          paragraph,
	article.NOTE:       paragraph,
	article.ADDRESS:    paragraph,
	article.SUMMARY:    paragraph,
	article.CAPTION:    paragraph,
	article.FIGCAPTION: paragraph,
	article.DT:         paragraph,
	article.CASCADEH:   paragraph,
	article.DD: func(state *SerializerState, node, _parent *html.Node, _index int) {
		if state.Closed != nil && state.Closed.Parent == node.Parent {
			state.flushClose(1)
		}
		first := ": "
		state.WrapBlock("  ", &first, node, func() { state.RenderInline(node) })
	},
	article.DL: container,
	article.BLOCKQUOTE: func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.WrapBlock("> ", nil, node, func() { state.RenderContent(node) })
	},
	article.CODEBLOCK: func(state *SerializerState, node, _parent *html.Node, _index int) {
		codeBlock(state, node, model.TextContent(node))
	},
	article.CODELIST: func(state *SerializerState, node, _parent *html.Node, _index int) {
		var lines []string
		for _, li := range model.Elements(node) {
			lines = append(lines, model.TextContent(li))
		}
		codeBlock(state, node, strings.Join(lines, "\n"))
	},
	article.HR: func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.Write("---")
		state.CloseBlock(node)
	},
	article.UL: func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.RenderList(node, "  ", func(_ int) string { return "* " })
	},
	article.OL: func(state *SerializerState, node, _parent *html.Node, _index int) {
		orderedList(state, node)
	},
	article.CASCADE: func(state *SerializerState, node, _parent *html.Node, _index int) {
		orderedList(state, node)
	},
	article.LI:        listItem,
	article.CASCADELI: listItem,
	article.TABLE:     table,
	article.IMG:       embed(image),
	article.PICTURE: embed(func(state *SerializerState, node, parent *html.Node, index int) {
		for _, c := range model.Elements(node) {
			if state.schema.Is(c, article.IMG) {
				image(state, c, node, index)
			}
		}
	}),
	article.AUDIO: embed(media),
	article.VIDEO: embed(media),
	article.RUBY: func(state *SerializerState, node, _parent *html.Node, _index int) {
		var base, reading string
		for _, c := range model.Elements(node) {
			switch {
			case state.schema.Is(c, article.RB):
				base += model.TextContent(c)
			case state.schema.Is(c, article.RT):
				reading += model.TextContent(c)
			}
		}
		state.Text(base)
		if reading != "" {
			state.Text("(" + reading + ")")
		}
	},
	article.BR: func(state *SerializerState, node, parent *html.Node, index int) {
		siblings := model.Children(parent)
		for i := index; i < len(siblings); i++ {
			if siblings[i].Type != html.ElementNode || siblings[i].Data != node.Data {
				state.Write("\\\n")
				return
			}
		}
	},
	article.TEXT: func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.Text(node.Data, !state.InAutoLink)
	},
}, map[model.Kind]InlineSerializerSpec{
	article.EM:     {Open: "*", Close: "*", ExpelEnclosingWhitespace: true},
	article.I:      {Open: "*", Close: "*", ExpelEnclosingWhitespace: true},
	article.CITE:   {Open: "*", Close: "*", ExpelEnclosingWhitespace: true},
	article.STRONG: {Open: "**", Close: "**", ExpelEnclosingWhitespace: true},
	article.B:      {Open: "**", Close: "**", ExpelEnclosingWhitespace: true},
	article.DEL:    {Open: "~~", Close: "~~", ExpelEnclosingWhitespace: true},
	article.S:      {Open: "~~", Close: "~~", ExpelEnclosingWhitespace: true},
	article.Q:      {Open: `"`, Close: `"`},
	article.A: {
		Open: InlineFunc(func(state *SerializerState, node *html.Node) string {
			state.InAutoLink = isPlainURL(node)
			if state.InAutoLink {
				return "<"
			}
			return "["
		}),
		Close: InlineFunc(func(state *SerializerState, node *html.Node) string {
			if state.InAutoLink {
				state.InAutoLink = false
				return ">"
			}
			href := model.Attr(node, "href")
			href = strings.ReplaceAll(href, "(", "\\(")
			href = strings.ReplaceAll(href, ")", "\\)")
			href = strings.ReplaceAll(href, `"`, `\"`)
			title := model.Attr(node, "title")
			if title != "" {
				title = ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
			}
			return fmt.Sprintf("](%s%s)", href, title)
		}),
	},
	article.CODE: {
		Open: InlineFunc(func(_state *SerializerState, node *html.Node) string {
			return backticksFor(model.TextContent(node), -1)
		}),
		Close: InlineFunc(func(_state *SerializerState, node *html.Node) string {
			return backticksFor(model.TextContent(node), 1)
		}),
		NoEscape: true,
	},
	article.KBD:  {Open: "`", Close: "`", NoEscape: true},
	article.SAMP: {Open: "`", Close: "`", NoEscape: true},
})

// listItem writes the inline runs of an item as paragraphs and its nested
// lists as blocks.
func listItem(state *SerializerState, node, _parent *html.Node, _index int) {
	var run []*html.Node
	flush := func() {
		if len(run) > 0 {
			state.RenderInlineNodes(node, run)
			state.CloseBlock(node)
			run = nil
		}
	}
	for i, c := range model.Children(node) {
		if k, err := state.schema.KindOf(c); err == nil {
			if flags, _ := state.schema.Classify(k); flags.Has(model.Blocks) || k == article.CASCADEH {
				flush()
				state.Render(c, node, i)
				continue
			}
		}
		run = append(run, c)
	}
	flush()
}

// table writes a pipe table. The first head row, or else the first row, is
// the header row.
func table(state *SerializerState, node, _parent *html.Node, _index int) {
	info, err := state.schema.Table(node)
	if err != nil {
		slog.Warn("Table skipped", "err", err)
		return
	}
	if info.Caption != nil {
		paragraph(state, info.Caption, node, 0)
	}
	rows := info.AllRows()
	if len(rows) == 0 || info.Cols == 0 {
		return
	}
	line := func(tr *html.Node) string {
		cells := make([]string, info.Cols)
		for i, td := range model.Elements(tr) {
			if i < len(cells) {
				cells[i] = state.inlineString(td)
			}
		}
		return "| " + strings.Join(cells, " | ") + " |"
	}
	state.Write(line(rows[0]))
	state.Out += "\n"
	state.Write("|" + strings.Repeat(" --- |", info.Cols))
	for _, tr := range rows[1:] {
		state.Out += "\n"
		state.Write(line(tr))
	}
	state.CloseBlock(node)
}

func backticksFor(text string, side int) string {
	length := 0
	ticks := strings.FieldsFunc(text, func(r rune) bool { return r != '`' })
	for _, t := range ticks {
		if l := len(t); l > length {
			length = l
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	for i := 0; i < length; i++ {
		result += "`"
	}
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

func isPlainURL(link *html.Node) bool {
	if model.HasAttr(link, "title") {
		return false
	}
	href := model.Attr(link, "href")
	if !strings.Contains(href, ":") {
		return false
	}
	children := model.Children(link)
	return len(children) == 1 && children[0].Type == html.TextNode && children[0].Data == href
}

// SerializerState is an object used to track state and expose methods related
// to markdown serialization. Instances are passed to node serialization
// functions.
type SerializerState struct {
	Nodes        map[model.Kind]NodeSerializerFunc
	Inlines      map[model.Kind]InlineSerializerSpec
	Delim        string
	Out          string
	Closed       *html.Node
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
	schema       *model.Schema
	tightLists   bool
	inline       bool
}

// NewSerializerState is the constructor for SerializerState.
//
// Options are the options passed to the serializer.
//
//	tightLists:: ?bool
//	Whether to render lists in a tight style. Defaults to false.
func NewSerializerState(s *Serializer, options map[string]interface{}) *SerializerState {
	tight := false
	if t, ok := options["tightLists"].(bool); ok {
		tight = t
	}
	return &SerializerState{
		Nodes:      s.Nodes,
		Inlines:    s.Inlines,
		schema:     s.Schema,
		tightLists: tight,
	}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock renders a block, prefixing each line with `delim`, and the first
// line in `firstDelim`. `node` should be the unit that is closed at the end
// of the block, and `f` is a function that renders the content of the block.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, node *html.Node, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(node)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed paragraphs,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the block for the given unit.
func (s *SerializerState) CloseBlock(node *html.Node) {
	s.Closed = node
}

var textRegexp1 = regexp.MustCompile(`(^|[^\\])\!$`)

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		// Escape exclamation marks in front of links
		if !esc && line != "" && line[0] == '[' && textRegexp1.MatchString(s.Out) {
			s.Out = s.Out[:len(s.Out)-1] + "\\!"
		}
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
		} else {
			s.Out += line
		}
		if line != "" {
			s.AtBlockStart = false
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render the given unit as a block.
func (s *SerializerState) Render(node, parent *html.Node, index int) {
	k, err := s.schema.KindOf(node)
	if err != nil {
		slog.Debug("Unit skipped", "err", err)
		return
	}
	if fn, ok := s.Nodes[k]; ok {
		fn(s, node, parent, index)
		return
	}
	if _, ok := s.Inlines[k]; ok || node.FirstChild != nil {
		s.RenderInline(node)
		s.CloseBlock(node)
	}
}

// RenderContent renders the contents of `parent` as blocks.
func (s *SerializerState) RenderContent(parent *html.Node) {
	for i, node := range model.Children(parent) {
		s.Render(node, parent, i)
	}
}

var inlineRegexp = regexp.MustCompile(`^(\s*)(.*?)(\s*)$`)

// RenderInline renders the contents of `parent` as inline content.
func (s *SerializerState) RenderInline(parent *html.Node) {
	s.RenderInlineNodes(parent, model.Children(parent))
}

// RenderInlineNodes renders some children of `parent` as inline content.
func (s *SerializerState) RenderInlineNodes(parent *html.Node, nodes []*html.Node) {
	s.AtBlockStart = true
	prev := s.inline
	s.inline = true
	siblings := model.Children(parent)
	for _, node := range nodes {
		index := 0
		for i, c := range siblings {
			if c == node {
				index = i
			}
		}
		s.renderInline(node, parent, index)
	}
	s.inline = prev
	s.AtBlockStart = false
}

func (s *SerializerState) renderInline(node, parent *html.Node, index int) {
	if node.Type == html.TextNode {
		s.Text(node.Data, !s.InAutoLink)
		return
	}
	k, err := s.schema.KindOf(node)
	if err != nil {
		slog.Debug("Inline unit skipped", "err", err)
		return
	}
	info, ok := s.Inlines[k]
	if !ok {
		if fn, ok := s.Nodes[k]; ok {
			fn(s, node, parent, index)
			return
		}
		for i, c := range model.Children(node) {
			s.renderInline(c, node, i)
		}
		return
	}
	if info.NoEscape {
		s.Text(s.InlineString(node, true)+model.TextContent(node)+s.InlineString(node, false), false)
		return
	}

	// The content is rendered first so that enclosing whitespace can be
	// moved out of the delimiters.
	s.Write()
	start := len(s.Out)
	atStart := s.AtBlockStart
	open := s.InlineString(node, true)
	for i, c := range model.Children(node) {
		s.renderInline(c, node, i)
	}
	inner := s.Out[start:]
	s.Out = s.Out[:start]
	leading, trailing := "", ""
	if info.ExpelEnclosingWhitespace {
		if parts := inlineRegexp.FindStringSubmatch(inner); len(parts) == 4 {
			leading, inner, trailing = parts[1], parts[2], parts[3]
		}
		if inner == "" {
			s.Out += leading + trailing
			s.AtBlockStart = atStart
			return
		}
	}
	s.Out += leading + open + inner + s.InlineString(node, false) + trailing
}

// inlineString renders the content of a unit on a single line.
func (s *SerializerState) inlineString(node *html.Node) string {
	sub := &SerializerState{
		Nodes:   s.Nodes,
		Inlines: s.Inlines,
		schema:  s.schema,
	}
	sub.RenderInline(node)
	out := strings.ReplaceAll(sub.Out, "|", "\\|")
	return strings.TrimSpace(strings.ReplaceAll(out, "\\\n", " "))
}

// RenderList renders a unit's content as a list. `delim` should be the extra
// indentation added to all lines except the first in an item, `firstDelim` is
// a function going from an item index to a delimiter for the first line of the
// item.
func (s *SerializerState) RenderList(node *html.Node, delim string, firstDelim func(i int) string) {
	if s.Closed != nil && s.Closed.Data == node.Data && s.sameKind(s.Closed, node) {
		s.flushClose(3)
	} else if s.InTightList {
		s.flushClose(1)
	}

	isTight := s.tightLists
	prevTight := s.InTightList
	s.InTightList = isTight
	for i, child := range model.Elements(node) {
		if i > 0 && isTight {
			s.flushClose(1)
		}
		first := firstDelim(i)
		s.WrapBlock(delim, &first, node, func() { s.Render(child, node, i) })
	}
	s.InTightList = prevTight
}

func (s *SerializerState) sameKind(a, b *html.Node) bool {
	ka, err := s.schema.KindOf(a)
	if err != nil {
		return false
	}
	return s.schema.Is(b, ka)
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`^(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}

// Quote wraps the string as a quote.
func (s *SerializerState) Quote(str string) string {
	wrap := `()`
	if !strings.Contains(str, `"`) {
		wrap = `""`
	} else if !strings.Contains(str, "'") {
		wrap = "''"
	}
	return wrap[:1] + str + wrap[1:]
}

// InlineString gets the markdown string for the opening or closing
// delimiter of an inline unit.
func (s *SerializerState) InlineString(node *html.Node, open bool) string {
	k, err := s.schema.KindOf(node)
	if err != nil {
		return ""
	}
	info := s.Inlines[k]
	value := info.Open
	if !open {
		value = info.Close
	}
	switch value := value.(type) {
	case string:
		return value
	case InlineFunc:
		return value(s, node)
	}
	return ""
}
