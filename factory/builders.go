package factory

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// builders returns the units whose creation differs from the generic
// options-then-content rule.
func builders() map[model.Kind]builderFunc {
	return map[model.Kind]builderFunc{
		article.TIME:      buildDatetime,
		article.DEL:       buildDatetime,
		article.INS:       buildDatetime,
		article.CODE:      buildCode,
		article.CODEBLOCK: buildCodeBlock,
		article.CODELIST:  buildCodeList,
		article.CODELI:    buildCodeLine,
		article.TABLE:     buildTable,
		article.RUBY:      buildRuby,
		article.PICTURE:   buildPicture,
		article.TOC:       buildTOC,
	}
}

// buildDatetime combines the date and time options into the datetime
// attribute. Without content, the datetime is also the text.
func buildDatetime(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	opts = opts.Clone()
	if dt := Datetime(opts["date"], opts["time"]); dt != "" {
		opts["datetime"] = dt
	}
	delete(opts, "date")
	delete(opts, "time")
	f.setOptions(el, spec, opts)
	if s, ok := content.(string); content == nil || ok && s == "" {
		content = opts["datetime"]
	}
	return f.fill(el, spec, content)
}

func buildCode(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	return f.fill(el, spec, f.highlight(opts["lang"], content))
}

// highlight runs the highlighter on plain-text code. Any other content, or a
// highlighter failure, leaves the content as is.
func (f *Factory) highlight(lang string, content any) any {
	s, ok := content.(string)
	if !ok || lang == "" || f.highlighter == nil || s == "" {
		return content
	}
	out, err := f.highlighter.Highlight(lang, s)
	if err != nil {
		slog.Warn("Code highlighting failed", "lang", lang, "err", err)
		return content
	}
	return HTML(out)
}

func buildCodeBlock(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	switch content.(type) {
	case string, HTML:
		code, err := f.Create(article.CODE, content, langOption(opts["lang"]))
		if err != nil {
			return err
		}
		el.AppendChild(code)
		return nil
	}
	return f.fill(el, spec, content)
}

// buildCodeList makes one numbered line per source line.
func buildCodeList(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	var lines []string
	switch c := content.(type) {
	case string:
		lines = strings.Split(strings.TrimSuffix(c, "\n"), "\n")
	case []string:
		lines = c
	default:
		return f.fill(el, spec, content)
	}
	for _, line := range lines {
		li, err := f.Create(article.CODELI, line, langOption(opts["lang"]))
		if err != nil {
			return err
		}
		el.AppendChild(li)
	}
	return nil
}

func langOption(lang string) Options {
	if lang == "" {
		return nil
	}
	return Options{"lang": lang}
}

func buildCodeLine(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	lang := opts["lang"]
	opts = opts.Clone()
	delete(opts, "lang")
	f.setOptions(el, spec, opts)
	switch content.(type) {
	case nil, string, HTML:
		code, err := f.Create(article.CODE, content, langOption(lang))
		if err != nil {
			return err
		}
		el.AppendChild(code)
		return nil
	}
	return f.fill(el, spec, content)
}

func buildTable(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	ts, ok := content.(TableSpec)
	if !ok {
		return f.fill(el, spec, content)
	}
	rows, cols := ts.Rows, ts.Cols
	if cols <= 0 {
		for _, r := range ts.Cells {
			cols = max(cols, len(r))
		}
	}
	if rows <= 0 {
		rows = len(ts.Cells)
		if ts.HeadRow {
			rows--
		}
	}
	if cols <= 0 || rows < 0 {
		return fmt.Errorf("table needs at least one column, got %dx%d", rows, cols)
	}
	if ts.Caption != nil {
		caption, err := f.Create(article.CAPTION, ts.Caption, nil)
		if err != nil {
			return err
		}
		el.AppendChild(caption)
	}
	cell := func(r, c int) any {
		if r < len(ts.Cells) && c < len(ts.Cells[r]) {
			return ts.Cells[r][c]
		}
		return nil
	}
	row := 0
	makeSection := func(kind, cellKind model.Kind, n int) error {
		section, err := f.Create(kind, nil, nil)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			tr, err := f.Create(article.TR, nil, nil)
			if err != nil {
				return err
			}
			for c := 0; c < cols; c++ {
				td, err := f.Create(cellKind, cell(row, c), nil)
				if err != nil {
					return err
				}
				tr.AppendChild(td)
			}
			section.AppendChild(tr)
			row++
		}
		el.AppendChild(section)
		return nil
	}
	if ts.HeadRow {
		if err := makeSection(article.THEAD, article.TH, 1); err != nil {
			return err
		}
	}
	return makeSection(article.TBODY, article.TD, rows)
}

func buildRuby(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	var rs RubySpec
	switch c := content.(type) {
	case RubySpec:
		rs = c
	case string:
		rs = RubySpec{Base: c}
	default:
		return f.fill(el, spec, content)
	}
	parts := []struct {
		kind model.Kind
		body any
		skip bool
	}{
		{article.RB, rs.Base, false},
		{article.RP, rs.Open, rs.Open == ""},
		{article.RT, rs.Reading, false},
		{article.RP, rs.Close, rs.Close == ""},
	}
	for _, p := range parts {
		if p.skip {
			continue
		}
		n, err := f.Create(p.kind, p.body, nil)
		if err != nil {
			return err
		}
		el.AppendChild(n)
	}
	return nil
}

// buildPicture puts the sources first and the fallback image last. Options
// are attributes of the image.
func buildPicture(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	switch c := content.(type) {
	case []Options:
		for _, o := range c {
			source, err := f.Create(article.SOURCE, nil, o)
			if err != nil {
				return err
			}
			el.AppendChild(source)
		}
	default:
		if err := f.fill(el, spec, content); err != nil {
			return err
		}
	}
	var img *html.Node
	for _, c := range model.Elements(el) {
		if c.DataAtom == atom.Img {
			img = c
		}
	}
	imgSpec, err := f.schema.Spec(article.IMG)
	if err != nil {
		return err
	}
	if img == nil {
		if img, err = f.Create(article.IMG, nil, nil); err != nil {
			return err
		}
	}
	f.setOptions(img, imgSpec, opts)
	model.Append(el, img)
	return nil
}

func buildTOC(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	if content == nil {
		cascade, err := f.Create(article.CASCADE, nil, nil)
		if err != nil {
			return err
		}
		el.AppendChild(cascade)
		return nil
	}
	return f.fill(el, spec, content)
}
