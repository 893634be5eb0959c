package article

import "github.com/shodgson/article-go/model"

// Compatibility groups, used when a unit cannot be converted kind for kind
// but a near-equivalent transplant is possible.
const (
	CompatList       = "list"
	CompatItem       = "item"
	CompatSmallBlock = "smallblock"
	CompatSection    = "section"
	CompatNode       = "node"
	CompatLine       = "line"
	CompatHeading    = "heading"
	CompatCell       = "cell"
	CompatCode       = "code"
	CompatTable      = "table"
	CompatFigure     = "figure"
)

const (
	blocks  = model.Blocks
	inlines = model.Inlines
	strukt  = model.Struct
	structx = model.StructX
	content = model.Content
	empty   = model.Empty
	sealed  = model.Sealed
	fixed   = model.Fixed
	special = model.Special
)

var (
	datetimeAttrs = []string{"datetime", "date", "time"}
	mediaAttrs    = []string{"src", "controls", "autoplay", "loop", "muted", "poster", "preload", "width", "height"}
	cellAttrs     = []string{"colspan", "rowspan", "scope"}
)

func phrase(key model.Kind, tag string, attrs ...string) *model.KindSpec {
	return &model.KindSpec{
		Key:         key,
		Tag:         tag,
		Flags:       inlines | content,
		Content:     "TEXT phrase",
		Group:       "phrase inline",
		Attrs:       attrs,
		SelfExtract: true,
	}
}

func heading(key model.Kind, tag string) *model.KindSpec {
	return &model.KindSpec{
		Key:     key,
		Tag:     tag,
		Flags:   blocks | content,
		Content: "TEXT inline",
		Compat:  CompatHeading,
		Attrs:   []string{"id"},
	}
}

func section(key model.Kind, head model.Kind, sub string) *model.KindSpec {
	return &model.KindSpec{
		Key:     key,
		Tag:     "section",
		Role:    true,
		Flags:   blocks | strukt,
		Content: string(head) + " " + sub + " block",
		Compat:  CompatSection,
		Head:    head,
		Item:    P,
		Attrs:   []string{"id"},
	}
}

// Kinds are the specs of every article unit. Registration order matters: it
// is the order group members are listed in.
var Kinds = []*model.KindSpec{
	// The text node pseudo-kind.
	{Key: TEXT, Tag: model.TextTag},

	// The whole document. Never moved, never converted.
	{Key: ARTICLE, Tag: "article", Flags: blocks | strukt | fixed,
		Content: "H1 ABSTRACT TOC HEADER S1 FOOTER block",
		Compat:  CompatSection, Head: H1, Item: P, Atomic: true},
	{Key: HEADER, Tag: "header", Flags: blocks | strukt | fixed,
		Content: "block", Compat: CompatSection, Item: P},
	{Key: FOOTER, Tag: "footer", Flags: blocks | strukt | fixed,
		Content: "block", Compat: CompatSection, Item: P},
	{Key: ABSTRACT, Tag: "header", Role: true, Flags: blocks | strukt | sealed | fixed,
		Content: "P", Compat: CompatSection, Item: P},
	// The table of contents, generated from the section headings.
	{Key: TOC, Tag: "nav", Role: true, Default: true, Flags: blocks | special | sealed | fixed,
		Content: "CASCADE", Atomic: true},

	section(S1, H2, "S2"),
	section(S2, H3, "S3"),
	section(S3, H4, "S4"),
	section(S4, H5, "S5"),
	section(S5, H6, ""),

	heading(H1, "h1"),
	heading(H2, "h2"),
	heading(H3, "h3"),
	heading(H4, "h4"),
	heading(H5, "h5"),
	heading(H6, "h6"),

	// Content lines.
	{Key: P, Tag: "p", Flags: blocks | content, Content: "TEXT inline",
		Group: "block", Compat: CompatLine},
	{Key: NOTE, Tag: "p", Role: true, Flags: blocks | content, Content: "TEXT inline",
		Group: "block", Compat: CompatLine},
	{Key: ADDRESS, Tag: "address", Flags: blocks | content, Content: "TEXT inline",
		Group: "block", Compat: CompatLine},

	// Lists.
	{Key: UL, Tag: "ul", Flags: blocks | strukt, Content: "LI",
		Group: "block", Compat: CompatList, Item: LI},
	{Key: OL, Tag: "ol", Flags: blocks | strukt, Content: "LI",
		Group: "block", Compat: CompatList, Item: LI, Attrs: []string{"start", "reversed", "type"}},
	{Key: LI, Tag: "li", Flags: structx | content, Content: "TEXT inline UL OL",
		Compat: CompatItem, Attrs: []string{"value"}},
	{Key: CASCADE, Tag: "ol", Role: true, Flags: blocks | strukt, Content: "CASCADELI",
		Group: "block", Compat: CompatList, Item: CASCADELI},
	{Key: CASCADELI, Tag: "li", Role: true, Flags: structx | sealed, Content: "CASCADEH CASCADE",
		Compat: CompatNode, Head: CASCADEH},
	{Key: CASCADEH, Tag: "h5", Role: true, Flags: structx | content, Content: "TEXT inline",
		Compat: CompatHeading},
	{Key: DL, Tag: "dl", Flags: blocks | strukt, Content: "DT DD",
		Group: "block", Compat: CompatList, Head: DT, Item: DD},
	{Key: DT, Tag: "dt", Flags: structx | content, Content: "TEXT inline", Compat: CompatItem},
	{Key: DD, Tag: "dd", Flags: structx | content, Content: "TEXT inline", Compat: CompatItem},

	// Code.
	{Key: CODEBLOCK, Tag: "pre", Flags: blocks | strukt, Content: "CODE",
		Group: "block", Compat: CompatCode, Item: CODE, Attrs: []string{"lang"}},
	{Key: CODELIST, Tag: "ol", Role: true, Flags: blocks | strukt | sealed, Content: "CODELI",
		Group: "block", Compat: CompatCode, Item: CODELI, Attrs: []string{"lang", "start"}},
	{Key: CODELI, Tag: "li", Role: true, Flags: structx | sealed, Content: "CODE",
		Compat: CompatCode, Item: CODE},
	{Key: CODE, Tag: "code", Flags: inlines | content, Content: "TEXT B I",
		Group: "phrase inline", Compat: CompatCode, Attrs: []string{"lang"}},

	// Small blocks.
	{Key: BLOCKQUOTE, Tag: "blockquote", Flags: blocks | strukt, Content: "H4 block",
		Group: "block", Compat: CompatSmallBlock, Head: H4, Item: P, Attrs: []string{"cite"}},
	{Key: ASIDE, Tag: "aside", Flags: blocks | strukt, Content: "H4 block",
		Group: "block", Compat: CompatSmallBlock, Head: H4, Item: P},
	{Key: DETAILS, Tag: "details", Flags: blocks | strukt, Content: "SUMMARY block",
		Group: "block", Compat: CompatSmallBlock, Head: SUMMARY, Item: P, Attrs: []string{"open"}},
	{Key: SUMMARY, Tag: "summary", Flags: structx | content, Content: "TEXT inline", Compat: CompatItem},

	// Tables.
	{Key: TABLE, Tag: "table", Flags: blocks | strukt, Content: "CAPTION THEAD TBODY TFOOT",
		Group: "block", Compat: CompatTable, Head: CAPTION, Item: TBODY, Attrs: []string{"border"}},
	{Key: CAPTION, Tag: "caption", Flags: structx | content, Content: "TEXT inline", Compat: CompatItem},
	{Key: THEAD, Tag: "thead", Flags: strukt | structx, Content: "TR", Item: TR},
	{Key: TBODY, Tag: "tbody", Flags: strukt | structx, Content: "TR", Item: TR},
	{Key: TFOOT, Tag: "tfoot", Flags: strukt | structx, Content: "TR", Item: TR},
	{Key: TR, Tag: "tr", Flags: strukt | structx, Content: "TH TD", Item: TD},
	{Key: TH, Tag: "th", Flags: structx | content, Content: "TEXT inline",
		Compat: CompatCell, Attrs: cellAttrs},
	{Key: TD, Tag: "td", Flags: structx | content, Content: "TEXT inline",
		Compat: CompatCell, Attrs: cellAttrs},

	// Figures and embedded media.
	{Key: FIGURE, Tag: "figure", Flags: blocks | strukt,
		Content: "FIGCAPTION embed P TABLE CODEBLOCK CODELIST BLOCKQUOTE UL OL",
		Group:   "block", Compat: CompatFigure, Head: FIGCAPTION, Item: P},
	{Key: FIGCAPTION, Tag: "figcaption", Flags: structx | content, Content: "TEXT inline", Compat: CompatItem},
	{Key: IMG, Tag: "img", Flags: inlines | empty, Group: "embed inline",
		Attrs: []string{"src", "alt", "title", "width", "height", "loading"}, SelfExtract: true},
	{Key: PICTURE, Tag: "picture", Role: true, Default: true, Flags: inlines | strukt | sealed,
		Content: "SOURCE IMG", Group: "embed inline", Item: SOURCE, SelfExtract: true},
	{Key: SOURCE, Tag: "source", Flags: structx | empty,
		Attrs: []string{"src", "srcset", "media", "type", "sizes"}},
	{Key: TRACK, Tag: "track", Flags: structx | empty,
		Attrs: []string{"src", "kind", "srclang", "label", "default"}},
	{Key: AUDIO, Tag: "audio", Flags: inlines | strukt, Content: "SOURCE TRACK",
		Group: "embed inline", Item: SOURCE, Attrs: mediaAttrs, SelfExtract: true},
	{Key: VIDEO, Tag: "video", Flags: inlines | strukt, Content: "SOURCE TRACK",
		Group: "embed inline", Item: SOURCE, Attrs: mediaAttrs, SelfExtract: true},

	// Ruby annotation: base, optional parentheses, reading.
	{Key: RUBY, Tag: "ruby", Role: true, Default: true, Flags: inlines | strukt | sealed,
		Content: "RB RP RT", Group: "inline", SelfExtract: true},
	{Key: RB, Tag: "rb", Flags: structx | content, Content: "TEXT"},
	{Key: RP, Tag: "rp", Flags: structx | content, Content: "TEXT"},
	{Key: RT, Tag: "rt", Flags: structx | content, Content: "TEXT"},

	// Phrasing units.
	phrase(STRONG, "strong"),
	phrase(EM, "em"),
	phrase(Q, "q", "cite"),
	phrase(ABBR, "abbr", "title"),
	phrase(DFN, "dfn", "title"),
	phrase(CITE, "cite"),
	phrase(SMALL, "small"),
	phrase(SUB, "sub"),
	phrase(SUP, "sup"),
	phrase(MARK, "mark"),
	phrase(B, "b"),
	phrase(I, "i"),
	phrase(U, "u"),
	phrase(S, "s"),
	phrase(KBD, "kbd"),
	phrase(VAR, "var"),
	phrase(SAMP, "samp"),
	phrase(BDO, "bdo", "dir"),
	{Key: A, Tag: "a", Flags: inlines | content, Content: "TEXT phrase embed", Group: "inline",
		Attrs: []string{"href", "target", "title", "rel"}, SelfExtract: true},
	{Key: TIME, Tag: "time", Flags: inlines | content, Content: "TEXT", Group: "inline",
		Attrs: datetimeAttrs, SelfExtract: true},
	{Key: DEL, Tag: "del", Flags: inlines | content, Content: "TEXT phrase", Group: "inline",
		Attrs: append([]string{"cite"}, datetimeAttrs...), SelfExtract: true},
	{Key: INS, Tag: "ins", Flags: inlines | content, Content: "TEXT phrase", Group: "inline",
		Attrs: append([]string{"cite"}, datetimeAttrs...), SelfExtract: true},
	{Key: BR, Tag: "br", Flags: inlines | empty, Group: "phrase inline", SelfExtract: true},
	{Key: WBR, Tag: "wbr", Flags: inlines | empty, Group: "phrase inline", SelfExtract: true},

	// Structurally atomic units.
	{Key: SPACE, Tag: "span", Role: true, Flags: inlines | empty | special, Group: "inline",
		Attrs: []string{"width", "height"}, Atomic: true},
	{Key: BLANK, Tag: "div", Role: true, Flags: blocks | empty | special, Group: "block",
		Attrs: []string{"width", "height"}, Atomic: true},
	{Key: HR, Tag: "hr", Flags: blocks | empty | special, Group: "block",
		Attrs: []string{"role", "thickness", "length", "height"}},
}
