package article

import "github.com/shodgson/article-go/model"

// The closed vocabulary of article units.
const (
	TEXT model.Kind = "TEXT"

	ARTICLE  model.Kind = "ARTICLE"
	HEADER   model.Kind = "HEADER"
	FOOTER   model.Kind = "FOOTER"
	ABSTRACT model.Kind = "ABSTRACT"
	TOC      model.Kind = "TOC"
	S1       model.Kind = "S1"
	S2       model.Kind = "S2"
	S3       model.Kind = "S3"
	S4       model.Kind = "S4"
	S5       model.Kind = "S5"

	H1 model.Kind = "H1"
	H2 model.Kind = "H2"
	H3 model.Kind = "H3"
	H4 model.Kind = "H4"
	H5 model.Kind = "H5"
	H6 model.Kind = "H6"

	P       model.Kind = "P"
	NOTE    model.Kind = "NOTE"
	ADDRESS model.Kind = "ADDRESS"

	UL        model.Kind = "UL"
	OL        model.Kind = "OL"
	LI        model.Kind = "LI"
	CASCADE   model.Kind = "CASCADE"
	CASCADELI model.Kind = "CASCADELI"
	CASCADEH  model.Kind = "CASCADEH"
	DL        model.Kind = "DL"
	DT        model.Kind = "DT"
	DD        model.Kind = "DD"

	CODEBLOCK model.Kind = "CODEBLOCK"
	CODELIST  model.Kind = "CODELIST"
	CODELI    model.Kind = "CODELI"
	CODE      model.Kind = "CODE"

	BLOCKQUOTE model.Kind = "BLOCKQUOTE"
	ASIDE      model.Kind = "ASIDE"
	DETAILS    model.Kind = "DETAILS"
	SUMMARY    model.Kind = "SUMMARY"

	TABLE   model.Kind = "TABLE"
	CAPTION model.Kind = "CAPTION"
	THEAD   model.Kind = "THEAD"
	TBODY   model.Kind = "TBODY"
	TFOOT   model.Kind = "TFOOT"
	TR      model.Kind = "TR"
	TH      model.Kind = "TH"
	TD      model.Kind = "TD"

	FIGURE     model.Kind = "FIGURE"
	FIGCAPTION model.Kind = "FIGCAPTION"
	IMG        model.Kind = "IMG"
	PICTURE    model.Kind = "PICTURE"
	SOURCE     model.Kind = "SOURCE"
	TRACK      model.Kind = "TRACK"
	AUDIO      model.Kind = "AUDIO"
	VIDEO      model.Kind = "VIDEO"

	RUBY model.Kind = "RUBY"
	RB   model.Kind = "RB"
	RP   model.Kind = "RP"
	RT   model.Kind = "RT"

	STRONG model.Kind = "STRONG"
	EM     model.Kind = "EM"
	Q      model.Kind = "Q"
	ABBR   model.Kind = "ABBR"
	DFN    model.Kind = "DFN"
	CITE   model.Kind = "CITE"
	SMALL  model.Kind = "SMALL"
	SUB    model.Kind = "SUB"
	SUP    model.Kind = "SUP"
	MARK   model.Kind = "MARK"
	B      model.Kind = "B"
	I      model.Kind = "I"
	U      model.Kind = "U"
	S      model.Kind = "S"
	KBD    model.Kind = "KBD"
	VAR    model.Kind = "VAR"
	SAMP   model.Kind = "SAMP"
	BDO    model.Kind = "BDO"
	A      model.Kind = "A"
	TIME   model.Kind = "TIME"
	DEL    model.Kind = "DEL"
	INS    model.Kind = "INS"
	BR     model.Kind = "BR"
	WBR    model.Kind = "WBR"

	SPACE model.Kind = "SPACE"
	BLANK model.Kind = "BLANK"
	HR    model.Kind = "HR"
)

// Headings lists the heading kinds by level, H1 first.
var Headings = []model.Kind{H1, H2, H3, H4, H5, H6}

// Sections lists the section kinds by depth, S1 first.
var Sections = []model.Kind{S1, S2, S3, S4, S5}
