package layout

import "golang.org/x/net/html/atom"

// Tag enumerates the HTML tags the mapper reacts to.
type Tag int

const (
	TagOther Tag = iota
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagP
	TagPre
	TagCode
	TagStrong
	TagB
	TagEm
	TagI
	TagBr
	TagUl
	TagOl
	TagLi
	TagScript
	TagStyle
)

var atomTags = map[atom.Atom]Tag{
	atom.H1:     TagH1,
	atom.H2:     TagH2,
	atom.H3:     TagH3,
	atom.H4:     TagH4,
	atom.H5:     TagH5,
	atom.H6:     TagH6,
	atom.P:      TagP,
	atom.Pre:    TagPre,
	atom.Code:   TagCode,
	atom.Strong: TagStrong,
	atom.B:      TagB,
	atom.Em:     TagEm,
	atom.I:      TagI,
	atom.Br:     TagBr,
	atom.Ul:     TagUl,
	atom.Ol:     TagOl,
	atom.Li:     TagLi,
	atom.Script: TagScript,
	atom.Style:  TagStyle,
}

// LookupTag resolves a lower-case tag name. Unknown names yield TagOther.
func LookupTag(name []byte) Tag {
	return atomTags[atom.Lookup(name)]
}

// HeadingLevel returns 1-6 for heading tags and 0 otherwise.
func (t Tag) HeadingLevel() int {
	if t >= TagH1 && t <= TagH6 {
		return int(t-TagH1) + 1
	}
	return 0
}

func (t Tag) isPreformatted() bool { return t == TagPre || t == TagCode }
func (t Tag) isBold() bool         { return t == TagStrong || t == TagB }
func (t Tag) isItalic() bool       { return t == TagEm || t == TagI }
func (t Tag) isList() bool         { return t == TagUl || t == TagOl }
func (t Tag) isRawText() bool      { return t == TagScript || t == TagStyle }
