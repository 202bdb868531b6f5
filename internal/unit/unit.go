package unit

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unit defines how board values are written out. Values are already in
// the unit (e.g. 万円); nothing is converted, only grouped and suffixed.

type Unit struct {
	Name string // suffix, e.g. "万円"
	Zero string // label used for exactly 0, e.g. "0円"
	Lang language.Tag
}

// Man is the 10,000-yen unit (万円) the board is played in.
var Man = Unit{Name: "万円", Zero: "0円", Lang: language.Japanese}

// Group writes v with thousands separators: 1234567 -> "1,234,567".
func (u Unit) Group(v int) string {
	return message.NewPrinter(u.lang()).Sprintf("%d", v)
}

// Label is Group plus the unit suffix: 1200 -> "1,200万円".
func (u Unit) Label(v int) string {
	return u.Group(v) + u.Name
}

// ZeroAware is Label, except 0 is written with the Zero form.
func (u Unit) ZeroAware(v int) string {
	if v == 0 && u.Zero != "" {
		return u.Zero
	}
	return u.Label(v)
}

func (u Unit) lang() language.Tag {
	if u.Lang == language.Und {
		return language.Japanese
	}
	return u.Lang
}
