package vcard

import "strings"

// Encode renders the card as vCard 3.0 with CRLF line endings. Empty
// properties are omitted.
func (c Card) Encode() string {
	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}
	fn := c.FullName
	if fn == "" {
		fn = c.Org
	}
	lines = append(lines, "FN:"+escape(fn))
	lines = append(lines, "N:"+structuredName(c.FullName))
	if c.Title != "" {
		lines = append(lines, "TITLE:"+escape(c.Title))
	}
	if c.Org != "" {
		lines = append(lines, "ORG:"+escape(c.Org))
	}
	if c.Tel != "" {
		lines = append(lines, "TEL;TYPE=WORK,VOICE:"+escape(c.Tel))
	}
	if c.Email != "" {
		lines = append(lines, "EMAIL;TYPE=INTERNET:"+escape(c.Email))
	}
	if c.Address != "" {
		// free-form address goes in the street component
		lines = append(lines, "ADR;TYPE=WORK:;;"+escape(c.Address)+";;;;")
	}
	if c.URL != "" {
		lines = append(lines, "URL:"+escape(c.URL))
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// structuredName splits "Given Family" into "Family;Given;;;". Single
// words and CJK names without spaces become the family name.
func structuredName(full string) string {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return ";;;;"
	case 1:
		return escape(parts[0]) + ";;;;"
	default:
		family := parts[len(parts)-1]
		given := strings.Join(parts[:len(parts)-1], " ")
		return escape(family) + ";" + escape(given) + ";;;"
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\r\n", `\n`, "\n", `\n`)

func escape(s string) string {
	return escaper.Replace(s)
}
