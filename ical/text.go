package ical

import "strings"

// maxLineOctets is the physical line-length limit of the format, excluding
// the CRLF terminator.
const maxLineOctets = 75

var escaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// Escape backslash-escapes the characters the format reserves in text values:
// backslash, semicolon, comma and newline.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Fold splits a logical line into physical lines of at most maxLineOctets
// octets, continuation lines prefixed with one space. The split never lands
// inside a multi-byte character or between a backslash and the character it
// escapes.
func Fold(line string) []string {
	if len(line) <= maxLineOctets {
		return []string{line}
	}

	var out []string
	var cur strings.Builder
	budget := maxLineOctets

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		// An escape pair is atomic: take the backslash together with the
		// rune it escapes.
		token := string(runes[i])
		if runes[i] == '\\' && i+1 < len(runes) {
			token += string(runes[i+1])
			i++
		}
		if cur.Len()+len(token) > budget {
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteByte(' ')
			budget = maxLineOctets
		}
		cur.WriteString(token)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
