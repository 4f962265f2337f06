// Copyright 2023 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package grammar

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/runeio"
)

// isSpace classifies whitespace the same way the "space" node kind does
// (node_space.go), so the tokenizer and that node agree on what
// whitespace means.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func peekRune(r *runeio.RuneReader) (rune, bool) {
	p, err := r.Peek(1)
	if err != nil || len(p) == 0 {
		return 0, false
	}
	return p[0], true
}

func consumeRune(r *runeio.RuneReader, rn rune, pos *int) {
	r.Discard(1) //nolint:errcheck // rn was just peeked successfully
	*pos += utf8.RuneLen(rn)
}

// consumeLineComment discards runes through end-of-line (or EOF), not
// including the newline in any token.
func consumeLineComment(r *runeio.RuneReader, pos *int) {
	for {
		rn, ok := peekRune(r)
		if !ok {
			return
		}
		consumeRune(r, rn, pos)
		if rn == '\n' {
			return
		}
	}
}

func makeToken(s string, start, end int) Token {
	t := Token{Str: s, Attrs: NewDict()}
	t.Attrs.Set(AttrStart, start, nil)
	t.Attrs.Set(AttrEnd, end, nil)
	return t
}

// LexString tokenizes s with shell-like quoting and escaping rules
// (spec.md §4.1):
//   - unquoted whitespace separates tokens
//   - single-quoted runs take no escapes
//   - double-quoted runs allow backslash to escape the next character
//   - backslash outside quotes escapes one character
//   - '#' begins a comment running to end-of-line, when it starts a token
//
// If strict is true, an unterminated quote at end-of-input is reported as
// a *Error with KindBadMessage naming the open quote character. Otherwise
// the token is closed as-is and the open quote character is returned as
// missingQuote (0 when no quote was left open).
//
// If keepTrailingSpace is true, a final empty token is appended when the
// input ended with unquoted whitespace or was empty, signaling "a new
// token may begin here" to completion callers.
func LexString(s string, strict, keepTrailingSpace bool) (vec *StrVec, missingQuote byte, err error) {
	r := runeio.NewReader(bufio.NewReader(strings.NewReader(s)))

	vec = New()
	pos := 0
	tokStart := 0
	building := false
	sawSpace := true // an empty input counts as "ended with nothing"
	var cur strings.Builder
	var quote byte

loop:
	for {
		rn, ok := peekRune(r)
		if !ok {
			break
		}

		if quote == 0 && !building {
			switch {
			case isSpace(rn):
				consumeRune(r, rn, &pos)
				sawSpace = true
				continue
			case rn == '#':
				consumeLineComment(r, &pos)
				sawSpace = true
				continue
			}
		}

		if quote == 0 && building && isSpace(rn) {
			vec.AddToken(makeToken(cur.String(), tokStart, pos))
			cur.Reset()
			building = false
			continue
		}

		if !building {
			tokStart = pos
			building = true
			sawSpace = false
		}

		switch {
		case quote == '\'':
			consumeRune(r, rn, &pos)
			if rn == '\'' {
				quote = 0
			} else {
				cur.WriteRune(rn)
			}
		case quote == '"':
			switch rn {
			case '\\':
				consumeRune(r, rn, &pos)
				nrn, ok2 := peekRune(r)
				if !ok2 {
					break loop // unterminated: trailing backslash inside quote
				}
				consumeRune(r, nrn, &pos)
				cur.WriteRune(nrn)
			case '"':
				consumeRune(r, rn, &pos)
				quote = 0
			default:
				consumeRune(r, rn, &pos)
				cur.WriteRune(rn)
			}
		case rn == '\'':
			consumeRune(r, rn, &pos)
			quote = '\''
		case rn == '"':
			consumeRune(r, rn, &pos)
			quote = '"'
		case rn == '\\':
			consumeRune(r, rn, &pos)
			nrn, ok2 := peekRune(r)
			if !ok2 {
				cur.WriteRune('\\')
				break loop
			}
			consumeRune(r, nrn, &pos)
			cur.WriteRune(nrn)
		default:
			consumeRune(r, rn, &pos)
			cur.WriteRune(rn)
		}
	}

	if quote != 0 {
		if strict {
			return nil, 0, wrapError(KindBadMessage, nil, "unterminated %c quote", quote)
		}
		missingQuote = quote
	}

	if building {
		vec.AddToken(makeToken(cur.String(), tokStart, pos))
		sawSpace = false
	}

	if keepTrailingSpace && sawSpace {
		vec.AddToken(makeToken("", pos, pos))
	}

	return vec, missingQuote, nil
}
