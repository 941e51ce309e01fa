package tokenizer

import "unicode"

// SimpleTokenizer for parsing tokens from string
type SimpleTokenizer struct {
	content []rune
}

// Construct SimpleTokenizer from a string
func SimpleTokenizerFromString(content string) *SimpleTokenizer {
	return &SimpleTokenizer{[]rune(content)}
}

// Trim whitespaces from left
func (simpleTokenizer *SimpleTokenizer) TrimLeft() {
	for len(simpleTokenizer.content) > 0 && unicode.IsSpace(simpleTokenizer.content[0]) {
		simpleTokenizer.content = simpleTokenizer.content[1:]
	}
}

// Chop n runes from left
func (simpleTokenizer *SimpleTokenizer) ChopLeft(n int) string {
	token := simpleTokenizer.content[:n]
	simpleTokenizer.content = simpleTokenizer.content[n:]
	return string(token)
}

// Chop while the rune meets the given predicate
func (simpleTokenizer *SimpleTokenizer) ChopWhile(pred func(rune) bool) string {
	n := 0
	for n < len(simpleTokenizer.content) && pred(simpleTokenizer.content[n]) {
		n += 1
	}
	return simpleTokenizer.ChopLeft(n)
}

// Checks if the simpleTokenizer still contain tokens
func (simpleTokenizer *SimpleTokenizer) Contains() bool {
	simpleTokenizer.TrimLeft()
	return len(simpleTokenizer.content) != 0
}

// Returns next token from the simpleTokenizer, also moves the simpleTokenizer to next tokens position.
// Numbers and words (with their combining marks) are returned whole, anything
// else one rune at a time.
func (simpleTokenizer *SimpleTokenizer) NextToken() string {
	simpleTokenizer.TrimLeft()
	if len(simpleTokenizer.content) == 0 {
		return ""
	}
	if unicode.IsNumber(simpleTokenizer.content[0]) {
		return simpleTokenizer.ChopWhile(unicode.IsNumber)
	}
	if unicode.IsLetter(simpleTokenizer.content[0]) {
		return simpleTokenizer.ChopWhile(func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mark)
		})
	}
	return simpleTokenizer.ChopLeft(1)
}

func (simpleTokenizer *SimpleTokenizer) Tokens() []string {
	ret := []string{}
	for simpleTokenizer.Contains() {
		ret = append(ret, simpleTokenizer.NextToken())
	}
	return ret
}
