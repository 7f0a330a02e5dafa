package types

const (
	ROOT_TOKEN = "ROOT"
	ROOT_LABEL = "ROOT"
)

type Token string

// TaggedToken is a token paired with its predicted part of speech.
type TaggedToken struct {
	Token, POS string
}

type Sentence interface {
	Tokens() []string
}

type BasicSentence []Token

func NewBasicSentence(tokens []string) BasicSentence {
	retval := make(BasicSentence, len(tokens))
	for i, val := range tokens {
		retval[i] = Token(val)
	}
	return retval
}

func (b BasicSentence) Tokens() []string {
	retval := make([]string, len(b))
	for i, val := range b {
		retval[i] = string(val)
	}
	return retval
}

type TaggedSentence interface {
	Sentence
	TaggedTokens() []TaggedToken
}

type BasicTaggedSentence []TaggedToken

var _ TaggedSentence = BasicTaggedSentence{}

func (b BasicTaggedSentence) Tokens() []string {
	tokens := make([]string, len(b))
	for i, token := range b {
		tokens[i] = token.Token
	}
	return tokens
}

func (b BasicTaggedSentence) TaggedTokens() []TaggedToken {
	return []TaggedToken(b)
}

// Zip pairs tokens with their predicted labels; both slices must align.
func Zip(tokens []string, labels []string) BasicTaggedSentence {
	if len(tokens) != len(labels) {
		panic("Can't zip token and label slices of unequal length")
	}
	sent := make(BasicTaggedSentence, len(tokens))
	for i, token := range tokens {
		sent[i] = TaggedToken{token, labels[i]}
	}
	return sent
}
