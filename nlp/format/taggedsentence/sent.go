// Package taggedsentence reads and writes tagged sentences in the
// word/POS format: one sentence per line, tokens separated by spaces,
// each token suffixed with a slash and its tag. Slashes inside the word
// are preserved; the tag is everything past the last slash.
package taggedsentence

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "sema/nlp/types"
)

func Read(reader io.Reader) ([]nlp.BasicTaggedSentence, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	sentences := make([]nlp.BasicTaggedSentence, 0, len(lines))
	for i, line := range lines {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		taggedTokenStrings := strings.Fields(line)
		sent := make(nlp.BasicTaggedSentence, len(taggedTokenStrings))
		for j, taggedTokenString := range taggedTokenStrings {
			taggedToken := strings.Split(taggedTokenString, "/")
			if len(taggedToken) < 2 {
				return nil, errors.New("Got untagged token: " + taggedTokenString + " at line " + fmt.Sprintf("%v", i))
			}
			token := strings.Join(taggedToken[:len(taggedToken)-1], "/")
			pos := taggedToken[len(taggedToken)-1]
			sent[j] = nlp.TaggedToken{Token: token, POS: pos}
		}
		sentences = append(sentences, sent)
	}
	return sentences, nil
}

func ReadFile(filename string) ([]nlp.BasicTaggedSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func Write(writer io.Writer, sentences []nlp.BasicTaggedSentence) error {
	for _, sent := range sentences {
		tokens := make([]string, len(sent))
		for i, tagged := range sent {
			tokens[i] = tagged.Token + "/" + tagged.POS
		}
		if _, err := fmt.Fprintln(writer, strings.Join(tokens, " ")); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(filename string, sentences []nlp.BasicTaggedSentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return Write(file, sentences)
}
