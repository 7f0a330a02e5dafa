// Package raw reads pre-tokenized sentences: one sentence per line,
// tokens separated by whitespace. Tokenization itself is a collaborator's
// job; nothing here re-tokenizes.
package raw

import (
	"io"
	"os"
	"strings"

	nlp "sema/nlp/types"
)

func Read(reader io.Reader) ([]nlp.BasicSentence, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	sentences := make([]nlp.BasicSentence, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		sentences = append(sentences, nlp.NewBasicSentence(fields))
	}
	return sentences, nil
}

func ReadFile(filename string) ([]nlp.BasicSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}
