package engine

import (
	"bytes"
	"errors"
	"iter"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"goqa/slog"
	"goqa/tfIndex"
	"goqa/tokenizer"
)

// periodSegmenter splits on ". " so that tests do not depend on a trained model.
type periodSegmenter struct{}

func (periodSegmenter) Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, part := range strings.SplitAfter(text, ". ") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !yield(part) {
				return
			}
		}
	}
}

func newTestEngine(t *testing.T, corpus map[string]string) *Engine {
	t.Helper()
	engine, err := New(corpus, WithSegmenter(periodSegmenter{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

var languages = map[string]string{
	"python.txt": "Python is a programming language.\nGuido van Rossum created Python in 1991. Python emphasizes readability.",
	"go.txt":     "Go is a programming language designed at Google.",
	"ai.txt":     "Artificial intelligence studies intelligent agents. Machine learning is a field of artificial intelligence.",
}

func TestAnswer(t *testing.T) {
	engine := newTestEngine(t, languages)
	answer, err := engine.Answer("Who created Python?", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if diff := cmp.Diff([]string{"created", "python"}, answer.Query); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	if len(answer.Files) != 1 || answer.Files[0].DocID != "python.txt" {
		t.Errorf("files = %+v, want python.txt", answer.Files)
	}
	if diff := cmp.Diff([]string{"Guido van Rossum created Python in 1991."}, answer.Texts()); diff != "" {
		t.Errorf("sentences mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswerUsesSentenceLevelIDF(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"f1.txt": "alpha xray. beta yank. alpha zulu.",
		"f2.txt": "beta",
		"f3.txt": "beta",
		"f4.txt": "beta",
	})
	answer, err := engine.Answer("alpha beta", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Files[0].DocID != "f1.txt" {
		t.Fatalf("top file = %s, want f1.txt", answer.Files[0].DocID)
	}
	// Across the corpus beta is everywhere, but inside f1.txt it is the rarer word.
	if diff := cmp.Diff([]string{"beta yank."}, answer.Texts()); diff != "" {
		t.Errorf("sentences mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswerSeveralFiles(t *testing.T) {
	engine := newTestEngine(t, languages)
	answer, err := engine.Answer("programming language", 2, 3)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	files := []string{answer.Files[0].DocID, answer.Files[1].DocID}
	// Both files score the same, identifier order breaks the tie.
	if diff := cmp.Diff([]string{"go.txt", "python.txt"}, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if len(answer.Sentences) != 3 {
		t.Fatalf("got %d sentences, want 3", len(answer.Sentences))
	}
	for i := 1; i < len(answer.Sentences); i++ {
		prev, cur := answer.Sentences[i-1], answer.Sentences[i]
		if cur.MatchingIDF > prev.MatchingIDF {
			t.Errorf("sentence %d out of order: %+v after %+v", i, cur, prev)
		}
	}
}

func TestAnswerUnknownWords(t *testing.T) {
	engine := newTestEngine(t, languages)
	answer, err := engine.Answer("zebra quagga", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Files[0].Score != 0 || answer.Files[0].DocID != "ai.txt" {
		t.Errorf("files = %+v, want ai.txt with score 0", answer.Files)
	}
	if len(answer.Sentences) != 1 || answer.Sentences[0].MatchingIDF != 0 {
		t.Errorf("sentences = %+v", answer.Sentences)
	}
}

func TestAnswerWithoutSentences(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"stop.txt": "The a an. Of the."})
	answer, err := engine.Answer("anything", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(answer.Files) != 1 || len(answer.Sentences) != 0 {
		t.Errorf("answer = %+v, want one file and no sentences", answer)
	}
}

func TestSentencesDropsEmptyAndDuplicates(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"a.txt": "Dogs bark. The. Dogs bark.\nCats purr.",
		"b.txt": "Cats purr. Birds sing.",
	})
	got := engine.Sentences([]string{"b.txt", "a.txt"})
	want := []tfIndex.Document{
		{ID: "Cats purr.", Tokens: []string{"cats", "purr"}},
		{ID: "Birds sing.", Tokens: []string{"birds", "sing"}},
		{ID: "Dogs bark.", Tokens: []string{"dogs", "bark"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sentences mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEmptyCorpus(t *testing.T) {
	if _, err := New(map[string]string{}, WithSegmenter(periodSegmenter{})); !errors.Is(err, tfIndex.ErrEmptyCollection) {
		t.Errorf("error = %v, want ErrEmptyCollection", err)
	}
}

func TestFiles(t *testing.T) {
	engine := newTestEngine(t, languages)
	if diff := cmp.Diff([]string{"ai.txt", "go.txt", "python.txt"}, engine.Files()); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if engine.Len() != 3 {
		t.Errorf("Len() = %d, want 3", engine.Len())
	}
}

func TestWithTokenizer(t *testing.T) {
	engine, err := New(languages, WithSegmenter(periodSegmenter{}), WithTokenizer(tokenizer.NewEnglish("python")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	answer, err := engine.Answer("python", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(answer.Query) != 0 {
		t.Errorf("query = %v, want python filtered out", answer.Query)
	}
}

func TestAnswerConcurrentWithPunkt(t *testing.T) {
	engine, err := New(map[string]string{
		"smith.txt": "Mr. Smith went to Washington. He met the president there.",
		"jones.txt": "Dr. Jones studied ancient artifacts. She travelled widely.",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want, err := engine.Answer("Where did Smith go?", 1, 1)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if diff := cmp.Diff([]string{"Mr. Smith went to Washington."}, want.Texts()); diff != "" {
		t.Errorf("sentences mismatch (-want +got):\n%s", diff)
	}

	var wg sync.WaitGroup
	results := make([]Answer, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Answer("Where did Smith go?", 1, 1)
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("answer %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestAnswerExplainsAtDebugLevel(t *testing.T) {
	t.Cleanup(func() { slog.Configure("info", slog.FormatAuto, os.Stderr) })
	var buf bytes.Buffer
	if err := slog.Configure("debug", slog.FormatText, &buf); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	engine := newTestEngine(t, languages)
	if _, err := engine.Answer("Who created Python? Zebra", 1, 1); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	logged := buf.String()
	for _, want := range []string{
		"Query word `python`: idf 1.0986, in 1 of 3 files",
		"Query word `zebra` is not in the corpus",
		"File `python.txt` has `python` 3 times",
		"File `python.txt` has `created` 1 times",
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("debug output lacks %q:\n%s", want, logged)
		}
	}

	buf.Reset()
	if err := slog.Configure("info", slog.FormatText, &buf); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if _, err := engine.Answer("Who created Python?", 1, 1); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if strings.Contains(buf.String(), "Query word") {
		t.Errorf("explanation logged above debug level:\n%s", buf.String())
	}
}
