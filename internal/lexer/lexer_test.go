package lexer

import (
	"reflect"
	"testing"
)

func TestTokenizeSimple(t *testing.T) {
	got := Tokenize("say hello world")
	want := []string{"say", "hello", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeDoubleQuotedWordWithSpaces(t *testing.T) {
	got := Tokenize(`say "hello world"`)
	want := []string{"say", "hello world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeSingleQuotedWord(t *testing.T) {
	got := Tokenize(`make -f 'my file.txt'`)
	want := []string{"make", "-f", "my file.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeMixedQuotesInOneWord(t *testing.T) {
	got := Tokenize(`read "it's fine"`)
	want := []string{"read", "it's fine"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	got := Tokenize("")
	if len(got) != 0 {
		t.Fatalf("Tokenize(\"\") = %v, want empty", got)
	}
}

func TestTokenizeExtraWhitespaceCollapses(t *testing.T) {
	got := Tokenize("  say    hi  ")
	want := []string{"say", "hi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}
