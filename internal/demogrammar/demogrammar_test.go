package demogrammar

import "testing"

func TestArithParsesNestedExpression(t *testing.T) {
	g, err := Arith()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	node, ok := g.Parse("1 + 2 * (3 - 4)")
	if !ok {
		t.Fatal("expected a successful parse")
	}
	if node.Symbol != "expr" {
		t.Fatalf("root symbol = %q, want %q", node.Symbol, "expr")
	}
}

func TestArithRejectsMalformedInput(t *testing.T) {
	g, err := Arith()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if _, ok := g.Parse("abc"); ok {
		t.Fatal("expected parse to fail on non-numeric input")
	}
}

func TestArithWithEvalComputesValue(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"2 + 3", 5},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 2 - 1", 4},
	}
	for _, c := range cases {
		g, eval, err := ArithWithEval()
		if err != nil {
			t.Fatalf("unexpected build error: %v", err)
		}
		node, ok := g.Parse(c.input)
		if !ok {
			t.Fatalf("%q: expected a successful parse", c.input)
		}
		if got := eval.Result(node); got != c.want {
			t.Fatalf("%q: got %v, want %v", c.input, got, c.want)
		}
	}
}

func TestQuotedStringsTokenizesModesAndSkipsWhitespace(t *testing.T) {
	g, err := QuotedStrings()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	tokens, err := g.Tokenize(`hello "hi"  world`)
	if err != nil {
		t.Fatalf("unexpected tokenize error: %v", err)
	}
	var names []string
	for _, tok := range tokens {
		names = append(names, tok.Name)
	}
	want := []string{"WORD", "STRING_START", "CHAR", "CHAR", "STRING_END", "WORD"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i, n := range names {
		if n != want[i] {
			t.Fatalf("token %d = %q, want %q (full: %v)", i, n, want[i], names)
		}
	}
}

func TestQuotedStringsRecoversFromIllegalByte(t *testing.T) {
	g, err := QuotedStrings()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	tokens, err := g.Tokenize("ab#cd")
	if err != nil {
		t.Fatalf("unexpected tokenize error: %v", err)
	}
	var reassembled string
	for _, tok := range tokens {
		reassembled += tok.Text
	}
	if reassembled != "ab#cd" {
		t.Fatalf("reassembled = %q, want %q", reassembled, "ab#cd")
	}
}
