package grammar

import (
	"github.com/corvidae/pika"
	"github.com/corvidae/pika/parse"
)

// validate checks the build-time invariants a Builder must satisfy
// before Build freezes it into a Grammar. Checks run in this order and
// the first violation found is returned.
func (b *Builder) validate() error {
	if err := b.checkStart(); err != nil {
		return err
	}
	if err := b.checkNamedBound(); err != nil {
		return err
	}
	if err := b.checkModes(); err != nil {
		return err
	}
	if err := b.checkListenerNames(); err != nil {
		return err
	}
	if err := b.checkImports(); err != nil {
		return err
	}
	if err := b.checkInversions(); err != nil {
		return err
	}
	return nil
}

func (b *Builder) fail(reason string) error {
	return &pika.MalformedGrammarError{Grammar: b.name, Reason: reason}
}

// checkStart requires a start symbol, for both a lexerless grammar's
// character-level Parse/ParseWith and a lexer-parser's token-level
// ParseTokens.
func (b *Builder) checkStart() error {
	if b.start.IsZero() {
		return b.fail("no start symbol set (call SetStart)")
	}
	return nil
}

// roots collects every symbol the grammar can reach matching from:
// the start and skip symbols, the recovery fragment, every explicitly
// named rule, and every lexer symbol across every mode.
func (b *Builder) roots() []parse.Symbol {
	var roots []parse.Symbol
	if !b.start.IsZero() {
		roots = append(roots, b.start)
	}
	if !b.skip.IsZero() {
		roots = append(roots, b.skip)
	}
	if !b.recovery.IsZero() {
		roots = append(roots, b.recovery)
	}
	for _, name := range b.namedOrder {
		roots = append(roots, b.named[name])
	}
	for _, mode := range b.modeOrder {
		roots = append(roots, b.modes[mode]...)
	}
	return roots
}

// checkNamedBound rejects any Named symbol reachable from the grammar's
// roots that was created via parse.NewNamed but never given an inner
// expression via Bind — a forward reference left dangling.
func (b *Builder) checkNamedBound() error {
	var unbound string
	parse.WalkSymbols(b.roots(), func(sym parse.Symbol) {
		if unbound == "" && sym.Kind() == parse.KindNamed && !sym.IsBound() {
			unbound = sym.Name()
		}
	})
	if unbound != "" {
		return b.fail("named symbol " + unbound + " was never bound (NewNamed without a matching Bind)")
	}
	return nil
}

// checkModes rejects a ModeBehavior whose target mode (Push or Set) was
// never registered via AddLexerSymbol — otherwise it would only surface
// later, confusingly, as an empty lexer-symbol list once that mode
// becomes current during tokenization.
func (b *Builder) checkModes() error {
	known := make(map[string]bool, len(b.modes)+1)
	known[""] = true // the default mode always exists
	for mode := range b.modes {
		known[mode] = true
	}
	for mode, syms := range b.modes {
		for _, sym := range syms {
			beh := sym.Behavior()
			if beh == nil {
				continue
			}
			switch beh.Op {
			case parse.ModePush, parse.ModeSet:
				if !known[beh.Mode] {
					return b.fail("lexer symbol in mode " + mode + " references unknown mode " + beh.Mode)
				}
			}
		}
	}
	return nil
}

// checkListenerNames rejects a listener registered for a name matching
// no Named rule, lexer symbol or token reference anywhere in the
// grammar — almost always a typo, since Walk would otherwise silently
// never dispatch it.
func (b *Builder) checkListenerNames() error {
	known := make(map[string]bool)
	parse.WalkSymbols(b.roots(), func(sym parse.Symbol) {
		if name := sym.Name(); name != "" {
			known[name] = true
		}
	})
	for name := range b.nullary {
		if !known[name] {
			return b.fail("listener registered for unknown symbol " + name)
		}
	}
	for name := range b.unary {
		if !known[name] {
			return b.fail("unary listener registered for unknown symbol " + name)
		}
	}
	return nil
}

// checkImports rejects any ImportFrom call whose name never resolved in
// its origin grammar's symbol table — spec.md §4.7's "every imported
// symbol exists in its origin grammar" invariant.
func (b *Builder) checkImports() error {
	if len(b.badImports) == 0 {
		return nil
	}
	bad := b.badImports[0]
	return b.fail("import from " + bad.origin + ": no symbol named " + bad.name)
}

// checkInversions rejects an Inversion whose child is a Switch covering
// the entire rune space: such an Inversion can never succeed (its child
// always matches), so it is a malformed construction rather than a
// legitimate always-fails combinator — spec.md §4.3/§7's "inversion of
// an all-inclusive range".
func (b *Builder) checkInversions() error {
	var bad bool
	parse.WalkSymbols(b.roots(), func(sym parse.Symbol) {
		if bad || sym.Kind() != parse.KindInversion {
			return
		}
		child := sym.Child()
		if child.Kind() == parse.KindSwitch && parse.IsAllInclusive(child.Ranges()) {
			bad = true
		}
	})
	if bad {
		return b.fail("inversion of an all-inclusive switch range can never match")
	}
	return nil
}
