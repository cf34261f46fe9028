/*
Package pika is a packrat parsing toolkit.

pika builds parsers and combined lexer-parsers from a small algebra of
symbols (Text, Switch, Option, Repetition, Junction, Sequence, Inversion,
End, LexerSymbol, Named) assembled at definition time through package
grammar's builder, and then applies them to character or token input to
produce an abstract syntax tree. Package structure is as follows:

■ iter: revertible, position-savable iterators over strings, element
slices and streaming rune sources.

■ parse: the symbol algebra, the pivot map and the packrat match engine.

■ lexer: a first-match tokenizer driven by mode-scoped lexer symbols
(tried in declaration order), with skip and recovery handling.

■ ast: syntax tree nodes, post-order listener dispatch and tree-string
rendering.

■ grammar: the frozen, validated Grammar container and its builder.

The root package holds types shared across all of the above: Span,
Token and the library's sentinel error types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pika
