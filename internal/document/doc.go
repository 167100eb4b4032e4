// Package document implements the inline content model edited by the
// composer: an ordered list of text blocks whose content is a tagged variant
// of text runs and mention tokens.
//
// Positions use tree-position numbering. The document starts at 0, every
// block opens and closes with one position each, text contributes one
// position per rune and a mention token is an atom of size 1. The first
// block's content therefore starts at position 1:
//
//	<p>Hey @sm</p>    positions: 0 <p> 1 H 2 e 3 y 4 ' ' 5 @ 6 s 7 m 8 </p> 9
//
// Because a token occupies a single position, no position can fall inside it
// and every edit removes a token whole or not at all.
package document
