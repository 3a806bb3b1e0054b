// Package text holds positioned text fragments and joins glyph-level PDF
// text into runs.
//
// PDF text layers are commonly written one glyph per show operation, and
// some parsers drop the space glyphs entirely. [MergeGlyphs] rebuilds words
// and phrases from that output using horizontal gaps measured in font
// sizes:
//
//	runs := text.MergeGlyphs(glyphs, text.DefaultMergeConfig())
//
// Each [Fragment] carries its text with its X/Y origin in PDF user space,
// width, font size and font name.
package text
