package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/bugspotter"
)

// StyleFromPalette returns a function that maps chroma token types to
// workspace styles based on the provided palette colors.
func StyleFromPalette(p bugspotter.Palette) StyleFunc {
	return func(tt chromalib.TokenType) bugspotter.Style {
		switch tt {
		// Type keywords (handled separately from other keywords)
		case chromalib.KeywordType:
			return bugspotter.Style{Foreground: string(p.Type), Bold: true}

		// Keywords
		case chromalib.Keyword, chromalib.KeywordConstant, chromalib.KeywordDeclaration,
			chromalib.KeywordNamespace, chromalib.KeywordPseudo, chromalib.KeywordReserved:
			return bugspotter.Style{Foreground: string(p.Keyword), Bold: true}

		// Comments
		case chromalib.Comment, chromalib.CommentHashbang, chromalib.CommentMultiline,
			chromalib.CommentPreproc, chromalib.CommentPreprocFile, chromalib.CommentSingle,
			chromalib.CommentSpecial:
			return bugspotter.Style{Foreground: string(p.Comment)}

		// Strings
		case chromalib.String, chromalib.StringAffix, chromalib.StringBacktick, chromalib.StringChar,
			chromalib.StringDelimiter, chromalib.StringDoc, chromalib.StringDouble,
			chromalib.StringEscape, chromalib.StringHeredoc, chromalib.StringInterpol,
			chromalib.StringOther, chromalib.StringRegex, chromalib.StringSingle,
			chromalib.StringSymbol:
			return bugspotter.Style{Foreground: string(p.String)}

		// Numbers
		case chromalib.Number, chromalib.NumberBin, chromalib.NumberFloat, chromalib.NumberHex,
			chromalib.NumberInteger, chromalib.NumberIntegerLong, chromalib.NumberOct:
			return bugspotter.Style{Foreground: string(p.Number)}

		// Operators
		case chromalib.Operator, chromalib.OperatorWord:
			return bugspotter.Style{Foreground: string(p.Operator)}

		// Function names and builtins
		case chromalib.NameFunction, chromalib.NameFunctionMagic:
			return bugspotter.Style{Foreground: string(p.Function)}
		case chromalib.NameBuiltin, chromalib.NameBuiltinPseudo:
			return bugspotter.Style{Foreground: string(p.Type)}

		// Constants
		case chromalib.NameConstant:
			return bugspotter.Style{Foreground: string(p.Constant)}

		// Punctuation
		case chromalib.Punctuation:
			return bugspotter.Style{Foreground: string(p.Punctuation)}

		default:
			return bugspotter.Style{}
		}
	}
}
