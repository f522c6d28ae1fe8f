package quran

import (
	"fmt"
	"io"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
)

func language(ctx *cli.Context) string {
	settings, err := ctx.Store.GetSettings()
	if err != nil || settings.Language == "" {
		return constants.DefaultLanguage
	}
	return settings.Language
}

// otherLanguage is the fallback translation when the preferred one is
// missing.
func otherLanguage(lang string) string {
	if lang == constants.LanguageEnglish {
		return constants.LanguageIndonesian
	}
	return constants.LanguageEnglish
}

func surahLine(s models.Surah, lang string) string {
	return fmt.Sprintf("%3d. %-20s %-28s %3d verses  %s",
		s.Number,
		s.Title(),
		s.Translation.Get(lang, otherLanguage(lang)),
		s.VersesCount,
		s.Revelation.Get(lang, otherLanguage(lang)))
}

func printVerse(w io.Writer, v models.Verse, lang string) {
	fmt.Fprintf(w, "[%d] %s\n", v.Number, v.Arabic)
	if v.Transliteration != "" {
		fmt.Fprintf(w, "    %s\n", v.Transliteration)
	}
	if t := v.Translation.Get(lang, otherLanguage(lang)); t != "" {
		fmt.Fprintf(w, "    %s\n", t)
	}
}
