package quran

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/waktu/internal/cli"
)

type QuranCmd struct {
	List   SurahListCmd `cmd:"" help:"List all surahs." default:"1"`
	Surah  SurahCmd     `cmd:"" help:"Read a surah."`
	Ayah   AyahCmd      `cmd:"" help:"Read a single verse."`
	Juz    JuzCmd       `cmd:"" help:"Read a juz."`
	Random RandomCmd    `cmd:"" help:"Show a random verse."`
	Search SearchCmd    `cmd:"" help:"Find a surah by number or name."`
}

type SurahListCmd struct{}

func (c *SurahListCmd) Run(ctx *cli.Context) error {
	surahs, err := ctx.Quran().ListSurahs(context.Background())
	if err != nil {
		return err
	}
	lang := language(ctx)
	for _, s := range surahs {
		ctx.Println(surahLine(s, lang))
	}
	return nil
}

type SurahCmd struct {
	Number int  `arg:"" help:"Surah number (1-114)."`
	Raw    bool `help:"Print the provider response as-is."`
}

func (c *SurahCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Library().OpenSurah(context.Background(), c.Number)
	if err != nil {
		return err
	}
	if c.Raw {
		return printRaw(ctx, s.Raw)
	}

	lang := language(ctx)
	ctx.Printf("%s  %s\n", s.Title(), s.Name)
	ctx.Printf("%s · %d verses · %s\n\n", s.Translation.Get(lang, otherLanguage(lang)), s.VersesCount, s.Revelation.Get(lang, otherLanguage(lang)))
	for _, v := range s.Verses {
		printVerse(ctx.Stdout(), v, lang)
	}
	return nil
}

type AyahCmd struct {
	Surah int  `arg:"" help:"Surah number (1-114)."`
	Ayah  int  `arg:"" help:"Verse number."`
	Raw   bool `help:"Print the provider response as-is."`
}

func (c *AyahCmd) Run(ctx *cli.Context) error {
	v, err := ctx.Quran().Ayah(context.Background(), c.Surah, c.Ayah)
	if err != nil {
		return err
	}
	if c.Raw {
		return printRaw(ctx, v.Raw)
	}
	if v.Surah != nil {
		ctx.Printf("%s %d:%d\n", v.Surah.Title(), c.Surah, v.Number)
	}
	printVerse(ctx.Stdout(), v, language(ctx))
	return nil
}

type JuzCmd struct {
	Number int  `arg:"" help:"Juz number (1-30)."`
	Raw    bool `help:"Print the provider response as-is."`
}

func (c *JuzCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Quran().Juz(context.Background(), c.Number)
	if err != nil {
		return err
	}
	if c.Raw {
		return printRaw(ctx, j.Raw)
	}

	ctx.Printf("Juz %d: %s to %s (%d verses)\n\n", j.Number, j.StartInfo, j.EndInfo, j.TotalVerses)
	lang := language(ctx)
	for _, v := range j.Verses {
		printVerse(ctx.Stdout(), v, lang)
	}
	return nil
}

type RandomCmd struct{}

func (c *RandomCmd) Run(ctx *cli.Context) error {
	v, err := ctx.Quran().RandomAyah(context.Background())
	if err != nil {
		return err
	}
	if v.Surah != nil {
		ctx.Printf("%s %d:%d\n", v.Surah.Title(), v.Surah.Number, v.Number)
	}
	printVerse(ctx.Stdout(), v, language(ctx))
	return nil
}

type SearchCmd struct {
	Term string `arg:"" help:"Surah number or part of its name."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Library().Lookup(context.Background(), c.Term)
	if err != nil {
		return err
	}
	lang := language(ctx)
	if res.Surah != nil {
		ctx.Println(surahLine(*res.Surah, lang))
		return nil
	}
	if len(res.Matches) == 0 {
		ctx.Printf("No surahs match %q.\n", c.Term)
		return nil
	}
	for _, s := range res.Matches {
		ctx.Println(surahLine(s, lang))
	}
	return nil
}

func printRaw(ctx *cli.Context, raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("no raw response available")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		ctx.Println(string(raw))
		return nil
	}
	ctx.Println(buf.String())
	return nil
}
