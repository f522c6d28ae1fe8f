package quran

import (
	"context"
	"fmt"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/quran"
)

type BookmarkCmd struct {
	List   BookmarkListCmd   `cmd:"" help:"List bookmarks." default:"1"`
	Add    BookmarkAddCmd    `cmd:"" help:"Bookmark a surah (12) or a verse (12:5)."`
	Remove BookmarkRemoveCmd `cmd:"" help:"Remove a bookmark."`
	Toggle BookmarkToggleCmd `cmd:"" help:"Add the bookmark if missing, remove it otherwise."`
}

type BookmarkAddCmd struct {
	Ref string `arg:"" help:"Surah number or surah:verse."`
}

func (c *BookmarkAddCmd) Run(ctx *cli.Context) error {
	b, err := models.ParseBookmark(c.Ref)
	if err != nil {
		return err
	}
	b.CreatedAt = ctx.Now()
	if err := ctx.Store.AddBookmark(b); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	ctx.Printf("✓ Bookmarked %s\n", b.Key())
	return nil
}

type BookmarkRemoveCmd struct {
	Ref string `arg:"" help:"Surah number or surah:verse."`
}

func (c *BookmarkRemoveCmd) Run(ctx *cli.Context) error {
	b, err := models.ParseBookmark(c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Store.RemoveBookmark(b); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	ctx.Printf("✓ Removed bookmark %s\n", b.Key())
	return nil
}

type BookmarkToggleCmd struct {
	Ref string `arg:"" help:"Surah number or surah:verse."`
}

func (c *BookmarkToggleCmd) Run(ctx *cli.Context) error {
	b, err := models.ParseBookmark(c.Ref)
	if err != nil {
		return err
	}
	on, err := ctx.Library().ToggleBookmark(b)
	if err != nil {
		return err
	}
	if on {
		ctx.Printf("✓ Bookmarked %s\n", b.Key())
	} else {
		ctx.Printf("✓ Removed bookmark %s\n", b.Key())
	}
	return nil
}

type BookmarkListCmd struct {
	Text bool `help:"Load the text of verse bookmarks."`
}

func (c *BookmarkListCmd) Run(ctx *cli.Context) error {
	lib := ctx.Library()
	bookmarks, err := lib.Bookmarks()
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		ctx.Println("No bookmarks yet.")
		return nil
	}

	if !c.Text {
		for _, b := range bookmarks {
			ctx.Printf("%-8s %-6s %s\n", b.Key(), b.Kind, b.CreatedAt.In(ctx.Now().Location()).Format("2006-01-02 15:04"))
		}
		return nil
	}

	surahs, err := lib.SurahBookmarks()
	if err != nil {
		return err
	}
	if len(surahs) > 0 {
		ctx.Println("Surahs:")
		for _, b := range surahs {
			ctx.Printf("  %s\n", b.Key())
		}
	}

	verses, err := lib.ResolveVerseBookmarks(context.Background())
	if err != nil {
		return err
	}
	if len(verses) > 0 {
		ctx.Println("Verses:")
		lang := language(ctx)
		for _, r := range verses {
			ctx.Printf("  %s %s\n", r.SurahTitle, r.Bookmark.Key())
			printVerse(ctx.Stdout(), r.Verse, lang)
		}
	}
	return nil
}

type RecentCmd struct{}

func (c *RecentCmd) Run(ctx *cli.Context) error {
	recent, err := ctx.Library().Recent()
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		ctx.Println("Nothing read yet.")
		return nil
	}
	now := ctx.Now()
	for _, r := range recent {
		ctx.Printf("%3d. %-20s %-24s %s\n", r.Number, r.Transliteration, r.Translation, quran.ReadAgo(r, now))
	}
	return nil
}
