package export

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"sync"

	"github.com/youruser/talingchan-deck/internal/deck"
	imagepkg "github.com/youruser/talingchan-deck/internal/image"
	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

const maxThumbDownloads = 8

// ImageRenderer rasterizes the printable deck list to PNG.
type ImageRenderer struct {
	HTTP *http.Client
	Log  *zap.Logger
	// Thumbnails disables card art downloads when false.
	Thumbnails bool
}

// NewImageRenderer returns a renderer that downloads card art.
func NewImageRenderer(client *http.Client, log *zap.Logger) *ImageRenderer {
	if client == nil {
		client = util.NewHTTPClient(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageRenderer{HTTP: client, Log: log, Thumbnails: true}
}

// ValidateImage only needs a deck name.
func ValidateImage(s Snapshot) error {
	if blank(s.DeckName) {
		return ErrDeckNameRequired
	}
	return nil
}

// ImageFileName is decklist-<deck>.png with whitespace replaced.
func ImageFileName(deckName string) string {
	return "decklist-" + util.Slug(deckName, "untitled") + ".png"
}

// Render draws Only#1 and Avatar, Magic and Construct, and the life deck in
// three columns with a QR code of the text list. Card art that cannot be
// fetched is replaced by a blank thumbnail.
func (r *ImageRenderer) Render(ctx context.Context, s Snapshot) (*Artifact, error) {
	if err := ValidateImage(s); err != nil {
		return nil, err
	}

	thumbs := r.fetchThumbs(ctx, s)
	p := deck.Present(s.Main)
	section := func(name string) imagepkg.Section {
		g := p.Group(name)
		sec := imagepkg.Section{Header: g.Name + " (" + strconv.Itoa(g.Total) + ")"}
		for _, e := range g.Entries {
			sec.Lines = append(sec.Lines, imagepkg.Line{Count: e.Count, Name: e.Name, Thumb: thumbs[e.ImageURL]})
		}
		return sec
	}
	life := imagepkg.Section{Header: "Life Deck (" + strconv.Itoa(len(s.Life)) + ")"}
	for _, c := range s.Life {
		life.Lines = append(life.Lines, imagepkg.Line{Count: 1, Name: c.Name, Thumb: thumbs[c.ImageURL]})
	}

	sheet := imagepkg.Sheet{
		Title: s.DeckName,
		Columns: [][]imagepkg.Section{
			{section(deck.GroupOnlyOne), section(deck.GroupAvatar)},
			{section(deck.GroupMagic), section(deck.GroupConstruct)},
			{life},
		},
	}
	if qr, err := imagepkg.GenerateQRImage(s.Text(), 400); err != nil {
		r.Log.Warn("deck list too long for a QR code", zap.Error(err))
	} else {
		sheet.QR = qr
	}

	data, err := imagepkg.EncodePNG(imagepkg.ComposeDeckImage(sheet))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &Artifact{FileName: ImageFileName(s.DeckName), ContentType: "image/png", Data: data}, nil
}

func (r *ImageRenderer) fetchThumbs(ctx context.Context, s Snapshot) map[string]image.Image {
	out := map[string]image.Image{}
	if !r.Thumbnails {
		return out
	}
	urls := map[string]struct{}{}
	for _, e := range s.Main {
		if e.ImageURL != "" {
			urls[e.ImageURL] = struct{}{}
		}
	}
	for _, c := range s.Life {
		if c.ImageURL != "" {
			urls[c.ImageURL] = struct{}{}
		}
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxThumbDownloads)
	)
	for u := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()
			img, err := imagepkg.DownloadImage(ctx, r.HTTP, u)
			if err != nil {
				r.Log.Warn("card image download failed", zap.String("url", u), zap.Error(err))
				return
			}
			mu.Lock()
			out[u] = img
			mu.Unlock()
		}(u)
	}
	wg.Wait()
	return out
}
