package tui

import (
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
)

// Screen rows of the playing view. View and hit-testing share them.
const (
	headerRow   = 0
	conveyorRow = 3
	bucketRow   = 5
	bucketH     = 5
	progressRow = bucketRow + bucketH + 1
	cardGap     = 3
	bucketGap   = 2
)

// placedCard is a word card at its current conveyor position.
type placedCard struct {
	Word  sorting.WordItem
	Label string
	Rect  core.Rect
}

// placedBucket is a category bucket on screen.
type placedBucket struct {
	Category sorting.Category
	Rect     core.Rect
}

// sortingLayout is the geometry of one frame.
type sortingLayout struct {
	Cards   []placedCard
	Buckets []placedBucket
}

func cardLabel(w sorting.WordItem) string {
	return "[ " + w.Text + " ]"
}

// layoutFor positions the active words on the conveyor and the buckets below.
// The conveyor scrolls the whole strip once every speed seconds; a strip that
// fits the screen stays still and centered.
func layoutFor(snap sorting.Snapshot, width int, scroll time.Duration) sortingLayout {
	var l sortingLayout
	if width <= 0 {
		return l
	}

	active := snap.ActiveWords()
	labels := make([]string, len(active))
	strip := 0
	for i, w := range active {
		labels[i] = cardLabel(w)
		strip += utf8.RuneCountInString(labels[i]) + cardGap
	}

	if strip > 0 {
		if strip-cardGap <= width {
			x := (width - (strip - cardGap)) / 2
			for i, w := range active {
				n := utf8.RuneCountInString(labels[i])
				l.Cards = append(l.Cards, placedCard{Word: w, Label: labels[i], Rect: core.NewRect(x, conveyorRow, n, 1)})
				x += n + cardGap
			}
		} else {
			speed := time.Duration(core.Max(snap.Speed, 1)) * time.Second
			offset := int(int64(strip) * int64(scroll%speed) / int64(speed))
			// Two copies of the strip cover the wrap-around.
			for copyStart := -offset; copyStart < width; copyStart += strip {
				x := copyStart
				for i, w := range active {
					n := utf8.RuneCountInString(labels[i])
					r := core.NewRect(x, conveyorRow, n, 1)
					if r.Right() > 0 && r.X < width {
						l.Cards = append(l.Cards, placedCard{Word: w, Label: labels[i], Rect: r})
					}
					x += n + cardGap
				}
			}
		}
	}

	n := len(snap.Categories)
	if n > 0 {
		bw := (width - (n-1)*bucketGap) / n
		bw = core.Max(bw, 4)
		for i, c := range snap.Categories {
			// Buckets past the right edge are clipped to the screen.
			x := i * (bw + bucketGap)
			l.Buckets = append(l.Buckets, placedBucket{
				Category: c,
				Rect:     core.NewRect(x, bucketRow, core.Clamp(width-x, 0, bw), bucketH),
			})
		}
	}

	return l
}

// cardAt returns the word under the pointer, if any.
func (l sortingLayout) cardAt(x, y int) (sorting.WordItem, bool) {
	for _, c := range l.Cards {
		if c.Rect.Contains(x, y) {
			return c.Word, true
		}
	}
	return sorting.WordItem{}, false
}

// bucketAt returns the bucket under the pointer, if any.
func (l sortingLayout) bucketAt(x, y int) (placedBucket, bool) {
	for _, b := range l.Buckets {
		if b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return placedBucket{}, false
}

// bucketRect returns the rectangle of a category.
func (l sortingLayout) bucketRect(categoryID string) core.Rect {
	for _, b := range l.Buckets {
		if b.Category.ID == categoryID {
			return b.Rect
		}
	}
	return core.Rect{}
}
