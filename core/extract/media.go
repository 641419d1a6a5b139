package extract

import (
	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
)

type mediaKind int

const (
	images mediaKind = iota
	videos
	audios
	mediaKinds
)

type mediaOp int

const (
	// opAppend opens a new asset.
	opAppend mediaOp = iota
	// opAppendPlayer opens a new asset that is an embeddable HTML player.
	opAppendPlayer
	// The remaining ops describe the most recently opened asset.
	opSecureURL
	opType
	opWidth
	opHeight
)

type mediaRule struct {
	kind mediaKind
	op   mediaOp
}

var mediaRules = map[string]mediaRule{
	"og:image":             {images, opAppend},
	"og:image:url":         {images, opAppend},
	"twitter:image":        {images, opAppend},
	"twitter:image:src":    {images, opAppend},
	"og:image:secure_url":  {images, opSecureURL},
	"og:image:type":        {images, opType},
	"og:image:width":       {images, opWidth},
	"twitter:image:width":  {images, opWidth},
	"og:image:height":      {images, opHeight},
	"twitter:image:height": {images, opHeight},

	"og:video":                           {videos, opAppend},
	"og:video:url":                       {videos, opAppend},
	"twitter:player:stream":              {videos, opAppend},
	"twitter:player":                     {videos, opAppendPlayer},
	"og:video:secure_url":                {videos, opSecureURL},
	"og:video:type":                      {videos, opType},
	"twitter:player:stream:content_type": {videos, opType},
	"og:video:width":                     {videos, opWidth},
	"twitter:player:width":               {videos, opWidth},
	"og:video:height":                    {videos, opHeight},
	"twitter:player:height":              {videos, opHeight},

	"og:audio":            {audios, opAppend},
	"og:audio:url":        {audios, opAppend},
	"og:audio:secure_url": {audios, opSecureURL},
	"og:audio:type":       {audios, opType},
}

// mediaList accumulates media references in document order. Variant tags
// only ever touch the last entry; type and dimensions keep the first value
// they were given.
type mediaList struct {
	items []core.MediaReference
}

func (l *mediaList) apply(op mediaOp, value, link string) {
	switch op {
	case opAppend, opAppendPlayer:
		url := links.Resolve(value, link)
		if url == "" {
			return
		}
		ref := core.MediaReference{URL: url}
		if op == opAppendPlayer {
			ref.Type = core.String("text/html")
		}
		l.items = append(l.items, ref)

	case opSecureURL:
		if url := links.Resolve(value, link); value != "" && url != "" {
			l.patchLast(func(m *core.MediaReference) { m.URL = url })
		}

	case opType:
		if value != "" {
			l.patchLast(func(m *core.MediaReference) {
				if m.Type == nil {
					m.Type = core.String(value)
				}
			})
		}

	case opWidth:
		if n := core.PositiveInt(value); n != nil {
			l.patchLast(func(m *core.MediaReference) {
				if m.Width == nil {
					m.Width = n
				}
			})
		}

	case opHeight:
		if n := core.PositiveInt(value); n != nil {
			l.patchLast(func(m *core.MediaReference) {
				if m.Height == nil {
					m.Height = n
				}
			})
		}
	}
}

// patchLast applies patch to the most recently opened asset, if any.
func (l *mediaList) patchLast(patch func(*core.MediaReference)) {
	if len(l.items) == 0 {
		return
	}
	patch(&l.items[len(l.items)-1])
}

// finish sniffs a type for every entry still missing one and returns the
// entries. The result is never nil.
func (l *mediaList) finish() []core.MediaReference {
	out := make([]core.MediaReference, len(l.items))
	for i, m := range l.items {
		if m.Type == nil {
			m.Type = core.String(links.SniffFromPath(m.URL))
		}
		out[i] = m
	}
	return out
}
