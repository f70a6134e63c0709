package indexing

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// AttributeBitmaps holds roaring bitmaps keyed by attribute value id,
// e.g. extension id -> bitmap of the PathIDs carrying that extension.
// Only files are added; directories never appear in attribute bitmaps.
type AttributeBitmaps struct {
	Ext map[uint32]*roaring.Bitmap
}

func NewAttributeBitmaps() *AttributeBitmaps {
	return &AttributeBitmaps{Ext: make(map[uint32]*roaring.Bitmap)}
}

func (ab *AttributeBitmaps) AddExt(extID uint32, pid PathID) {
	bm, ok := ab.Ext[extID]
	if !ok {
		bm = roaring.New()
		ab.Ext[extID] = bm
	}
	bm.Add(uint32(pid))
}

// ExtBitmap returns the bitmap for extID, an empty bitmap when the
// extension never occurs. The result must not be mutated.
func (ab *AttributeBitmaps) ExtBitmap(extID uint32) *roaring.Bitmap {
	if bm, ok := ab.Ext[extID]; ok {
		return bm
	}
	return roaring.New()
}

// AndExt returns the intersection of multiple extension bitmaps as a
// fresh bitmap the caller owns.
func (ab *AttributeBitmaps) AndExt(extIDs ...uint32) *roaring.Bitmap {
	if len(extIDs) == 0 {
		return roaring.New()
	}
	res := ab.clone(ab.Ext[extIDs[0]])
	for _, id := range extIDs[1:] {
		res.And(ab.ExtBitmap(id))
	}
	return res
}

func (ab *AttributeBitmaps) clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b)
	return c
}
