// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice3mOYVqXMH19LzIn8WfeVhQΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slice7bpRtyQn0wsΔwWkaiyYRLAΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.OwnerID, bs[n:])
	return n + slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Marshal(v.Vector, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OwnerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Source)
	size += ord.String.Size(v.OwnerID)
	return size + slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Size(v.Vector)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Skip(bs[n:])
	n += n1
	return
}

var DocumentVectorMUS = documentVectorMUS{}

type documentVectorMUS struct{}

func (s documentVectorMUS) Marshal(v DocumentVector, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.OwnerID, bs[n:])
	return n + slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Marshal(v.Vector, bs[n:])
}

func (s documentVectorMUS) Unmarshal(bs []byte) (v DocumentVector, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OwnerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentVectorMUS) Size(v DocumentVector) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Source)
	size += ord.String.Size(v.OwnerID)
	return size + slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Size(v.Vector)
}

func (s documentVectorMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice3mOYVqXMH19LzIn8WfeVhQΞΞ.Skip(bs[n:])
	n += n1
	return
}

var DocumentMetadataMUS = documentMetadataMUS{}

type documentMetadataMUS struct{}

func (s documentMetadataMUS) Marshal(v DocumentMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += ord.String.Marshal(v.OwnerID, bs[n:])
	n += slice7bpRtyQn0wsΔwWkaiyYRLAΞΞ.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s documentMetadataMUS) Unmarshal(bs []byte) (v DocumentMetadata, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OwnerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = slice7bpRtyQn0wsΔwWkaiyYRLAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMetadataMUS) Size(v DocumentMetadata) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += ord.String.Size(v.OwnerID)
	size += slice7bpRtyQn0wsΔwWkaiyYRLAΞΞ.Size(v.Tags)
	size += ord.String.Size(v.Summary)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s documentMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice7bpRtyQn0wsΔwWkaiyYRLAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var DuplicatePairMUS = duplicatePairMUS{}

type duplicatePairMUS struct{}

func (s duplicatePairMUS) Marshal(v DuplicatePair, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.OwnerID, bs[n:])
	n += ord.String.Marshal(v.SourceDocumentID, bs[n:])
	n += ord.String.Marshal(v.TargetDocumentID, bs[n:])
	n += varint.Float32.Marshal(v.Similarity, bs[n:])
	n += ord.String.Marshal(v.DuplicateType, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
}

func (s duplicatePairMUS) Unmarshal(bs []byte) (v DuplicatePair, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OwnerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceDocumentID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TargetDocumentID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Similarity, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DuplicateType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s duplicatePairMUS) Size(v DuplicatePair) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.OwnerID)
	size += ord.String.Size(v.SourceDocumentID)
	size += ord.String.Size(v.TargetDocumentID)
	size += varint.Float32.Size(v.Similarity)
	size += ord.String.Size(v.DuplicateType)
	return size + raw.TimeUnixMicro.Size(v.CreatedAt)
}

func (s duplicatePairMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
