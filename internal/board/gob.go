package board

import (
	"bytes"
	"encoding/gob"
)

type boardGob struct {
	Height, Width int
	MineCount     int
	Mined         []bool
	Flagged       []bool
}

// [Board] implements [gob.GobEncoder]
func (b *Board) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardGob{
		Height:    b.Height,
		Width:     b.Width,
		MineCount: b.MineCount,
		Mined:     b.mined,
		Flagged:   b.flagged,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [gob.GobDecoder]
func (b *Board) GobDecode(data []byte) error {
	var shadow boardGob
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&shadow); err != nil {
		return err
	}
	b.Height = shadow.Height
	b.Width = shadow.Width
	b.MineCount = shadow.MineCount
	b.mined = shadow.Mined
	b.flagged = shadow.Flagged
	return nil
}
