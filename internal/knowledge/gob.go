package knowledge

import (
	"bytes"
	"encoding/gob"
)

/*
Sessions are persisted between moves, so the knowledge base must survive
a gob round trip. Propagation always runs to completion before a session
is stored, so the to-do queue is empty by construction and only facts and
live sentences are encoded.
*/

type knowledgeGob struct {
	Height, Width int
	Strict        bool
	Moves         []Cell
	Safes         []Cell
	Mines         []Cell
	Sentences     []sentenceGob
}

type sentenceGob struct {
	Cells []Cell
	Count int
}

// [Knowledge] implements [gob.GobEncoder]
func (k *Knowledge) GobEncode() ([]byte, error) {
	shadow := knowledgeGob{
		Height: k.height,
		Width:  k.width,
		Strict: k.strict,
		Moves:  k.moves.Sorted(),
		Safes:  k.safes.Sorted(),
		Mines:  k.mines.Sorted(),
	}
	for _, s := range k.sentences {
		if s == nil {
			continue
		}
		shadow.Sentences = append(shadow.Sentences, sentenceGob{
			Cells: s.cells.Sorted(),
			Count: s.count,
		})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(shadow); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Knowledge] implements [gob.GobDecoder]
func (k *Knowledge) GobDecode(data []byte) error {
	var shadow knowledgeGob
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&shadow); err != nil {
		return err
	}
	k.height = shadow.Height
	k.width = shadow.Width
	k.strict = shadow.Strict
	k.moves = NewCellSet(shadow.Moves...)
	k.safes = NewCellSet(shadow.Safes...)
	k.mines = NewCellSet(shadow.Mines...)
	k.sentences = nil
	k.queue = nil
	k.queued = make(map[int]struct{})
	for _, sg := range shadow.Sentences {
		s, err := NewSentence(NewCellSet(sg.Cells...), sg.Count)
		if err != nil {
			return err
		}
		k.sentences = append(k.sentences, s)
	}
	return nil
}
