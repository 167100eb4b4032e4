package document

import "fmt"

// Replace swaps the content in [from, to) for the given inlines. It is the
// only primitive every other edit is built on. When the range spans blocks,
// the blocks in between are removed and the two ends are joined.
func (d *Document) Replace(from, to int, content ...Inline) error {
	if r := (Range{From: from, To: to}); !r.IsValid() {
		return fmt.Errorf("replace %s: %w", r, ErrRangeInvalid)
	}
	rf, err := d.Resolve(from)
	if err != nil {
		return err
	}
	rt, err := d.Resolve(to)
	if err != nil {
		return err
	}
	left, _ := splitInlines(d.Blocks[rf.Block].Inlines, rf.Offset)
	_, right := splitInlines(d.Blocks[rt.Block].Inlines, rt.Offset)
	merged := make([]Inline, 0, len(left)+len(content)+len(right))
	merged = append(merged, left...)
	merged = append(merged, content...)
	merged = append(merged, right...)

	blocks := make([]Block, 0, len(d.Blocks)-(rt.Block-rf.Block))
	blocks = append(blocks, d.Blocks[:rf.Block]...)
	blocks = append(blocks, Block{Inlines: normalize(merged)})
	blocks = append(blocks, d.Blocks[rt.Block+1:]...)
	d.Blocks = blocks
	return nil
}

// InsertText inserts text at pos and returns the position after it.
func (d *Document) InsertText(pos int, text string) (int, error) {
	t := Text{Value: text}
	if err := d.Replace(pos, pos, t); err != nil {
		return pos, err
	}
	return pos + t.Size(), nil
}

// SplitBlock breaks the block at pos and returns the first position of the
// new block.
func (d *Document) SplitBlock(pos int) (int, error) {
	r, err := d.Resolve(pos)
	if err != nil {
		return pos, err
	}
	left, right := splitInlines(d.Blocks[r.Block].Inlines, r.Offset)
	blocks := make([]Block, 0, len(d.Blocks)+1)
	blocks = append(blocks, d.Blocks[:r.Block]...)
	blocks = append(blocks, Block{Inlines: normalize(left)}, Block{Inlines: normalize(right)})
	blocks = append(blocks, d.Blocks[r.Block+1:]...)
	d.Blocks = blocks
	return pos + 2, nil
}

// BackwardRange returns the span a backward deletion at pos removes: the
// inline just before pos, with a mention token taken as one unit, or the
// boundary joining the block to its predecessor when pos starts a block.
// ok is false when nothing precedes pos.
func (d *Document) BackwardRange(pos int) (Range, bool) {
	r, err := d.Resolve(pos)
	if err != nil {
		return Range{}, false
	}
	if r.Offset == 0 {
		if r.Block == 0 {
			return Range{}, false
		}
		return Range{From: pos - 2, To: pos}, true
	}
	return Range{From: pos - 1, To: pos}, true
}

// ForwardRange is BackwardRange for the content just after pos.
func (d *Document) ForwardRange(pos int) (Range, bool) {
	r, err := d.Resolve(pos)
	if err != nil {
		return Range{}, false
	}
	if r.Offset == d.Blocks[r.Block].Size() {
		if r.Block == len(d.Blocks)-1 {
			return Range{}, false
		}
		return Range{From: pos, To: pos + 2}, true
	}
	return Range{From: pos, To: pos + 1}, true
}
