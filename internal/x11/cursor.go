package x11

import (
	"fmt"

	"github.com/1broseidon/winframe/internal/frame"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// cursorGlyphs maps resize directions to cursor font glyphs.
var cursorGlyphs = map[frame.ResizeDirection]uint16{
	frame.ResizeNone:      xcursor.LeftPtr,
	frame.ResizeUp:        xcursor.TopSide,
	frame.ResizeUpRight:   xcursor.TopRightCorner,
	frame.ResizeRight:     xcursor.RightSide,
	frame.ResizeDownRight: xcursor.BottomRightCorner,
	frame.ResizeDown:      xcursor.BottomSide,
	frame.ResizeDownLeft:  xcursor.BottomLeftCorner,
	frame.ResizeLeft:      xcursor.LeftSide,
	frame.ResizeUpLeft:    xcursor.TopLeftCorner,
}

// Cursors shows resize cursors on the root window. Cursors are created on
// first use and kept until Free.
type Cursors struct {
	conn    *Connection
	cursors map[frame.ResizeDirection]xproto.Cursor
	current frame.ResizeDirection
	set     bool
}

// NewCursors returns a cursor set bound to c.
func NewCursors(c *Connection) *Cursors {
	return &Cursors{conn: c, cursors: make(map[frame.ResizeDirection]xproto.Cursor)}
}

func (cs *Cursors) cursor(d frame.ResizeDirection) (xproto.Cursor, error) {
	if cur, ok := cs.cursors[d]; ok {
		return cur, nil
	}
	glyph, ok := cursorGlyphs[d]
	if !ok {
		glyph = xcursor.LeftPtr
	}
	cur, err := xcursor.CreateCursor(cs.conn.XUtil, glyph)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s cursor: %w", d, err)
	}
	cs.cursors[d] = cur
	return cur, nil
}

// SetResizeCursor shows the cursor for d on the root window.
func (cs *Cursors) SetResizeCursor(d frame.ResizeDirection) error {
	if cs.set && cs.current == d {
		return nil
	}
	cur, err := cs.cursor(d)
	if err != nil {
		return err
	}
	err = xproto.ChangeWindowAttributesChecked(cs.conn.XUtil.Conn(), cs.conn.Root,
		xproto.CwCursor, []uint32{uint32(cur)}).Check()
	if err != nil {
		return fmt.Errorf("failed to set root cursor: %w", err)
	}
	cs.current = d
	cs.set = true
	return nil
}

// Free releases the created cursors.
func (cs *Cursors) Free() {
	for d, cur := range cs.cursors {
		xproto.FreeCursor(cs.conn.XUtil.Conn(), cur)
		delete(cs.cursors, d)
	}
	cs.set = false
}
