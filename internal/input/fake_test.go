package input

import (
	"errors"
	"fmt"
	"time"
)

const cfUnicodeText = 13

type fakeKeyboard struct {
	events  []string
	tapErr  map[Key]error
	typeErr error
	onTap   func(Key)
}

func (k *fakeKeyboard) Press(key Key) error {
	k.events = append(k.events, "down:"+key.String())
	return nil
}

func (k *fakeKeyboard) Release(key Key) error {
	k.events = append(k.events, "up:"+key.String())
	return nil
}

func (k *fakeKeyboard) Tap(key Key) error {
	k.events = append(k.events, "tap:"+key.String())
	if k.onTap != nil {
		k.onTap(key)
	}
	return k.tapErr[key]
}

func (k *fakeKeyboard) Type(text string) error {
	k.events = append(k.events, "type:"+text)
	return k.typeErr
}

type fakeClipboard struct {
	content Snapshot
	open    bool

	busy        int // number of Open calls that fail before one succeeds
	busyForever bool
	opens       int

	snapshotErr error
	setErr      error
	restoreErr  error
}

var errBusy = errors.New("access denied")

func (c *fakeClipboard) Open() error {
	c.opens++
	if c.busyForever || c.busy > 0 {
		c.busy--
		return errBusy
	}
	if c.open {
		return errors.New("clipboard already open")
	}
	c.open = true
	return nil
}

func (c *fakeClipboard) Close() error {
	if !c.open {
		return errors.New("clipboard not open")
	}
	c.open = false
	return nil
}

func (c *fakeClipboard) Snapshot() (Snapshot, error) {
	if !c.open {
		return Snapshot{}, errors.New("clipboard not open")
	}
	if c.snapshotErr != nil {
		return Snapshot{}, c.snapshotErr
	}
	return Snapshot{Format: c.content.Format, Data: append([]byte(nil), c.content.Data...)}, nil
}

func (c *fakeClipboard) SetText(text string) error {
	if !c.open {
		return errors.New("clipboard not open")
	}
	if c.setErr != nil {
		// Win32 empties the clipboard before the failing SetClipboardData.
		c.content = Snapshot{}
		return c.setErr
	}
	c.content = Snapshot{Format: cfUnicodeText, Data: utf16Bytes(text)}
	return nil
}

func (c *fakeClipboard) Restore(s Snapshot) error {
	if !c.open {
		return errors.New("clipboard not open")
	}
	if c.restoreErr != nil {
		return c.restoreErr
	}
	c.content = Snapshot{Format: s.Format, Data: append([]byte(nil), s.Data...)}
	return nil
}

func utf16Bytes(s string) []byte {
	var b []byte
	for _, r := range s + "\x00" {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}

type sleepRecorder struct {
	sleeps []time.Duration
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.sleeps = append(r.sleeps, d)
}

func (r *sleepRecorder) String() string {
	return fmt.Sprint(r.sleeps)
}

func newTestSwapper(clip *fakeClipboard, kb *fakeKeyboard) (*Swapper, *sleepRecorder) {
	rec := &sleepRecorder{}
	s := NewSwapper(clip, kb, nil)
	s.sleep = rec.sleep
	return s, rec
}
