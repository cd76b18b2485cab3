//go:build !windows

package input

type unsupportedKeyboard struct{}

func NewKeyboard() Keyboard {
	return unsupportedKeyboard{}
}

func (unsupportedKeyboard) Press(Key) error   { return ErrUnsupported }
func (unsupportedKeyboard) Release(Key) error { return ErrUnsupported }
func (unsupportedKeyboard) Tap(Key) error     { return ErrUnsupported }
func (unsupportedKeyboard) Type(string) error { return ErrUnsupported }

type unsupportedClipboard struct{}

func NewClipboard() Clipboard {
	return unsupportedClipboard{}
}

func (unsupportedClipboard) Open() error                 { return ErrUnsupported }
func (unsupportedClipboard) Close() error                { return ErrUnsupported }
func (unsupportedClipboard) Snapshot() (Snapshot, error) { return Snapshot{}, ErrUnsupported }
func (unsupportedClipboard) SetText(string) error        { return ErrUnsupported }
func (unsupportedClipboard) Restore(Snapshot) error      { return ErrUnsupported }
