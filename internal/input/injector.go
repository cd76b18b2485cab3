package input

// Injector types into the focused window, either key by key or through a
// clipboard swap.
type Injector struct {
	kb   Keyboard
	swap *Swapper
}

func NewInjector(kb Keyboard, swap *Swapper) *Injector {
	return &Injector{kb: kb, swap: swap}
}

// Tap strikes each key in order.
func (in *Injector) Tap(keys ...Key) error {
	for _, key := range keys {
		if err := in.kb.Tap(key); err != nil {
			return err
		}
	}
	return nil
}

func (in *Injector) Type(text string) error {
	return in.kb.Type(text)
}

// Quote strikes Shift+quote. Command lines that treat quotes specially must
// see a real key press rather than a typed character.
func (in *Injector) Quote() error {
	return chord(in.kb, KeyShift, KeyQuote)
}

// TypeQuoted types text between two Shift+quote presses.
func (in *Injector) TypeQuoted(text string) error {
	if err := in.Quote(); err != nil {
		return err
	}
	if err := in.kb.Type(text); err != nil {
		return err
	}
	return in.Quote()
}

// Paste delivers text with a clipboard swap.
func (in *Injector) Paste(text string) error {
	return in.swap.PasteRestore(text)
}
