//go:build !windows

package window

type systemSource struct{}

func (systemSource) enumerate() ([]uintptr, error) {
	return nil, ErrUnsupported
}

func (systemSource) open(uintptr) (Window, error) {
	return nil, ErrUnsupported
}

type systemLinker struct{}

func (systemLinker) AttachThreadInput(uint32, uint32, bool) error {
	return ErrUnsupported
}

func (systemLinker) CurrentThreadID() uint32 {
	return 0
}
