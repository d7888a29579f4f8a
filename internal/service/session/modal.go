package session

// ModalState is the visibility of the memory visualization overlay.
type ModalState int

const (
	ModalHidden ModalState = iota
	ModalVisible
)

func (s ModalState) String() string {
	switch s {
	case ModalVisible:
		return "visible"
	default:
		return "hidden"
	}
}

type modal struct {
	state ModalState
	url   string
}

func (m *modal) open(url string) {
	m.state = ModalVisible
	m.url = url
}

// close reports whether the modal was visible.
func (m *modal) close() bool {
	if m.state != ModalVisible {
		return false
	}
	m.state = ModalHidden
	m.url = ""
	return true
}
