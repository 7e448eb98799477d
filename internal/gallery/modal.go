// Package gallery holds the state machines behind the storefront's image
// viewers: the full-screen image modal and the recommended products
// carousel.
package gallery

import "sync"

type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// ScrollLock suspends page scrolling behind the modal.
type ScrollLock interface {
	Lock()
	Unlock()
}

type noopScrollLock struct{}

func (noopScrollLock) Lock()   {}
func (noopScrollLock) Unlock() {}

// Modal is Idle until Open succeeds, then Open(images, index, label) until
// Close or Unmount.
type Modal struct {
	mu     sync.Mutex
	scroll ScrollLock
	locked bool

	open   bool
	images []string
	index  int
	label  string
}

func NewModal(scroll ScrollLock) *Modal {
	if scroll == nil {
		scroll = noopScrollLock{}
	}

	return &Modal{scroll: scroll}
}

// Open shows images starting at index. It refuses an empty image list. An
// index outside the list starts at the first image.
func (m *Modal) Open(images []string, index int, label string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(images) == 0 {
		return false
	}
	if index < 0 || index >= len(images) {
		index = 0
	}

	m.images = append([]string(nil), images...)
	m.index = index
	m.label = label
	m.open = true

	if !m.locked {
		m.scroll.Lock()
		m.locked = true
	}

	return true
}

func (m *Modal) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return
	}
	m.index = (m.index + 1) % len(m.images)
}

func (m *Modal) Previous() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return
	}
	m.index = (m.index - 1 + len(m.images)) % len(m.images)
}

// Close returns to Idle and clears everything the modal was showing.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	m.images = nil
	m.index = 0
	m.label = ""
	m.release()
}

// Unmount releases the scroll lock whatever state the modal is in.
func (m *Modal) Unmount() {
	m.Close()
}

func (m *Modal) HandleKey(k Key) {
	switch k {
	case KeyEscape:
		m.Close()
	case KeyArrowRight:
		m.Next()
	case KeyArrowLeft:
		m.Previous()
	}
}

func (m *Modal) release() {
	if m.locked {
		m.scroll.Unlock()
		m.locked = false
	}
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

func (m *Modal) Label() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.label
}

// Current returns the image on screen.
func (m *Modal) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return "", false
	}
	return m.images[m.index], true
}

// ShowControls reports whether previous/next and the position counter are
// shown.
func (m *Modal) ShowControls() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open && len(m.images) > 1
}
