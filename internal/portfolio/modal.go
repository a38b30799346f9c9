package portfolio

import (
	"fmt"
	"net/url"
	"sync"

	"portfolio-backend/internal/content"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpening
	ModalReady
)

func (s ModalState) String() string {
	switch s {
	case ModalOpening:
		return "opening"
	case ModalReady:
		return "ready"
	default:
		return "closed"
	}
}

const (
	ItemVideo       = "video"
	ItemCertificate = "certificate"
)

// Item is what the playback modal shows: a video embed or a certificate image.
type Item struct {
	Kind     string
	ID       string
	Title    string
	EmbedURL string
	ImageURL string
}

func VideoItem(v content.Video) Item {
	return Item{
		Kind:     ItemVideo,
		ID:       v.ID,
		Title:    v.Title,
		EmbedURL: fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&rel=0", url.PathEscape(v.YouTubeID)),
	}
}

func CertificateItem(c content.Certificate) Item {
	return Item{
		Kind:     ItemCertificate,
		ID:       c.ID,
		Title:    c.Title,
		ImageURL: c.ImageURL,
	}
}

// Ticket identifies one opening of the modal.
type Ticket uint64

type ModalSnapshot struct {
	State   ModalState
	Item    Item
	Loading bool
}

// Modal is the playback modal state machine. Opening a new item while another
// is shown is a close followed by a reopen.
type Modal struct {
	mu     sync.Mutex
	state  ModalState
	item   Item
	ticket Ticket
}

func (m *Modal) Open(item Item) Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticket++
	m.item = item
	m.state = ModalOpening
	return m.ticket
}

// Ready records the player's load signal. Signals for a superseded or closed
// opening are ignored.
func (m *Modal) Ready(t Ticket) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalOpening || t != m.ticket {
		return false
	}
	m.state = ModalReady
	return true
}

func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticket++
	m.item = Item{}
	m.state = ModalClosed
}

// Loading reports whether the loading overlay is visible.
func (m *Modal) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == ModalOpening
}

func (m *Modal) Snapshot() ModalSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ModalSnapshot{State: m.state, Item: m.item, Loading: m.state == ModalOpening}
}
