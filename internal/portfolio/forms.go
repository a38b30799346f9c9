package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"portfolio-backend/internal/content"
)

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func emptyVideoInput() content.VideoInput {
	return content.VideoInput{Category: content.CategoryLong}
}

// VideoCreateForm adds a video and refreshes the page's video list.
type VideoCreateForm struct {
	writer VideoWriter
	page   *Page
	status *StatusTracker

	mu     sync.Mutex
	fields content.VideoInput
}

func NewVideoCreateForm(writer VideoWriter, page *Page, after AfterFunc) *VideoCreateForm {
	return &VideoCreateForm{
		writer: writer,
		page:   page,
		status: NewStatusTracker(MutationResetDelay, after),
		fields: emptyVideoInput(),
	}
}

func (f *VideoCreateForm) Set(in content.VideoInput) {
	f.mu.Lock()
	f.fields = in
	f.mu.Unlock()
}

func (f *VideoCreateForm) Values() content.VideoInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *VideoCreateForm) Status() *StatusTracker { return f.status }

func (f *VideoCreateForm) Submit(ctx context.Context) (content.Video, error) {
	in := f.Values()
	if blank(in.Title, in.YouTubeID, in.Category) {
		return content.Video{}, ErrMissingFields
	}

	f.status.Begin()
	created, err := f.writer.CreateVideo(ctx, in)
	if err != nil {
		f.status.Fail()
		return content.Video{}, err
	}
	f.Set(emptyVideoInput())
	_ = f.page.RefreshVideos(ctx)
	f.status.Succeed()
	return created, nil
}

// VideoEditForm updates an existing video. Fields are kept on failure.
type VideoEditForm struct {
	writer VideoWriter
	page   *Page
	status *StatusTracker

	mu     sync.Mutex
	fields content.VideoUpdate
}

func NewVideoEditForm(writer VideoWriter, page *Page, after AfterFunc) *VideoEditForm {
	return &VideoEditForm{
		writer: writer,
		page:   page,
		status: NewStatusTracker(MutationResetDelay, after),
		fields: content.VideoUpdate{VideoInput: emptyVideoInput()},
	}
}

// Edit fills the form from an existing record.
func (f *VideoEditForm) Edit(v content.Video) {
	f.Set(content.VideoUpdate{
		ID: v.ID,
		VideoInput: content.VideoInput{
			Title:       v.Title,
			Description: v.Description,
			YouTubeID:   v.YouTubeID,
			Category:    v.Category,
			Thumbnail:   v.Thumbnail,
		},
	})
}

func (f *VideoEditForm) Set(in content.VideoUpdate) {
	f.mu.Lock()
	f.fields = in
	f.mu.Unlock()
}

func (f *VideoEditForm) Values() content.VideoUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *VideoEditForm) Status() *StatusTracker { return f.status }

func (f *VideoEditForm) Submit(ctx context.Context) (content.Video, error) {
	in := f.Values()
	if blank(in.ID, in.Title, in.YouTubeID, in.Category) {
		return content.Video{}, ErrMissingFields
	}

	f.status.Begin()
	updated, err := f.writer.UpdateVideo(ctx, in)
	if err != nil {
		f.status.Fail()
		return content.Video{}, err
	}
	f.Set(content.VideoUpdate{VideoInput: emptyVideoInput()})
	_ = f.page.RefreshVideos(ctx)
	f.status.Succeed()
	return updated, nil
}

// ClientCreateForm adds a client and refreshes the page's client list.
type ClientCreateForm struct {
	writer ClientWriter
	page   *Page
	status *StatusTracker

	mu     sync.Mutex
	fields content.ClientInput
}

func NewClientCreateForm(writer ClientWriter, page *Page, after AfterFunc) *ClientCreateForm {
	return &ClientCreateForm{
		writer: writer,
		page:   page,
		status: NewStatusTracker(MutationResetDelay, after),
	}
}

func (f *ClientCreateForm) Set(in content.ClientInput) {
	f.mu.Lock()
	f.fields = in
	f.mu.Unlock()
}

func (f *ClientCreateForm) Values() content.ClientInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *ClientCreateForm) Status() *StatusTracker { return f.status }

func (f *ClientCreateForm) Submit(ctx context.Context) (content.Client, error) {
	in := f.Values()
	if blank(in.Name) {
		return content.Client{}, ErrMissingFields
	}

	f.status.Begin()
	created, err := f.writer.CreateClient(ctx, in)
	if err != nil {
		f.status.Fail()
		return content.Client{}, err
	}
	f.Set(content.ClientInput{})
	_ = f.page.RefreshClients(ctx)
	f.status.Succeed()
	return created, nil
}

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (fn ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return fn(ctx, prompt) }

// Deleter removes one record after confirmation. The list is refreshed from
// the backend once the delete succeeds; nothing is removed locally.
type Deleter struct {
	kind    string
	remove  func(ctx context.Context, id string) error
	refresh func(ctx context.Context) error
	confirm Confirmer
	status  *StatusTracker
}

func NewVideoDeleter(writer VideoWriter, page *Page, confirm Confirmer, after AfterFunc) *Deleter {
	return &Deleter{
		kind:    "video",
		remove:  writer.DeleteVideo,
		refresh: page.RefreshVideos,
		confirm: confirm,
		status:  NewStatusTracker(MutationResetDelay, after),
	}
}

func NewClientDeleter(writer ClientWriter, page *Page, confirm Confirmer, after AfterFunc) *Deleter {
	return &Deleter{
		kind:    "client",
		remove:  writer.DeleteClient,
		refresh: page.RefreshClients,
		confirm: confirm,
		status:  NewStatusTracker(MutationResetDelay, after),
	}
}

func (d *Deleter) Status() *StatusTracker { return d.status }

func (d *Deleter) Delete(ctx context.Context, id string) error {
	if blank(id) {
		return ErrMissingFields
	}
	if d.confirm == nil || !d.confirm.Confirm(ctx, fmt.Sprintf("Delete %s %s?", d.kind, id)) {
		return ErrNotConfirmed
	}

	d.status.Begin()
	if err := d.remove(ctx, id); err != nil {
		d.status.Fail()
		return err
	}
	_ = d.refresh(ctx)
	d.status.Succeed()
	return nil
}

// ContactForm sends a contact message. It has no list to refresh.
type ContactForm struct {
	sender ContactSender
	status *StatusTracker

	mu     sync.Mutex
	fields content.ContactMessage
}

func NewContactForm(sender ContactSender, after AfterFunc) *ContactForm {
	return &ContactForm{
		sender: sender,
		status: NewStatusTracker(ContactResetDelay, after),
	}
}

func (f *ContactForm) Set(msg content.ContactMessage) {
	f.mu.Lock()
	f.fields = msg
	f.mu.Unlock()
}

func (f *ContactForm) Values() content.ContactMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *ContactForm) Status() *StatusTracker { return f.status }

func (f *ContactForm) Submit(ctx context.Context) error {
	msg := f.Values()
	if blank(msg.Name, msg.Email, msg.Message) {
		return ErrMissingFields
	}

	f.status.Begin()
	if err := f.sender.SendContact(ctx, msg); err != nil {
		f.status.Fail()
		return err
	}
	f.Set(content.ContactMessage{})
	f.status.Succeed()
	return nil
}
