package content

const (
	TypeVideo       = "video"
	TypeClient      = "client"
	TypeCertificate = "certificate"

	CategoryLong  = "long"
	CategoryShort = "short"
)

type Video struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
	YouTubeID   string `json:"youtubeId" validate:"required,notblank"`
	Category    string `json:"category" validate:"required,oneof=long short"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type Client struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

type Certificate struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	IssuedAt    string `json:"issuedAt,omitempty" validate:"omitempty,date"`
}

// VideoInput is the body of POST /api/videos.
type VideoInput struct {
	Title       string `json:"title" validate:"required,notblank" jsonschema:"minLength=1"`
	Description string `json:"description,omitempty"`
	YouTubeID   string `json:"youtubeId" validate:"required,notblank" jsonschema:"minLength=1,description=Only the ID and not the full URL"`
	Category    string `json:"category" validate:"required,oneof=long short" jsonschema:"enum=long,enum=short"`
	Thumbnail   string `json:"thumbnail,omitempty" validate:"omitempty,url" jsonschema:"format=uri"`
}

// VideoUpdate is the body of PUT /api/videos.
type VideoUpdate struct {
	ID string `json:"id" validate:"required,notblank" jsonschema:"minLength=1"`
	VideoInput
}

// ClientInput is the body of POST /api/clients.
type ClientInput struct {
	Name        string `json:"name" validate:"required,notblank" jsonschema:"minLength=1"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty" validate:"omitempty,url" jsonschema:"format=uri"`
}

// ContactMessage is the body of POST /api/contact. It is delivered, never stored.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,notblank" jsonschema:"minLength=1"`
	Email   string `json:"email" validate:"required,email" jsonschema:"format=email"`
	Message string `json:"message" validate:"required,notblank" jsonschema:"minLength=1"`
}

func (in VideoInput) Document() Document {
	return Document{
		"title":        in.Title,
		"description":  in.Description,
		"youtubeId":    in.YouTubeID,
		"category":     in.Category,
		"thumbnailUrl": in.Thumbnail,
	}
}

func (in VideoInput) Video(id string) Video {
	return Video{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		YouTubeID:   in.YouTubeID,
		Category:    in.Category,
		Thumbnail:   in.Thumbnail,
	}
}

func (in ClientInput) Document() Document {
	return Document{
		"name":        in.Name,
		"description": in.Description,
		"logoUrl":     in.Logo,
	}
}

func (in ClientInput) Client(id string) Client {
	return Client{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Logo:        in.Logo,
	}
}
