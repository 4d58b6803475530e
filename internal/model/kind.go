package model

// Kind is the ingestion strategy chosen for an uploaded file.
type Kind int

const (
	KindImage Kind = iota + 1
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}
