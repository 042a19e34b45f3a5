package domain

// ResourceType classifies a catalog entry.
type ResourceType string

const (
	ResourceBook    ResourceType = "BOOK"
	ResourceArticle ResourceType = "ARTICLE"
	ResourceJournal ResourceType = "JOURNAL"
	ResourceMap     ResourceType = "MAP"
)

// ResourceTypes lists every concrete resource type.
var ResourceTypes = []ResourceType{ResourceBook, ResourceArticle, ResourceJournal, ResourceMap}

func (t ResourceType) Valid() bool {
	for _, rt := range ResourceTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Book is a catalog entry identified by ISBN. AvailableCopies never exceeds
// TotalCopies; the schema enforces this as well.
type Book struct {
	ISBN            string       `json:"isbn"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	SubjectArea     string       `json:"subjectArea"`
	Description     string       `json:"description,omitempty"`
	ResourceType    ResourceType `json:"resourceType"`
	IsLoanable      bool         `json:"isLoanable"`
	TotalCopies     int          `json:"totalCopies"`
	AvailableCopies int          `json:"availableCopies"`
	Deleted         bool         `json:"-"`
}

// State maps the soft-delete flag onto the shared record state machine.
func (b Book) State() RecordState {
	return StateFromDeleted(b.Deleted)
}
