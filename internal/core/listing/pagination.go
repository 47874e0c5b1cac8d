package listing

// PageRef points at an adjacent page with the limit that produced it.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageMeta is the pagination envelope attached to list responses. Next and
// Prev are derived from the total count at query time, not from the size of
// the returned page, so they stay correct under concurrent inserts/deletes.
type PageMeta struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Window is the skip/take pair applied to the repository query.
type Window struct {
	Skip  int64
	Limit int64
}

// Window computes the page window for these params.
func (p Params) Window() Window {
	return Window{
		Skip:  int64(p.Page-1) * int64(p.Limit),
		Limit: int64(p.Limit),
	}
}

// Paginate computes next/prev descriptors for a page of size limit over a
// collection of total documents. Pages beyond the data simply yield no Next;
// there is no upper bound on page.
func Paginate(page, limit int, total int64) PageMeta {
	var meta PageMeta
	start := int64(page-1) * int64(limit)
	end := int64(page) * int64(limit)
	if end < total {
		meta.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if start > 0 {
		meta.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return meta
}

// Populate describes an eager reference resolution applied to a page of
// results: join documents From the foreign collection where ForeignField
// equals the page document's LocalField, projected down to Project, stored
// under As. Single unwraps the joined array to one embedded document.
type Populate struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	Project      []string
	Single       bool
}
