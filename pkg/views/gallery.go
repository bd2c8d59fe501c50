package views

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"tattoo-studio/pkg/models"
)

// Gallery query defaults.
const (
	TypeAll          = "All"
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortName         = "name"
	GalleryPageSize  = 10
	GalleryMaxLimit  = 200
	NoDesignsMessage = "No designs found. Try adjusting your filters."
)

// GalleryQuery is the gallery's filter, search, sort and show-more state.
type GalleryQuery struct {
	Type   string
	Search string
	Sort   string
	Limit  int
}

// ParseGalleryQuery reads the gallery state from query parameters, falling
// back to defaults for anything unknown.
func ParseGalleryQuery(v url.Values) GalleryQuery {
	q := GalleryQuery{
		Type:   TypeAll,
		Search: strings.TrimSpace(v.Get("q")),
		Sort:   SortNewest,
		Limit:  GalleryPageSize,
	}

	switch t := v.Get("type"); t {
	case models.TypeBlackWhite, models.TypeColor:
		q.Type = t
	}
	switch s := v.Get("sort"); s {
	case SortOldest, SortName:
		q.Sort = s
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n > 0 {
		q.Limit = min(n, GalleryMaxLimit)
	}
	return q
}

// Values encodes the query back into parameters, omitting defaults.
func (q GalleryQuery) Values() url.Values {
	v := url.Values{}
	if q.Type != "" && q.Type != TypeAll {
		v.Set("type", q.Type)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != "" && q.Sort != SortNewest {
		v.Set("sort", q.Sort)
	}
	if q.Limit != 0 && q.Limit != GalleryPageSize {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// TypeOption is one entry of the type filter.
type TypeOption struct {
	Value    string
	Label    string
	Selected bool
	Href     string
}

// SortOption is one entry of the sort select.
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// GalleryView is the derived gallery listing.
type GalleryView struct {
	Query     GalleryQuery
	Designs   []models.Design
	Total     int
	HasMore   bool
	MoreHref  string
	NoResults bool
	Message   string
	Types     []TypeOption
	Sorts     []SortOption
}

// BuildGallery filters, searches, sorts and truncates designs. It never
// modifies the input slice.
func BuildGallery(all []models.Design, q GalleryQuery) GalleryView {
	if q.Limit <= 0 {
		q.Limit = GalleryPageSize
	}

	matched := make([]models.Design, 0, len(all))
	for _, d := range all {
		if q.Type != "" && q.Type != TypeAll && d.Type != q.Type {
			continue
		}
		if !matchesSearch(d, q.Search) {
			continue
		}
		matched = append(matched, d)
	}
	sortDesigns(matched, q.Sort)

	view := GalleryView{
		Query:   q,
		Total:   len(matched),
		Designs: matched,
		Types:   typeOptions(q),
		Sorts:   sortOptions(q),
	}
	if len(matched) > q.Limit {
		view.Designs = matched[:q.Limit]
		view.HasMore = true
		next := q
		next.Limit = q.Limit + GalleryPageSize
		view.MoreHref = "/gallery?" + next.Values().Encode()
	}
	if len(matched) == 0 {
		view.NoResults = true
		view.Message = NoDesignsMessage
	}
	return view
}

func matchesSearch(d models.Design, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(d.Name), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle) {
		return true
	}
	for _, style := range d.Styles {
		if strings.Contains(strings.ToLower(style), needle) {
			return true
		}
	}
	return false
}

func sortDesigns(designs []models.Design, order string) {
	switch order {
	case SortOldest:
		sort.SliceStable(designs, func(i, j int) bool {
			return designs[i].CreatedAt.Before(designs[j].CreatedAt)
		})
	case SortName:
		sort.SliceStable(designs, func(i, j int) bool {
			return naturalLess(designs[i].Name, designs[j].Name)
		})
	default:
		sort.SliceStable(designs, func(i, j int) bool {
			return designs[i].CreatedAt.After(designs[j].CreatedAt)
		})
	}
}

func typeOptions(q GalleryQuery) []TypeOption {
	opts := []TypeOption{
		{Value: TypeAll, Label: "All"},
		{Value: models.TypeBlackWhite, Label: "Black & White"},
		{Value: models.TypeColor, Label: "Color"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == q.Type || (q.Type == "" && opts[i].Value == TypeAll)
		next := q
		next.Type = opts[i].Value
		next.Limit = GalleryPageSize
		href := "/gallery"
		if enc := next.Values().Encode(); enc != "" {
			href += "?" + enc
		}
		opts[i].Href = href
	}
	return opts
}

func sortOptions(q GalleryQuery) []SortOption {
	opts := []SortOption{
		{Value: SortNewest, Label: "Newest"},
		{Value: SortOldest, Label: "Oldest"},
		{Value: SortName, Label: "Name"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == q.Sort || (q.Sort == "" && opts[i].Value == SortNewest)
	}
	return opts
}
