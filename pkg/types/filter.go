package types

// Filter: параметры списка из query-строки (поиск, сортировка, фильтры, пагинация).
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Set добавляет точный фильтр, если значение непустое.
func (f *Filter) Set(field string, value string) {
	if value == "" {
		return
	}
	if f.Filter == nil {
		f.Filter = make(map[string]interface{})
	}
	f.Filter[field] = value
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/requests?stage=New&sort[scheduledDate]=asc&filter[team]=1,2&limit=20&page=2&withPagination=true
