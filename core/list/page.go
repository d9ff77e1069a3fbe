// Package list holds the generic paginated-list and search-by-id state
// machines shared by every entity.
package list

type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Page is the pagination envelope returned by the API's list endpoints.
type Page[T any] struct {
	Content       []T      `json:"content"`
	Pageable      Pageable `json:"pageable"`
	TotalElements int      `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	First         bool     `json:"first"`
	Last          bool     `json:"last"`
	Empty         bool     `json:"empty"`
}
