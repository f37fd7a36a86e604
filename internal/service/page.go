package service

import "time"

// Page is a window of a sorted listing.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// clampPaging normalizes page/size and returns the LIMIT/OFFSET pair.
func clampPaging(page, size int) (limit, offset int, p, s int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, page * size, page, size
}

// timeLayout is the storage format for all timestamps. Values are
// naive local-free strings; rendering in a display timezone is left to
// clients.
const timeLayout = "2006-01-02 15:04:05"

func nowStamp() string {
	return time.Now().UTC().Format(timeLayout)
}

// ValidStamp reports whether s parses in the storage timestamp format.
func ValidStamp(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}
