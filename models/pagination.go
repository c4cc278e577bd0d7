// SPDX-License-Identifier: GPL-3.0-only

package models

import "math"

// DefaultPageSize is how many posts a listing page shows.
const DefaultPageSize = 5

type Page struct {
	Posts      []Post
	Number     int
	Size       int
	Total      int64
	TotalPages int
}

func NewPage(posts []Post, number, size int, total int64) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return Page{
		Posts:      posts,
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) PrevNumber() int {
	return p.Number - 1
}
