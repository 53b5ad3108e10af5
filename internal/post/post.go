// Package post manages image posts and their persistence.
package post

import (
	"errors"
	"time"
)

// Post is a titled, tagged image stored in the blob store.
type Post struct {
	ID        int64     `json:"id"       example:"42"`
	Title     string    `json:"title"    example:"Sunset"`
	Desc      string    `json:"desc"     example:"Taken from the pier"`
	Tag       string    `json:"tag"      example:"travel"`
	ImageURL  string    `json:"imageUrl" example:"https://posts.s3.us-east-1.amazonaws.com/1718000000000-3f2b8c1e-6a0d-4e4b-9a51-0b8f7c2d9c1d.jpg"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost holds the fields required to create a Post.
type NewPost struct {
	Title    string
	Desc     string
	Tag      string
	ImageURL string
}

// Page is one slice of a filtered listing plus the total number of matches.
type Page struct {
	Count int64  `json:"count" example:"15"`
	Rows  []Post `json:"rows"`
}

// ErrMissingField is returned when a required post field is empty.
var ErrMissingField = errors.New("missing required field")

// ErrInvalidSort is returned for an unknown sort field or direction.
var ErrInvalidSort = errors.New("invalid sort")

// ErrInvalidPagination is returned for a malformed page or limit.
var ErrInvalidPagination = errors.New("invalid pagination")
