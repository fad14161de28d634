// Package dto defines data transfer objects for the posts feature's HTTP transport layer.
package dto

// CreatePostReq represents the request body for POST /posts.
type CreatePostReq struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// CreateCommentReq represents the request body for POST /posts/:id/comments.
type CreateCommentReq struct {
	Body string `json:"body" binding:"required"`
}
