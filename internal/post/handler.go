package post

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snapboard/posts/internal/middleware"
	"github.com/snapboard/posts/internal/response"
	"github.com/snapboard/posts/internal/storage"
)

// cleanupTimeout bounds the blob delete issued after a failed create.
const cleanupTimeout = 10 * time.Second

// Handler holds HTTP handlers for post endpoints.
type Handler struct {
	svc              *Service
	blobs            storage.Storage
	cleanupOnFailure bool
}

// NewHandler creates a new post Handler. With cleanupOnFailure set, an image
// already uploaded for a create that then fails is deleted from blobs;
// otherwise it stays in the bucket.
func NewHandler(svc *Service, blobs storage.Storage, cleanupOnFailure bool) *Handler {
	return &Handler{svc: svc, blobs: blobs, cleanupOnFailure: cleanupOnFailure}
}

// Routes returns the /posts router. upload runs before Create only.
func (h *Handler) Routes(upload func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.With(upload).Post("/", h.Create)
	return r
}

// List godoc
//
//	@Summary		List posts
//	@Description	Returns a page of posts filtered by keyword (title or desc, case-insensitive) and exact tag, with the total match count.
//	@Tags			posts
//	@Produce		json
//	@Param			page	query		int		false	"1-based page"			default(1)
//	@Param			limit	query		int		false	"page size"				default(10)
//	@Param			sort	query		string	false	"field[,ASC|DESC]"		example(title,ASC)
//	@Param			keyword	query		string	false	"substring of title or desc"
//	@Param			tag		query		string	false	"exact tag"
//	@Success		200		{object}	Page
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidSort) {
			response.BadRequest(w, err.Error())
			return
		}
		log.Printf("error fetching posts: %v", err)
		response.InternalError(w)
		return
	}

	response.OK(w, page)
}

// Create godoc
//
//	@Summary		Create post
//	@Description	Uploads the image to the blob store, then stores the post referencing its public URL.
//	@Tags			posts
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"image file"
//	@Param			title	formData	string	true	"title"
//	@Param			desc	formData	string	true	"description"
//	@Param			tag		formData	string	true	"tag"
//	@Success		200		{object}	Post
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	file, uploaded := middleware.UploadedFileFrom(r.Context())

	p, err := h.svc.Create(r.Context(), NewPost{
		Title:    r.PostFormValue("title"),
		Desc:     r.PostFormValue("desc"),
		Tag:      r.PostFormValue("tag"),
		ImageURL: file.URL,
	})
	if err != nil {
		log.Printf("error creating post: %v", err)
		if uploaded {
			h.cleanup(r.Context(), file)
		}
		response.InternalError(w)
		return
	}

	response.OK(w, p)
}

func (h *Handler) cleanup(ctx context.Context, file middleware.UploadedFile) {
	if !h.cleanupOnFailure {
		log.Printf("orphaned blob %q left in storage", file.Key)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := h.blobs.Delete(ctx, file.Key); err != nil {
		log.Printf("delete orphaned blob %q: %v", file.Key, err)
	}
}
