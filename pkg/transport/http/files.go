package http

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/storage"
	"github.com/rolodex-dev/rolodex/pkg/transport"
)

// handleUploadFile handles POST /v1/files. The file arrives as the "file"
// part of a multipart form; contents go to the blob store, metadata to the
// database.
func (a *Adapter) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	part, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("file", "file too large"),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteAPIError(w, api.NewInvalidRequestError("file", "multipart field 'file' is required"))
		return
	}
	defer part.Close()

	if header.Filename == "" {
		transport.WriteAPIError(w, api.NewInvalidRequestError("file", "filename is required"))
		return
	}

	key, err := a.blobs.Save(part)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	f := &api.File{
		Filename: header.Filename,
		MimeType: mimeType,
		Path:     key,
	}
	if err := a.store.CreateFile(r.Context(), f); err != nil {
		a.blobs.Remove(key)
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, f)
}

// handleListFiles handles GET /v1/files.
func (a *Adapter) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := a.store.ListFiles(r.Context())
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, files)
}

// handleGetFile handles GET /v1/files/{id}.
func (a *Adapter) handleGetFile(w http.ResponseWriter, r *http.Request) {
	f, ok := a.findFile(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, f)
}

// handleUpdateFile handles PUT /v1/files/{id}. Only the filename changes.
func (a *Adapter) handleUpdateFile(w http.ResponseWriter, r *http.Request) {
	f, ok := a.findFile(w, r)
	if !ok {
		return
	}

	var req api.FileUpdateRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	f.Filename = req.Filename
	if err := a.store.UpdateFile(r.Context(), f); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, f)
}

// handleDeleteFile handles DELETE /v1/files/{id}. Metadata goes first so a
// half-failed delete never leaves a dangling database row.
func (a *Adapter) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	f, ok := a.findFile(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteFile(r.Context(), f.ID); err != nil {
		a.writeServerError(w, r, err)
		return
	}
	if err := a.blobs.Remove(f.Path); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

// handleDownloadFile handles GET /v1/files/{id}/download, streaming the
// stored contents with the original filename as an attachment.
func (a *Adapter) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	f, ok := a.findFile(w, r)
	if !ok {
		return
	}

	rc, err := a.blobs.Open(f.Path)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.MimeType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}))
	io.Copy(w, rc)
}

// findFile resolves the {id} path segment to file metadata, writing the
// error response itself on failure.
func (a *Adapter) findFile(w http.ResponseWriter, r *http.Request) (*api.File, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}

	f, err := a.store.FindFile(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("File not found"))
			return nil, false
		}
		a.writeServerError(w, r, err)
		return nil, false
	}
	return f, true
}
