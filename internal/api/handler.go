package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path"

	"github.com/seva/shipper/server/internal/config"
	"github.com/seva/shipper/server/internal/deploy"
	"github.com/seva/shipper/server/internal/github"
)

// ContentStore reads and writes files in the versioned store. Implemented
// by *github.Client; inject a fake in tests.
type ContentStore interface {
	ReadFile(ctx context.Context, loc github.FileLocator) ([]byte, error)
	WriteFile(ctx context.Context, req github.WriteRequest) (github.WriteResult, error)
}

// Deployer materializes payloads on the transfer server. Implemented by
// *deploy.Uploader.
type Deployer interface {
	UploadFile(t deploy.Target, remotePath string, data []byte) error
	UploadArchive(t deploy.Target, basePath string, archive []byte) (int, error)
}

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to disk.
const maxUploadMemory = 32 << 20

type Handler struct {
	cfg      *config.Config
	store    ContentStore
	deployer Deployer
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg, store: github.NewClient(cfg.GitHubToken), deployer: deploy.NewUploader()}
}

// NewHandlerWith builds a handler with custom collaborators (e.g. for tests).
func NewHandlerWith(cfg *config.Config, store ContentStore, deployer Deployer) *Handler {
	return &Handler{cfg: cfg, store: store, deployer: deployer}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// errStatus maps the error taxonomy onto HTTP statuses. Anything not
// recognized is an upstream failure.
func errStatus(err error) int {
	switch {
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, github.ErrNotAFile):
		return http.StatusBadRequest
	case errors.Is(err, deploy.ErrInvalidArchive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) ReadFile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := github.FileLocator{
		Owner: q.Get("owner"),
		Repo:  q.Get("repo"),
		Path:  q.Get("path"),
		Ref:   q.Get("ref"),
	}
	if loc.Owner == "" || loc.Repo == "" || loc.Path == "" {
		respondError(w, http.StatusBadRequest, errors.New("owner, repo, path required"))
		return
	}
	content, err := h.store.ReadFile(r.Context(), loc)
	if err != nil {
		log.Printf("[Shipper] read %s/%s/%s failed: %v", loc.Owner, loc.Repo, loc.Path, err)
		respondError(w, errStatus(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

func (h *Handler) WriteFile(w http.ResponseWriter, r *http.Request) {
	var req WriteFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}
	if req.Owner == "" || req.Repo == "" || req.Path == "" || req.Content == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, errors.New("owner, repo, path, content, message required"))
		return
	}
	res, err := h.store.WriteFile(r.Context(), github.WriteRequest{
		FileLocator: github.FileLocator{Owner: req.Owner, Repo: req.Repo, Path: req.Path},
		Content:     []byte(req.Content),
		Message:     req.Message,
		Branch:      req.Branch,
	})
	if err != nil {
		log.Printf("[Shipper] write %s/%s/%s failed: %v", req.Owner, req.Repo, req.Path, err)
		respondError(w, errStatus(err), err)
		return
	}
	log.Printf("[Shipper] committed %s to %s/%s@%s", res.Path, req.Owner, req.Repo, res.Branch)
	respondJSON(w, http.StatusOK, WriteFileResponse{OK: true, Path: res.Path, Branch: res.Branch, Committed: true})
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("file part required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("empty payload"))
		return
	}
	remotePath := r.FormValue("remotePath")
	if remotePath == "" {
		remotePath = h.cfg.UploadRoot + "/" + path.Base(header.Filename)
	}
	if err := h.deployer.UploadFile(h.cfg.FTP, remotePath, data); err != nil {
		log.Printf("[Shipper] upload %s failed: %v", remotePath, err)
		respondError(w, errStatus(err), err)
		return
	}
	log.Printf("[Shipper] uploaded %s (%d bytes)", remotePath, len(data))
	respondJSON(w, http.StatusOK, UploadFileResponse{OK: true, Uploaded: remotePath})
}

func (h *Handler) UploadArchive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}
	file, _, err := r.FormFile("archive")
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("archive part required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	basePath := r.FormValue("basePath")
	if basePath == "" {
		basePath = h.cfg.UploadRoot
	}
	count, err := h.deployer.UploadArchive(h.cfg.FTP, basePath, data)
	if err != nil {
		log.Printf("[Shipper] deploy to %s failed after %d files: %v", basePath, count, err)
		respondError(w, errStatus(err), err)
		return
	}
	log.Printf("[Shipper] deployed %d files to %s", count, basePath)
	respondJSON(w, http.StatusOK, UploadArchiveResponse{OK: true, Uploaded: count})
}
