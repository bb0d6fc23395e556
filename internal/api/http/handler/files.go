package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/service"
)

const (
	fieldAvatar   = "avatar"
	fieldDocument = "document"
	fieldUID      = "uid"

	maxFormValue      = 256
	multipartOverhead = 1 << 20
)

// Files serves avatar and document uploads.
type Files struct {
	base
	service        FilesService
	contextManager model.ContextManager
	maxUpload      int64
}

// NewFiles creates a Files handler. Uploaded files are buffered in memory
// up to maxUpload bytes.
func NewFiles(service FilesService, contextManager model.ContextManager, logger *logger.Logger, maxUpload int64, details bool) *Files {
	return &Files{
		base:           base{logger: logger, details: details},
		service:        service,
		contextManager: contextManager,
		maxUpload:      maxUpload,
	}
}

func (h *Files) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(h.contextManager, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	file, uid, err := h.readUpload(w, r, fieldAvatar)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	url, err := h.service.UploadAvatar(r.Context(), caller, uid, file)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Files) UploadDocument(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(h.contextManager, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	file, uid, err := h.readUpload(w, r, fieldDocument)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	doc, err := h.service.UploadDocument(r.Context(), caller, uid, file)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]documentResponse{"document": newDocumentResponse(doc)})
}

type deleteDocumentRequest struct {
	DocID string `json:"docId"`
	UID   string `json:"uid"`
}

func (h *Files) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(h.contextManager, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req deleteDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.service.DeleteDocument(r.Context(), caller, req.UID, req.DocID); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// readUpload buffers the file in field and the optional uid form value.
// A request that is not multipart, or has no such file, yields a nil file.
func (h *Files) readUpload(w http.ResponseWriter, r *http.Request, field string) (*service.Upload, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", nil
	}

	var (
		file *service.Upload
		uid  string
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", h.uploadError(err)
		}

		switch {
		case part.FormName() == field && part.FileName() != "" && file == nil:
			file, err = h.readFile(part)
		case part.FormName() == fieldUID:
			uid, err = readValue(part)
		}
		_ = part.Close()
		if err != nil {
			return nil, "", h.uploadError(err)
		}
	}

	return file, uid, nil
}

func (h *Files) readFile(part *multipart.Part) (*service.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(part, h.maxUpload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxUpload {
		return nil, errFileTooLarge
	}

	return &service.Upload{
		Name:        part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readValue(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFormValue))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var errFileTooLarge = errors.New("file exceeds upload limit")

func (h *Files) uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.Is(err, errFileTooLarge) || errors.As(err, &maxErr) {
		return apiErrors.NewErrValidation(fmt.Sprintf("File too large. Maximum size is %d MB", (h.maxUpload+1<<20-1)>>20))
	}
	return apiErrors.NewErrValidation("Malformed multipart body")
}
