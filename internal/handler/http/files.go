package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// multipartMemory is the part of a multipart form kept in memory; the rest
// spills to temporary files.
const multipartMemory = 32 << 20

const fileFormField = "file"

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.Info().Int64("limit", maxBytesErr.Limit).Msg("upload rejected: body too large")
			utils.WriteError(w, app.MsgFileTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		log.Info().Err(err).Msg("invalid multipart form")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile(fileFormField)
	if err != nil {
		log.Info().Err(err).Msg("no file in multipart form")
		utils.WriteError(w, app.MsgFileIsMissing, http.StatusBadRequest)
		return
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		log.Err(err).Msg("error reading uploaded file")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	file, err := h.services.FileService.Upload(r.Context(), *claims, header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		writeServiceError(w, r, err, "upload failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusCreated)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	files, err := h.services.FileService.List(r.Context(), *claims)
	if err != nil {
		writeServiceError(w, r, err, "error listing files")
		return
	}

	utils.WriteJSON(w, files, http.StatusOK)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	file, err := h.services.FileService.Get(r.Context(), *claims, chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(w, r, err, "error getting file")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	decrypted, err := h.services.FileService.Download(r.Context(), *claims, chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(w, r, err, "error downloading file")
		return
	}

	utils.WriteJSON(w, decrypted, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	if err := h.services.FileService.Delete(r.Context(), *claims, chi.URLParam(r, "fileID")); err != nil {
		writeServiceError(w, r, err, "error deleting file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
