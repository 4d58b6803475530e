package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"storecounter/internal/config"
	"storecounter/internal/dto"
	"storecounter/internal/logger"
	"storecounter/internal/media"
	"storecounter/internal/model"
	"storecounter/internal/service/storage"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// Processor runs the counting pipeline on a saved upload.
type Processor interface {
	Process(ctx context.Context, assetPath, declaredFilename string) (*model.HistoryRecord, error)
}

// Uploads stores incoming files.
type Uploads interface {
	SaveUpload(originalName string, r io.Reader) (string, string, error)
}

// Publisher receives every newly stored record.
type Publisher interface {
	Publish(rec model.HistoryRecord)
}

// ProcessHandler accepts a multipart "file" upload, counts visitors in it and
// answers with the count and the URL of the annotated image.
func ProcessHandler(cfg *config.Config, uploads Uploads, processor Processor, publisher Publisher, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize<<20)

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warning("Upload rejected, body exceeds %d MB", cfg.MaxUploadSize)
				writeJSON(w, logger, http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "File too large"})
				return
			}
			writeBadRequest(w, logger, "No file part")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			// a part named "file" without a filename arrives as a plain value
			if _, ok := r.MultipartForm.Value["file"]; ok {
				writeBadRequest(w, logger, "No selected file")
				return
			}
			writeBadRequest(w, logger, "No file part")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeBadRequest(w, logger, "No selected file")
			return
		}

		if _, err := media.Classify(header.Filename); err != nil {
			logger.Warning("Upload %q rejected: %v", header.Filename, err)
			writeError(w, logger, err)
			return
		}

		uploadPath, storedName, err := uploads.SaveUpload(header.Filename, file)
		if err != nil {
			logger.Error("Error saving upload %q: %v", header.Filename, err)
			writeError(w, logger, err)
			return
		}

		rec, err := processor.Process(r.Context(), uploadPath, storedName)
		if err != nil {
			os.Remove(uploadPath)
			writeError(w, logger, err)
			return
		}

		if publisher != nil {
			publisher.Publish(*rec)
		}

		writeJSON(w, logger, http.StatusOK, dto.ProcessResponse{
			Count:     rec.Count,
			ResultURL: storage.ResultURL(rec.AnnotatedImagePath),
			Filename:  rec.SourceFilename,
		})
	}
}
