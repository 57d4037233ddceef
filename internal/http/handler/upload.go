package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"logapi/internal/service"
	"logapi/internal/storage"
)

// UploadLogs accepts a multipart/form-data request and saves each part as
// one log file. Parts are handled strictly in the order they appear on the
// wire, so the raw body is iterated directly: Fiber's MultipartForm() is a
// map that loses part order, and the app must run with
// DisablePreParseMultipartForm or c.Body() returns a re-marshaled form in
// map order instead of the original bytes. The first failing part aborts
// the request, and parts saved before it stay on disk.
func UploadLogs(logSvc service.LogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mediaType, params, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
		if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
			return writeBadRequest(c, "Failed to read multipart field: request body is not multipart/form-data")
		}

		mr := multipart.NewReader(bytes.NewReader(c.Body()), params["boundary"])

		saved := 0
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return writeBadRequest(c, "Failed to read multipart field: "+err.Error())
			}

			if part.FormName() == "" {
				return writeBadRequest(c, "Field name is missing")
			}
			// Part.FileName applies filepath.Base to the client-sent name,
			// so a name like a/b.txt would arrive as b.txt. Take the raw
			// value from the header; separators are storage's concern.
			_, dparams, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
			fileName := dparams["filename"]
			if fileName == "" {
				return writeBadRequest(c, "File name is missing")
			}

			data, err := io.ReadAll(part)
			if err != nil {
				return writeBadRequest(c, "Failed to read file data: "+err.Error())
			}

			if _, err := logSvc.Store(c.UserContext(), fileName, data); err != nil {
				return writeStoreError(c, err)
			}
			saved++
		}

		if saved == 0 {
			return writeBadRequest(c, "No file was uploaded")
		}

		return c.JSON(statusPayload{
			Status:  "success",
			Message: "File uploaded successfully",
		})
	}
}

// writeStoreError maps service/storage failures during an upload onto the
// error categories: unsafe names are the client's doing, everything else
// is a local failure.
func writeStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsafeName), errors.Is(err, service.ErrNameRequired):
		return writeBadRequest(c, err.Error())
	default:
		return writeInternal(c, err.Error())
	}
}
