package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"logapi/internal/service"
	"logapi/internal/storage"
)

// DownloadArchive returns every stored log packed into a single zip. The
// archive is fully built in memory by the service before the first byte is
// sent, so the response is never a truncated zip.
func DownloadArchive(logSvc service.LogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		archive, err := logSvc.Archive(c.UserContext())
		if err != nil {
			if errors.Is(err, storage.ErrRootNotFound) {
				return writeNotFound(c)
			}
			return writeInternal(c, err.Error())
		}

		c.Set(fiber.HeaderContentType, "application/zip")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+archiveFileName(time.Now())+`"`)
		return c.Send(archive)
	}
}

// archiveFileName names the download after the moment it was produced,
// e.g. logs_20250825_143005.zip.
func archiveFileName(t time.Time) string {
	return "logs_" + t.Format("20060102_150405") + ".zip"
}
