package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"recondash/internal/table"
	"recondash/internal/view"
)

// pageInfo describes the window returned when page or page_size is given.
type pageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
}

func pageOf[T any](p *table.Page[T]) *pageInfo {
	if p == nil {
		return nil
	}
	return &pageInfo{Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages, TotalRows: p.TotalRows}
}

func tableParams(c *fiber.Ctx) (view.Params, error) {
	return view.ParseParams(func(key string) string { return c.Query(key) })
}

func badParams(c *fiber.Ctx, err error) error {
	if errors.Is(err, view.ErrInvalidParam) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	}
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
}

// sendCSV answers with rows as a CSV attachment named filename.
func sendCSV[T any](c *fiber.Ctx, filename string, rows []T, cols []table.Column[T]) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, rows, cols); err != nil {
		return err
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
