package http_handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/anthanhphan/go-file-uploader/internal/config"
	"github.com/anthanhphan/go-file-uploader/internal/domain"
	"github.com/anthanhphan/go-file-uploader/internal/errdefs"
	"github.com/anthanhphan/go-file-uploader/internal/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// maxFieldValueSize bounds non-file form fields like "user".
const maxFieldValueSize = 4 * 1024

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.FileService
}

func NewServer(cfg *config.Config, service port.FileService) *Server {
	app := fiber.New(fiber.Config{
		// Twice the configured bound: the validator owns size rejection and
		// its message, the transport cap only stops runaway bodies.
		BodyLimit:         2 * int(cfg.Upload.MaxRequestSize),
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/file", s.handleUpload)
	s.app.Post("/multi-file", s.handleMultiUpload)
	s.app.Get("/file/:user/:filename", s.handleDownload)
	s.app.Get("/files/:user", s.handleList)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

// App exposes the fiber app for request tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// sendServiceError renders a service failure: client-correctable kinds keep
// their message, server faults get a generic one.
func (s *Server) sendServiceError(c *fiber.Ctx, err error) error {
	if errdefs.IsClientError(err) {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}
	sdklogger.Errorw("Request failed", "path", c.Path(), "error", err.Error())
	return s.sendJSONError(c, fiber.StatusInternalServerError, "Something went wrong")
}

// multipartReader opens a streaming reader over the raw request body, the
// same way the upload endpoints of our storage gateway do.
func (s *Server) multipartReader(c *fiber.Ctx) (*multipart.Reader, error) {
	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return nil, fmt.Errorf("Content-Type must be multipart/form-data")
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("Invalid Content-Type")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return nil, fmt.Errorf("Missing boundary in Content-Type")
	}

	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	return multipart.NewReader(bodyStream, boundary), nil
}

// scanUserField reads parts until it finds the "user" form field. Streaming
// parsing cannot look ahead, so the field must precede the file parts; a
// file part seen first is handed back as pending with an empty user.
func scanUserField(mr *multipart.Reader) (string, *multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil, nil
		}
		if err != nil {
			return "", nil, err
		}

		if part.FileName() != "" {
			return "", part, nil
		}
		if part.FormName() == "user" {
			value, err := io.ReadAll(io.LimitReader(part, maxFieldValueSize))
			_ = part.Close()
			if err != nil {
				return "", nil, err
			}
			return string(value), nil, nil
		}
		_ = part.Close()
	}
}

// multipartSource adapts a multipart reader to the service's file sequence.
// Next yields file parts in arrival order and io.EOF at the end.
type multipartSource struct {
	reader  *multipart.Reader
	pending *multipart.Part
}

func (m *multipartSource) Next() (*domain.FileUpload, error) {
	if m.pending != nil {
		part := m.pending
		m.pending = nil
		return &domain.FileUpload{Name: part.FileName(), Content: part}, nil
	}
	for {
		part, err := m.reader.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FileName() != "" {
			return &domain.FileUpload{Name: part.FileName(), Content: part}, nil
		}
		_ = part.Close()
	}
}

func (s *Server) declaredSize(c *fiber.Ctx) int64 {
	return int64(c.Request().Header.ContentLength())
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	mr, err := s.multipartReader(c)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	user, pending, err := scanUserField(mr)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
	}

	src := &multipartSource{reader: mr, pending: pending}
	file, err := src.Next()
	if err == io.EOF {
		// No file part at all; the validator produces the canonical error.
		file = &domain.FileUpload{}
	} else if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
	}

	path, err := s.service.UploadFile(c.Context(), user, *file, s.declaredSize(c))
	if err != nil {
		return s.sendServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"path": path,
	})
}

func (s *Server) handleMultiUpload(c *fiber.Ctx) error {
	mr, err := s.multipartReader(c)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	user, pending, err := scanUserField(mr)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
	}

	src := &multipartSource{reader: mr, pending: pending}
	paths := make([]string, 0)
	for res := range s.service.UploadFiles(c.Context(), user, src, s.declaredSize(c)) {
		if res.Err != nil {
			return s.sendServiceError(c, res.Err)
		}
		paths = append(paths, res.Path)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"paths": paths,
	})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	user := c.Params("user")
	fileName := c.Params("filename")

	res, err := s.service.GetFile(c.Context(), user, fileName)
	if err != nil {
		return s.sendServiceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Name))
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.SendStream(res.Content, int(res.Size))
}

func (s *Server) handleList(c *fiber.Ctx) error {
	user := c.Params("user")

	names, err := s.service.ListFiles(c.Context(), user)
	if err != nil {
		return s.sendServiceError(c, err)
	}

	return c.JSON(names)
}
