// Package api serves the chunk operations over HTTP.
package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/internal/commands"
	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/version"
	"github.com/samcharles93/pngme/pkg/png"
)

// DefaultMaxUpload bounds the size of an uploaded image.
const DefaultMaxUpload = 32 << 20

type Config struct {
	Decode    png.DecodeOptions
	MaxUpload int64
	Logger    logger.Logger
}

type Server struct {
	store     *ImageStore
	decode    png.DecodeOptions
	maxUpload int64
	log       logger.Logger
	clock     func() time.Time
}

func NewServer(store *ImageStore, cfg Config) *Server {
	if store == nil {
		store = NewImageStore()
	}
	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = DefaultMaxUpload
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &Server{
		store:     store,
		decode:    cfg.Decode,
		maxUpload: cfg.MaxUpload,
		log:       cfg.Logger,
		clock:     time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.POST("/v1/images", s.handleCreateImage)
	e.GET("/v1/images/:id", s.handleGetImage)
	e.DELETE("/v1/images/:id", s.handleDeleteImage)

	e.GET("/v1/images/:id/chunks", s.handleListChunks)
	e.POST("/v1/images/:id/chunks", s.handleEncode)
	e.GET("/v1/images/:id/chunks/:type", s.handleDecode)
	e.DELETE("/v1/images/:id/chunks/:type", s.handleRemove)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResp{
		Status:  "ok",
		Version: version.String(),
		Images:  s.store.Len(),
	})
}

func (s *Server) handleCreateImage(c *echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.maxUpload+1))
	if err != nil {
		return writeErr(c, err)
	}
	if int64(len(body)) > s.maxUpload {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error",
			fmt.Sprintf("image exceeds %d bytes", s.maxUpload))
	}
	p, err := png.ParseWithOptions(body, s.decode)
	if err != nil {
		return writeErr(c, err)
	}
	now := s.clock()
	resp := imageResp("", p)
	resp.ID = s.store.Create(p, now)
	resp.CreatedAt = now.Unix()
	s.log.Info("image stored", "id", resp.ID, "chunks", p.Len(), "size", len(body))
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleGetImage(c *echo.Context) error {
	var raw []byte
	err := s.store.With(c.Param("id"), func(p *png.Png) error {
		raw = p.Bytes()
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", raw)
}

func (s *Server) handleDeleteImage(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeErr(c, fmt.Errorf("%w: %s", ErrImageNotFound, id))
	}
	return c.JSON(http.StatusOK, DeleteImageResp{ID: id, Object: "image", Deleted: true})
}

func (s *Server) handleListChunks(c *echo.Context) error {
	id := c.Param("id")
	created, err := s.store.CreatedAt(id)
	if err != nil {
		return writeErr(c, err)
	}
	var resp ImageResp
	err = s.store.With(id, func(p *png.Png) error {
		resp = imageResp(id, p)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	resp.CreatedAt = created.Unix()
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleEncode(c *echo.Context) error {
	req, err := decodeJSON[EncodeReq](c.Request().Body)
	if err != nil {
		return writeErr(c, err)
	}
	id := c.Param("id")
	var info commands.ChunkInfo
	err = s.store.With(id, func(p *png.Png) error {
		if _, err := commands.Encode(p, req.Type, req.Message); err != nil {
			return err
		}
		infos := commands.Describe(p)
		info = infos[len(infos)-1]
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	s.log.Info("message encoded", "id", id, "type", info.Type, "length", info.Length)
	return c.JSON(http.StatusCreated, info)
}

func (s *Server) handleDecode(c *echo.Context) error {
	typ := c.Param("type")
	var msg string
	err := s.store.With(c.Param("id"), func(p *png.Png) error {
		var err error
		msg, err = commands.Decode(p, typ)
		return err
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, MessageResp{Type: typ, Message: msg})
}

func (s *Server) handleRemove(c *echo.Context) error {
	id := c.Param("id")
	var removed png.Chunk
	err := s.store.With(id, func(p *png.Png) error {
		var err error
		removed, err = commands.Remove(p, c.Param("type"))
		return err
	})
	if err != nil {
		return writeErr(c, err)
	}
	s.log.Info("chunk removed", "id", id, "type", removed.Type().String())
	return c.JSON(http.StatusOK, RemovedChunkResp{
		Type:    removed.Type().String(),
		Length:  removed.Length(),
		CRC:     fmt.Sprintf("0x%08x", removed.CRC()),
		Deleted: true,
	})
}

func imageResp(id string, p *png.Png) ImageResp {
	return ImageResp{
		ID:     id,
		Object: "image",
		Size:   p.Size(),
		Chunks: commands.Describe(p),
	}
}
