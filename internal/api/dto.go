package api

import "github.com/samcharles93/pngme/internal/commands"

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ImageResp struct {
	ID        string               `json:"id"`
	Object    string               `json:"object"`
	CreatedAt int64                `json:"created_at"`
	Size      int                  `json:"size"`
	Chunks    []commands.ChunkInfo `json:"chunks"`
}

type DeleteImageResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type EncodeReq struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type MessageResp struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type RemovedChunkResp struct {
	Type    string `json:"type"`
	Length  uint32 `json:"length"`
	CRC     string `json:"crc"`
	Deleted bool   `json:"deleted"`
}

type HealthResp struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Images  int    `json:"images"`
}
