package service

import (
	"context"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=deps.go -destination=../mocks/deps.go -package=mocks

type Blob interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (entity.DownloadedFile, error)
	Delete(ctx context.Context, key string) error
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (entity.DownloadedFile, error)
}

type Provider interface {
	Generate(ctx context.Context, req entity.ChatRequest) (string, error)
}

type Notifier interface {
	SendNotification(ctx context.Context, msg entity.Message) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, event entity.Event)
}
