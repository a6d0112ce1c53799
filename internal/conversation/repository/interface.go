package repository

import (
	"context"

	"carewatch/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	RecentMessages(ctx context.Context, opts RecentMessagesOptions) ([]model.ConversationMessage, error)
	Detail(ctx context.Context, id int64) (model.ConversationMessage, error)
}
