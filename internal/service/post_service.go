package service

import (
	"context"

	"feedpoll/internal/logger"
	"feedpoll/internal/model"
	"feedpoll/internal/state"
)

type PostService interface {
	List(ctx context.Context) []model.Post
	// Open copies the post with the given id into the modal slot and marks it
	// visited. Unknown ids return ErrNotFound and leave the modal unchanged.
	Open(ctx context.Context, id string) (model.ModalSelection, error)
	Modal(ctx context.Context) model.ModalSelection
	Visited(ctx context.Context) []string
}

type postService struct {
	store *state.Store
}

func NewPostService(store *state.Store) PostService {
	return &postService{store: store}
}

func (s *postService) List(ctx context.Context) []model.Post {
	return s.store.Posts()
}

func (s *postService) Open(ctx context.Context, id string) (model.ModalSelection, error) {
	modal, ok := s.store.Select(id)
	if !ok {
		logger.Debug("post not found", "module", "service", "action", "fetch", "resource", "post", "result", "failed", "post_id", id)
		return model.ModalSelection{}, ErrNotFound
	}
	return modal, nil
}

func (s *postService) Modal(ctx context.Context) model.ModalSelection {
	return s.store.Modal()
}

func (s *postService) Visited(ctx context.Context) []string {
	return s.store.Visited()
}
