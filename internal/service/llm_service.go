package service

import (
	"context"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/llm"
)

type ILLMService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	ListModels(ctx context.Context) (*dto.ListModelsResponse, error)
}

// llmService is a thin passthrough to the inference backend. Generation
// failures surface as a classified kind; turning them into a synthetic
// assistant message is the client's job, so the user never loses a turn.
type llmService struct {
	provider   llm.Provider
	modelCache *memory.ModelCache
	log        logger.ILogger
}

func NewLLMService(provider llm.Provider, modelCache *memory.ModelCache, log logger.ILogger) ILLMService {
	return &llmService{
		provider:   provider,
		modelCache: modelCache,
		log:        log,
	}
}

func (s *llmService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	opts := []llm.Option{}
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}

	reply, err := s.provider.Generate(ctx, req.Message, opts...)
	if err != nil {
		s.log.Error("llm", "generation failed", map[string]interface{}{
			"model": req.Model,
			"error": err.Error(),
		})
		return nil, apperror.Wrap(apperror.KindInferenceUnavailable, "failed to generate response", err)
	}

	if reply == "" {
		reply = "I'm sorry, I couldn't generate a response."
	}

	return &dto.GenerateResponse{Response: reply}, nil
}

func (s *llmService) ListModels(ctx context.Context) (*dto.ListModelsResponse, error) {
	if cached, found := s.modelCache.Get(); found {
		return &dto.ListModelsResponse{Models: cached}, nil
	}

	models, err := s.provider.ListModels(ctx)
	if err != nil {
		s.log.Error("llm", "model listing failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Wrap(apperror.KindInferenceUnavailable, "failed to list models", err)
	}

	s.modelCache.Set(models)
	return &dto.ListModelsResponse{Models: models}, nil
}
