package grpc_server

import (
	"context"
	"errors"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/internal/domain"
	"gameplatform/services/path-service/pkg/pathpb"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// PathUsecase is what the transport needs from the application layer.
type PathUsecase interface {
	GenerateLearningPath(ctx context.Context, userID, categoryID uuid.UUID) (domain.LearningPathGraph, error)
	Recommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error)
	NLPRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.Recommendation, error)
	AdjustContentDifficulty(ctx context.Context, userID, contentID uuid.UUID, score float64) (domain.DifficultyAdjustment, error)
	RecommendedDifficulty(ctx context.Context, userID, categoryID uuid.UUID) (domain.Tier, float64, error)
	GetQuiz(ctx context.Context, contentID uuid.UUID) (domain.Quiz, error)
	GenerateContent(ctx context.Context, topic string, categoryID uuid.UUID) (domain.ContentResult, error)
	RecordProgress(ctx context.Context, userID, contentID uuid.UUID, score *float64) (domain.ProgressView, error)
	Progress(ctx context.Context, userID uuid.UUID) ([]domain.ProgressView, error)
}

type PathServer struct {
	pathpb.UnimplementedPathServiceServer
	svc PathUsecase
	log *logger.Logger
}

func NewPathServer(svc PathUsecase, log *logger.Logger) *PathServer {
	return &PathServer{svc: svc, log: log.With("component", "grpc")}
}

func (s *PathServer) GenerateLearningPath(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.LearningPathRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseID("category_id", req.CategoryID)
	if err != nil {
		return nil, err
	}

	graph, err := s.svc.GenerateLearningPath(ctx, userID, categoryID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGenerateLearningPath, err)
	}
	return s.reply(graph)
}

func (s *PathServer) GetRecommendations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := s.userID(in)
	if err != nil {
		return nil, err
	}
	recs, err := s.svc.Recommendations(ctx, userID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGetRecommendations, err)
	}
	return s.reply(map[string]any{"recommendations": recs})
}

func (s *PathServer) GetNLPRecommendations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := s.userID(in)
	if err != nil {
		return nil, err
	}
	recs, err := s.svc.NLPRecommendations(ctx, userID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGetNLPRecommendations, err)
	}
	return s.reply(map[string]any{"recommendations": recs})
}

func (s *PathServer) AdjustContentDifficulty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.AdjustDifficultyRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	contentID, err := parseID("content_id", req.ContentID)
	if err != nil {
		return nil, err
	}

	adj, err := s.svc.AdjustContentDifficulty(ctx, userID, contentID, req.Score)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodAdjustContentDifficulty, err)
	}
	return s.reply(adj)
}

func (s *PathServer) GetRecommendedDifficulty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.RecommendedDifficultyRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseID("category_id", req.CategoryID)
	if err != nil {
		return nil, err
	}

	tier, avg, err := s.svc.RecommendedDifficulty(ctx, userID, categoryID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGetRecommendedDifficulty, err)
	}
	return s.reply(pathpb.RecommendedDifficultyResponse{Difficulty: tier.String(), AverageScore: avg})
}

func (s *PathServer) GetQuiz(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.QuizRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	contentID, err := parseID("content_id", req.ContentID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.svc.GetQuiz(ctx, contentID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGetQuiz, err)
	}
	return s.reply(quiz)
}

func (s *PathServer) GenerateContent(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.GenerateContentRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	categoryID, err := parseID("category_id", req.CategoryID)
	if err != nil {
		return nil, err
	}

	res, err := s.svc.GenerateContent(ctx, req.Topic, categoryID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGenerateContent, err)
	}
	return s.reply(res)
}

func (s *PathServer) RecordProgress(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pathpb.RecordProgressRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	contentID, err := parseID("content_id", req.ContentID)
	if err != nil {
		return nil, err
	}

	view, err := s.svc.RecordProgress(ctx, userID, contentID, req.Score)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodRecordProgress, err)
	}
	return s.reply(view)
}

func (s *PathServer) GetProgress(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := s.userID(in)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Progress(ctx, userID)
	if err != nil {
		return nil, s.toStatus(pathpb.MethodGetProgress, err)
	}
	return s.reply(map[string]any{"progress": list})
}

func (s *PathServer) userID(in *structpb.Struct) (uuid.UUID, error) {
	var req pathpb.UserRequest
	if err := pathpb.Decode(in, &req); err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return parseID("user_id", req.UserID)
}

func (s *PathServer) reply(v any) (*structpb.Struct, error) {
	out, err := pathpb.Encode(v)
	if err != nil {
		s.log.Error("encode response", "error", err)
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s", field)
	}
	return id, nil
}

// toStatus maps domain errors onto gRPC codes; anything unexpected is logged and hidden as Internal.
func (s *PathServer) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsCapabilityError(err), errors.Is(err, domain.ErrCollaboratorUnavailable):
		s.log.Warn("dependency unavailable", "method", method, "error", err)
		return status.Error(codes.Unavailable, "dependency unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		s.log.Error("request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
