// Package pathpb holds the path.PathService gRPC contract. Messages travel as
// google.protobuf.Struct so the service needs no generated message types.
package pathpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "path.PathService"

const (
	MethodGenerateLearningPath     = "GenerateLearningPath"
	MethodGetRecommendations       = "GetRecommendations"
	MethodGetNLPRecommendations    = "GetNLPRecommendations"
	MethodAdjustContentDifficulty  = "AdjustContentDifficulty"
	MethodGetRecommendedDifficulty = "GetRecommendedDifficulty"
	MethodGetQuiz                  = "GetQuiz"
	MethodGenerateContent          = "GenerateContent"
	MethodRecordProgress           = "RecordProgress"
	MethodGetProgress              = "GetProgress"
)

func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type PathServiceServer interface {
	GenerateLearningPath(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetNLPRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustContentDifficulty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecommendedDifficulty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuiz(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateContent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedPathServiceServer can be embedded to stay forward compatible.
type UnimplementedPathServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPathServiceServer) GenerateLearningPath(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGenerateLearningPath)
}
func (UnimplementedPathServiceServer) GetRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetRecommendations)
}
func (UnimplementedPathServiceServer) GetNLPRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetNLPRecommendations)
}
func (UnimplementedPathServiceServer) AdjustContentDifficulty(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodAdjustContentDifficulty)
}
func (UnimplementedPathServiceServer) GetRecommendedDifficulty(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetRecommendedDifficulty)
}
func (UnimplementedPathServiceServer) GetQuiz(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetQuiz)
}
func (UnimplementedPathServiceServer) GenerateContent(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGenerateContent)
}
func (UnimplementedPathServiceServer) RecordProgress(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodRecordProgress)
}
func (UnimplementedPathServiceServer) GetProgress(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetProgress)
}

type unaryCall func(PathServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func handler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PathServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(PathServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

var PathService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PathServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodGenerateLearningPath, Handler: handler(MethodGenerateLearningPath, PathServiceServer.GenerateLearningPath)},
		{MethodName: MethodGetRecommendations, Handler: handler(MethodGetRecommendations, PathServiceServer.GetRecommendations)},
		{MethodName: MethodGetNLPRecommendations, Handler: handler(MethodGetNLPRecommendations, PathServiceServer.GetNLPRecommendations)},
		{MethodName: MethodAdjustContentDifficulty, Handler: handler(MethodAdjustContentDifficulty, PathServiceServer.AdjustContentDifficulty)},
		{MethodName: MethodGetRecommendedDifficulty, Handler: handler(MethodGetRecommendedDifficulty, PathServiceServer.GetRecommendedDifficulty)},
		{MethodName: MethodGetQuiz, Handler: handler(MethodGetQuiz, PathServiceServer.GetQuiz)},
		{MethodName: MethodGenerateContent, Handler: handler(MethodGenerateContent, PathServiceServer.GenerateContent)},
		{MethodName: MethodRecordProgress, Handler: handler(MethodRecordProgress, PathServiceServer.RecordProgress)},
		{MethodName: MethodGetProgress, Handler: handler(MethodGetProgress, PathServiceServer.GetProgress)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "path.proto",
}

func RegisterPathServiceServer(s grpc.ServiceRegistrar, srv PathServiceServer) {
	s.RegisterService(&PathService_ServiceDesc, srv)
}

// PathServiceClient invokes a method by name; see the Method* constants.
type PathServiceClient interface {
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type pathServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPathServiceClient(cc grpc.ClientConnInterface) PathServiceClient {
	return &pathServiceClient{cc: cc}
}

func (c *pathServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
