package client

import (
	"gameplatform/services/path-service/pkg/pathpb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type PathClient struct {
	Client pathpb.PathServiceClient
	conn   *grpc.ClientConn
}

func NewPathClient(url string) (*PathClient, error) {
	cc, err := grpc.NewClient(url, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &PathClient{
		Client: pathpb.NewPathServiceClient(cc),
		conn:   cc,
	}, nil
}

func (c *PathClient) Close() error {
	return c.conn.Close()
}
