package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"slate/internal/daemon"
	"slate/internal/discovery"
	"slate/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Slate", svc); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status, err := s.daemon.Status(s.ctx)
	if err != nil {
		return err
	}
	*resp = status
	return nil
}

func (s *service) Roles(_ RolesRequest, resp *RolesResponse) error {
	resp.Roles = s.daemon.Roles()
	return nil
}

func (s *service) TitleList(req TitleListRequest, resp *TitleListResponse) error {
	result, err := s.daemon.ListTitles(s.ctx, discovery.ListRequest{
		Role:             req.Role,
		Search:           req.Search,
		Sort:             req.Sort,
		Page:             req.Page,
		PageSize:         req.PageSize,
		HasAssets:        req.HasAssets,
		HasOpportunities: req.HasOpportunities,
	})
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

func (s *service) TitleDescribe(req TitleDescribeRequest, resp *TitleDescribeResponse) error {
	detail, err := s.daemon.DescribeTitle(s.ctx, req.TitleID, req.Role)
	if err != nil {
		return err
	}
	resp.Title = *detail
	return nil
}

func (s *service) Publish(req PublishRequest, resp *PublishResponse) error {
	result, err := s.daemon.PublishTitle(s.ctx, req.TitleID, req.Role)
	if err != nil {
		return err
	}
	*resp = result
	s.logger.Info("title published via ipc",
		logging.String(logging.FieldEventType, "title_publish"),
		logging.String(logging.FieldTitleID, req.TitleID))
	return nil
}

func (s *service) Unpublish(req UnpublishRequest, resp *UnpublishResponse) error {
	result, err := s.daemon.UnpublishTitle(s.ctx, req.TitleID, req.Role)
	if err != nil {
		return err
	}
	*resp = result
	s.logger.Info("title unpublished via ipc",
		logging.String(logging.FieldEventType, "title_unpublish"),
		logging.String(logging.FieldTitleID, req.TitleID))
	return nil
}
