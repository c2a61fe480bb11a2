package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Slate.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Roles retrieves the configured role directory.
func (c *Client) Roles() (*RolesResponse, error) {
	var resp RolesResponse
	if err := c.client.Call("Slate.Roles", RolesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TitleList retrieves one page of the title listing.
func (c *Client) TitleList(req TitleListRequest) (*TitleListResponse, error) {
	var resp TitleListResponse
	if err := c.client.Call("Slate.TitleList", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TitleDescribe retrieves the sanitized detail view of one title.
func (c *Client) TitleDescribe(titleID, role string) (*TitleDescribeResponse, error) {
	var resp TitleDescribeResponse
	req := TitleDescribeRequest{TitleID: titleID, Role: role}
	if err := c.client.Call("Slate.TitleDescribe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Publish marks a title as published on behalf of a role.
func (c *Client) Publish(titleID, role string) (*PublishResponse, error) {
	var resp PublishResponse
	req := PublishRequest{TitleID: titleID, Role: role}
	if err := c.client.Call("Slate.Publish", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unpublish clears a title's publish state on behalf of a role.
func (c *Client) Unpublish(titleID, role string) (*UnpublishResponse, error) {
	var resp UnpublishResponse
	req := UnpublishRequest{TitleID: titleID, Role: role}
	if err := c.client.Call("Slate.Unpublish", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
