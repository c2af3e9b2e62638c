// Package apiconnect wires the tabsplit services to Connect handlers and
// clients. It follows the layout protoc-gen-connect-go produces, over the
// JSON codec in package api.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/pkg/api"
)

// handlerOptions puts the JSON codec ahead of caller options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

// clientOptions puts the JSON codec ahead of caller options.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}
