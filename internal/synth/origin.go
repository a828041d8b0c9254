package synth

import (
	"strconv"

	"github.com/samber/mo"
)

// SelfOrigin 本节点对外地址
type SelfOrigin struct {
	Scheme   string
	Hostname string
	Port     int
	WSScheme string
}

// HTTP 默认端口（http:80, https:443）不出现在地址中
func (o SelfOrigin) HTTP() string {
	if o.Port == 0 || (o.Scheme == "http" && o.Port == 80) || (o.Scheme == "https" && o.Port == 443) {
		return o.Scheme + "://" + o.Hostname
	}
	return o.Scheme + "://" + o.Hostname + ":" + strconv.Itoa(o.Port)
}

// Peer tracker websocket 地址总是带端口
func (o SelfOrigin) Peer() string {
	if o.Port == 0 {
		return o.WSScheme + "://" + o.Hostname
	}
	return o.WSScheme + "://" + o.Hostname + ":" + strconv.Itoa(o.Port)
}

// OriginConfig 本节点地址 + 远端节点使用的协议
type OriginConfig struct {
	Self             SelfOrigin
	RemoteHTTPScheme string
	RemoteWSScheme   string
}

// Origins 某个视频的 HTTP 与 tracker 地址，不带结尾斜杠
type Origins struct {
	HTTP string
	Peer string
}

// ResolveOrigins 本地视频用本节点地址，联邦视频用来源主机
func ResolveOrigins(isLocal bool, remoteHost mo.Option[string], cfg OriginConfig) (Origins, error) {
	if isLocal {
		return Origins{HTTP: cfg.Self.HTTP(), Peer: cfg.Self.Peer()}, nil
	}
	host, ok := remoteHost.Get()
	if !ok || host == "" {
		return Origins{}, ErrInvalidOriginInput
	}
	httpScheme, wsScheme := cfg.RemoteHTTPScheme, cfg.RemoteWSScheme
	if httpScheme == "" {
		httpScheme = "https"
	}
	if wsScheme == "" {
		wsScheme = "wss"
	}
	return Origins{
		HTTP: httpScheme + "://" + host,
		Peer: wsScheme + "://" + host,
	}, nil
}
