package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"vida-fed/internal/config"
	infraMinio "vida-fed/internal/infra/minio"
	"vida-fed/internal/synth"
)

// SynthConfig 由进程配置构造投影配置
func SynthConfig(cfg *config.Config) synth.Config {
	fed := cfg.Federation
	return synth.Config{
		Origin: synth.OriginConfig{
			Self: synth.SelfOrigin{
				Scheme:   fed.Scheme,
				Hostname: fed.Hostname,
				Port:     fed.Port,
				WSScheme: fed.WSScheme,
			},
			RemoteHTTPScheme: fed.RemoteHTTPScheme,
			RemoteWSScheme:   fed.RemoteWSScheme,
		},
		ObjectStorage: synth.ObjectStorage{
			WebVideosBaseURL:          infraMinio.PublicBaseURL(&cfg.MinIO, cfg.MinIO.WebVideosBucket),
			StreamingPlaylistsBaseURL: infraMinio.PublicBaseURL(&cfg.MinIO, cfg.MinIO.StreamingBucket),
		},
		Thumbnail: synth.IconSize{Width: fed.ThumbnailWidth, Height: fed.ThumbnailHeight},
		Preview:   synth.IconSize{Width: fed.PreviewWidth, Height: fed.PreviewHeight},
	}
}

type generation struct {
	synth       *synth.Synthesizer
	fingerprint string
}

// SynthHolder 持有当前生效的 Synthesizer；配置热更新时整体替换，不原地修改
type SynthHolder struct {
	current atomic.Pointer[generation]
}

func NewSynthHolder(cfg synth.Config) *SynthHolder {
	h := &SynthHolder{}
	h.Store(cfg)
	return h
}

// Store 用新配置构造 Synthesizer 并原子替换
func (h *SynthHolder) Store(cfg synth.Config) {
	s := synth.New(cfg)
	sum := sha1.Sum([]byte(fmt.Sprintf("%+v", s.Config())))
	h.current.Store(&generation{synth: s, fingerprint: hex.EncodeToString(sum[:6])})
}

// Load 当前 Synthesizer 与其配置指纹；指纹参与缓存 key，配置变化后旧缓存自然失效
func (h *SynthHolder) Load() (*synth.Synthesizer, string) {
	g := h.current.Load()
	return g.synth, g.fingerprint
}
